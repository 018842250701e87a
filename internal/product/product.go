package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Products are
// owned by the remote catalog and never mutated locally.
type Product struct {
	ID          int64
	Title       string
	Price       decimal.Decimal
	Description string
	Category    string
	Image       string
	Rating      Rating
}

// Rating holds the average review score and review count for a product.
type Rating struct {
	Rate  float64
	Count int
}

// Validate checks the fields a product must carry to be usable by the
// storefront. Ratings outside [0, 5] and negative counts are clamped rather
// than rejected since they are display-only.
func (p *Product) Validate() error {
	if p.ID <= 0 {
		return errors.New("missing product id")
	}
	if p.Title == "" {
		return errors.Errorf("product %d: missing title", p.ID)
	}
	if p.Price.IsNegative() {
		return errors.Errorf("product %d: negative price %s", p.ID, p.Price)
	}
	if p.Rating.Rate < 0 {
		p.Rating.Rate = 0
	}
	if p.Rating.Rate > 5 {
		p.Rating.Rate = 5
	}
	if p.Rating.Count < 0 {
		p.Rating.Count = 0
	}
	return nil
}

// Catalog defines read operations against the product catalog.
type Catalog interface {
	List(ctx context.Context, limit int) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Categories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
}
