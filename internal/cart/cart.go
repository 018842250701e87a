// Package cart holds the locally persisted shopping cart: an ordered list of
// line items, derived totals, and checkout submission to the remote store.
package cart

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/ccaceres17/supercatalogue/internal/product"
)

// Sentinel errors for cart operations.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidQuantity  = errors.New("quantity must be greater than 0")
	ErrSubmission       = errors.New("cart submission rejected")
)

// LineItem pairs a product with the quantity in the cart. A cart holds at
// most one line item per product id.
type LineItem struct {
	Product  product.Product
	Quantity int
}

// SubmissionItem is one line of a checkout payload.
type SubmissionItem struct {
	ProductID int64
	Quantity  int
}

// Submission is the checkout payload sent to the remote store.
type Submission struct {
	OwnerID int64
	Date    time.Time
	Items   []SubmissionItem
}

// Ack is the remote store's acknowledgement of a submitted cart.
type Ack struct {
	ID int64
}

// Submitter delivers a checkout submission to the remote store.
type Submitter interface {
	SubmitCart(ctx context.Context, sub Submission) (*Ack, error)
}

// Identity reports the authenticated user, when there is one. Checkout needs
// the owner id but nothing else from the session.
type Identity interface {
	CurrentUserID() (int64, bool)
}
