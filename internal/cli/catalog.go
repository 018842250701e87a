package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/ccaceres17/supercatalogue/internal/product"
)

// featuredCount is how many products the home screen shows.
const featuredCount = 6

func (d Deps) home(ctx context.Context) error {
	var (
		featured   []product.Product
		categories []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		featured, err = d.Catalog.List(gctx, featuredCount)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = d.Catalog.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return humanize(err)
	}

	fmt.Fprintln(d.Out, "Featured products:")
	for _, p := range featured {
		d.printProductLine(p)
	}
	fmt.Fprintln(d.Out, "\nCategories:")
	for _, c := range categories {
		fmt.Fprintf(d.Out, "  %s\n", c)
	}
	return nil
}

func (d Deps) listProducts(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("products", pflag.ContinueOnError)
	limit := fs.Int("limit", 0, "maximum number of products to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := d.Catalog.List(ctx, *limit)
	if err != nil {
		return humanize(err)
	}
	for _, p := range products {
		d.printProductLine(p)
	}
	return nil
}

func (d Deps) showProduct(ctx context.Context, args []string) error {
	id, err := productIDArg(args)
	if err != nil {
		return err
	}

	p, err := d.Catalog.Get(ctx, id)
	if err != nil {
		return humanize(err)
	}

	fmt.Fprintf(d.Out, "%s\n", p.Title)
	fmt.Fprintf(d.Out, "  id:       %d\n", p.ID)
	fmt.Fprintf(d.Out, "  price:    $%s\n", p.Price.StringFixed(2))
	fmt.Fprintf(d.Out, "  category: %s\n", p.Category)
	fmt.Fprintf(d.Out, "  rating:   %.1f (%d reviews)\n", p.Rating.Rate, p.Rating.Count)
	if p.Description != "" {
		fmt.Fprintf(d.Out, "  %s\n", p.Description)
	}
	if d.Favorites.Contains(p.ID) {
		fmt.Fprintln(d.Out, "  ★ in your favorites")
	}
	return nil
}

func (d Deps) listCategories(ctx context.Context) error {
	categories, err := d.Catalog.Categories(ctx)
	if err != nil {
		return humanize(err)
	}
	for _, c := range categories {
		fmt.Fprintln(d.Out, c)
	}
	return nil
}

func (d Deps) listByCategory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: category <name>")
	}

	products, err := d.Catalog.ListByCategory(ctx, args[0])
	if err != nil {
		return humanize(err)
	}
	if len(products) == 0 {
		fmt.Fprintf(d.Out, "no products in category %q\n", args[0])
		return nil
	}
	for _, p := range products {
		d.printProductLine(p)
	}
	return nil
}

func (d Deps) printProductLine(p product.Product) {
	fmt.Fprintf(d.Out, "%4d  $%8s  %s\n", p.ID, p.Price.StringFixed(2), p.Title)
}

func productIDArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one product id argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid product id %q", args[0])
	}
	return id, nil
}
