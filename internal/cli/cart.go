package cli

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

func (d Deps) cartCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return d.showCart()
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "show":
		return d.showCart()
	case "add":
		return d.cartAdd(ctx, rest)
	case "remove":
		return d.cartRemove(rest)
	case "set":
		return d.cartSet(rest)
	case "clear":
		if err := d.Cart.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(d.Out, "Cart cleared.")
		return nil
	default:
		return errors.Errorf("unknown cart subcommand %q", sub)
	}
}

func (d Deps) showCart() error {
	items := d.Cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(d.Out, "Your cart is empty.")
		return nil
	}
	for _, item := range items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(d.Out, "%4d  %-40s  ×%-3d  $%s\n",
			item.Product.ID, truncate(item.Product.Title, 40), item.Quantity, line.StringFixed(2))
	}
	fmt.Fprintf(d.Out, "\n%d items, total $%s\n", d.Cart.TotalItems(), d.Cart.TotalPrice().StringFixed(2))
	return nil
}

func (d Deps) cartAdd(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("cart add", pflag.ContinueOnError)
	qty := fs.Int("qty", 1, "quantity to add")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := productIDArg(fs.Args())
	if err != nil {
		return err
	}

	p, err := d.Catalog.Get(ctx, id)
	if err != nil {
		return humanize(err)
	}
	if err := d.Cart.Add(*p, *qty); err != nil {
		return err
	}
	fmt.Fprintf(d.Out, "Added %d × %s. Cart now holds %d items.\n", *qty, p.Title, d.Cart.TotalItems())
	return nil
}

func (d Deps) cartRemove(args []string) error {
	id, err := productIDArg(args)
	if err != nil {
		return err
	}
	if err := d.Cart.Remove(id); err != nil {
		return err
	}
	fmt.Fprintf(d.Out, "Removed product %d from the cart.\n", id)
	return nil
}

func (d Deps) cartSet(args []string) error {
	fs := pflag.NewFlagSet("cart set", pflag.ContinueOnError)
	qty := fs.Int("qty", -1, "new quantity (0 removes the item)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *qty < 0 {
		return errors.New("usage: cart set <product-id> --qty N")
	}

	id, err := productIDArg(fs.Args())
	if err != nil {
		return err
	}
	if err := d.Cart.SetQuantity(id, *qty); err != nil {
		return err
	}
	return d.showCart()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
