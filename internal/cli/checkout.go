package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ccaceres17/supercatalogue/internal/cart"
)

// checkout submits the cart and clears it locally on success. No real
// payment happens; the delay only simulates processing, so it runs after the
// cheap validation a doomed checkout would fail anyway.
func (d Deps) checkout(ctx context.Context) error {
	if !d.Session.IsAuthenticated() {
		return humanize(cart.ErrNotAuthenticated)
	}
	if d.Cart.TotalItems() == 0 {
		return humanize(cart.ErrEmptyCart)
	}

	total := d.Cart.TotalPrice()

	if d.CheckoutDelay > 0 {
		fmt.Fprintln(d.Out, "Processing payment…")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.CheckoutDelay):
		}
	}

	ack, err := d.Cart.Checkout(ctx)
	if err != nil {
		return humanize(err)
	}

	if err := d.Cart.Clear(); err != nil {
		// The order went through; a failed local clear should not report
		// the checkout as failed.
		d.Lg.Warn("Clear cart after checkout", zap.Error(err))
	}

	fmt.Fprintf(d.Out, "Order #%d confirmed. Total: $%s\n", ack.ID, total.StringFixed(2))
	return nil
}
