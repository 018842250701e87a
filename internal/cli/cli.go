// Package cli is the storefront's presentation layer: it parses subcommands,
// invokes the state services, and renders results as plain text. All business
// rules live in the services; this package only translates.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/ccaceres17/supercatalogue/internal/cart"
	"github.com/ccaceres17/supercatalogue/internal/fakestore"
	"github.com/ccaceres17/supercatalogue/internal/favorites"
	"github.com/ccaceres17/supercatalogue/internal/product"
	"github.com/ccaceres17/supercatalogue/internal/session"
)

// History lists previously submitted carts for a user.
type History interface {
	ListUserCarts(ctx context.Context, userID int64) ([]fakestore.RemoteCart, error)
}

// Deps carries the services the commands operate on. The services are
// constructed once in internal/app and injected here; commands never reach
// for ambient state.
type Deps struct {
	Catalog   product.Catalog
	Session   *session.Service
	Cart      *cart.Service
	Favorites *favorites.Service
	History   History

	// CheckoutDelay simulates payment processing before the cart is
	// submitted. Zero disables the delay.
	CheckoutDelay time.Duration

	Out io.Writer
	Lg  *zap.Logger
}

const usage = `Usage: storefront <command> [flags]

Catalog:
  home                      featured products and categories
  products [--limit N]      list products
  product <id>              show one product
  categories                list category names
  category <name>           list products in a category

Account:
  login --username U --password P
  register --username U --password P --email E [--first F] [--last L]
  logout
  whoami
  orders                    previously submitted carts

Cart:
  cart show
  cart add <product-id> [--qty N]
  cart remove <product-id>
  cart set <product-id> --qty N
  cart clear
  checkout

Favorites:
  fav list
  fav add <product-id>
  fav remove <product-id>
`

// Run dispatches args to a command. Returned errors are already meaningful
// to the user; main reports them and exits non-zero.
func Run(ctx context.Context, deps Deps, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(deps.Out, usage)
		return errors.New("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "home":
		return deps.home(ctx)
	case "products":
		return deps.listProducts(ctx, rest)
	case "product":
		return deps.showProduct(ctx, rest)
	case "categories":
		return deps.listCategories(ctx)
	case "category":
		return deps.listByCategory(ctx, rest)
	case "login":
		return deps.login(ctx, rest)
	case "register":
		return deps.register(ctx, rest)
	case "logout":
		return deps.logout()
	case "whoami":
		return deps.whoami()
	case "orders":
		return deps.orders(ctx)
	case "cart":
		return deps.cartCmd(ctx, rest)
	case "checkout":
		return deps.checkout(ctx)
	case "fav":
		return deps.favCmd(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(deps.Out, usage)
		return nil
	default:
		fmt.Fprint(deps.Out, usage)
		return errors.Errorf("unknown command %q", cmd)
	}
}

// humanize rewords domain errors for the terminal. Unknown errors pass
// through unchanged.
func humanize(err error) error {
	switch {
	case errors.Is(err, cart.ErrNotAuthenticated):
		return errors.New("you must be logged in: run 'storefront login' first")
	case errors.Is(err, cart.ErrEmptyCart):
		return errors.New("your cart is empty: add products before checking out")
	case errors.Is(err, product.ErrNotFound):
		return errors.New("product not found")
	case errors.Is(err, session.ErrInvalidCredentials):
		return errors.New("invalid username or password")
	case errors.Is(err, session.ErrRegistration):
		return errors.New("registration failed: check the account details")
	case errors.Is(err, fakestore.ErrUnavailable):
		return errors.New("the store is unreachable right now, try again later")
	default:
		return err
	}
}
