package cli

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/pflag"

	"github.com/ccaceres17/supercatalogue/internal/cart"
	"github.com/ccaceres17/supercatalogue/internal/session"
)

func (d Deps) login(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("usage: login --username U --password P")
	}

	profile, err := d.Session.Login(ctx, *username, *password)
	if err != nil {
		return humanize(err)
	}
	fmt.Fprintf(d.Out, "Welcome back, %s!\n", profile.Username)
	return nil
}

func (d Deps) register(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	email := fs.String("email", "", "account email")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" || *email == "" {
		return errors.New("usage: register --username U --password P --email E")
	}

	profile, err := d.Session.Register(ctx, session.NewUser{
		Username: *username,
		Password: *password,
		Email:    *email,
		Name:     session.Name{First: *first, Last: *last},
	})
	if err != nil {
		return humanize(err)
	}
	fmt.Fprintf(d.Out, "Account created. Welcome, %s!\n", profile.Username)
	return nil
}

func (d Deps) logout() error {
	if err := d.Session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(d.Out, "Logged out.")
	return nil
}

func (d Deps) whoami() error {
	profile, ok := d.Session.Current()
	if !ok {
		fmt.Fprintln(d.Out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(d.Out, "%s <%s>\n", profile.Username, profile.Email)
	if profile.Name.First != "" || profile.Name.Last != "" {
		fmt.Fprintf(d.Out, "%s %s\n", profile.Name.First, profile.Name.Last)
	}
	return nil
}

func (d Deps) orders(ctx context.Context) error {
	userID, ok := d.Session.CurrentUserID()
	if !ok {
		return humanize(cart.ErrNotAuthenticated)
	}

	carts, err := d.History.ListUserCarts(ctx, userID)
	if err != nil {
		return humanize(err)
	}
	if len(carts) == 0 {
		fmt.Fprintln(d.Out, "No orders yet.")
		return nil
	}
	for _, rc := range carts {
		fmt.Fprintf(d.Out, "order #%d", rc.ID)
		if !rc.Date.IsZero() {
			fmt.Fprintf(d.Out, "  %s", rc.Date.Format("2006-01-02"))
		}
		fmt.Fprintln(d.Out)
		for _, item := range rc.Items {
			fmt.Fprintf(d.Out, "  product %d × %d\n", item.ProductID, item.Quantity)
		}
	}
	return nil
}
