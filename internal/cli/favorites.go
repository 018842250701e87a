package cli

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
)

func (d Deps) favCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return d.favList()
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return d.favList()
	case "add":
		id, err := productIDArg(rest)
		if err != nil {
			return err
		}
		p, err := d.Catalog.Get(ctx, id)
		if err != nil {
			return humanize(err)
		}
		if err := d.Favorites.Add(*p); err != nil {
			return err
		}
		fmt.Fprintf(d.Out, "Added %s to favorites.\n", p.Title)
		return nil
	case "remove":
		id, err := productIDArg(rest)
		if err != nil {
			return err
		}
		if err := d.Favorites.Remove(id); err != nil {
			return err
		}
		fmt.Fprintf(d.Out, "Removed product %d from favorites.\n", id)
		return nil
	default:
		return errors.Errorf("unknown fav subcommand %q", sub)
	}
}

func (d Deps) favList() error {
	favs := d.Favorites.List()
	if len(favs) == 0 {
		fmt.Fprintln(d.Out, "No favorites yet.")
		return nil
	}
	for _, p := range favs {
		d.printProductLine(p)
	}
	return nil
}
