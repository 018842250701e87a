package product

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// EncodeJSON writes p in the remote catalog's JSON shape. Local snapshots use
// the same shape so persisted carts stay readable next to raw API responses.
func EncodeJSON(e *jx.Encoder, p Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(p.ID) })
		e.Field("title", func(e *jx.Encoder) { e.Str(p.Title) })
		e.Field("price", func(e *jx.Encoder) { e.RawStr(p.Price.String()) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("category", func(e *jx.Encoder) { e.Str(p.Category) })
		e.Field("image", func(e *jx.Encoder) { e.Str(p.Image) })
		e.Field("rating", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("rate", func(e *jx.Encoder) { e.Float64(p.Rating.Rate) })
				e.Field("count", func(e *jx.Encoder) { e.Int(p.Rating.Count) })
			})
		})
	})
}

// DecodeJSON reads a single product object and validates it. Unknown fields
// are skipped so remote schema additions do not break the client.
func DecodeJSON(d *jx.Decoder) (Product, error) {
	var p Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			p.ID = v
		case "title":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "title")
			}
			p.Title = v
		case "price":
			n, err := d.Num()
			if err != nil {
				return errors.Wrap(err, "price")
			}
			// The demo API returns numbers, but tolerate quoted values.
			dec, err := decimal.NewFromString(strings.Trim(n.String(), `"`))
			if err != nil {
				return errors.Wrap(err, "price")
			}
			p.Price = dec
		case "description":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "description")
			}
			p.Description = v
		case "category":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "category")
			}
			p.Category = v
		case "image":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "image")
			}
			p.Image = v
		case "rating":
			return d.Obj(func(d *jx.Decoder, key string) error {
				switch key {
				case "rate":
					v, err := d.Float64()
					if err != nil {
						return errors.Wrap(err, "rating.rate")
					}
					p.Rating.Rate = v
				case "count":
					v, err := d.Int()
					if err != nil {
						return errors.Wrap(err, "rating.count")
					}
					p.Rating.Count = v
				default:
					return d.Skip()
				}
				return nil
			})
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}
