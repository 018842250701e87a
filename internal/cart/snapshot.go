package cart

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/ccaceres17/supercatalogue/internal/product"
)

// encodeSnapshot serializes line items as a JSON array of
// {"product": ..., "quantity": ...} objects.
func encodeSnapshot(items []LineItem) string {
	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, item := range items {
			e.Obj(func(e *jx.Encoder) {
				e.Field("product", func(e *jx.Encoder) {
					product.EncodeJSON(e, item.Product)
				})
				e.Field("quantity", func(e *jx.Encoder) {
					e.Int(item.Quantity)
				})
			})
		}
	})
	return e.String()
}

// decodeSnapshot parses a persisted cart snapshot. Line items with a missing
// product, non-positive quantity, or a product id already seen fail the whole
// snapshot; callers degrade to an empty cart on error.
func decodeSnapshot(data string) ([]LineItem, error) {
	d := jx.DecodeStr(data)
	var items []LineItem
	seen := make(map[int64]bool)
	err := d.Arr(func(d *jx.Decoder) error {
		var item LineItem
		err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "product":
				p, err := product.DecodeJSON(d)
				if err != nil {
					return errors.Wrap(err, "product")
				}
				item.Product = p
			case "quantity":
				v, err := d.Int()
				if err != nil {
					return errors.Wrap(err, "quantity")
				}
				item.Quantity = v
			default:
				return d.Skip()
			}
			return nil
		})
		if err != nil {
			return err
		}
		if item.Product.ID == 0 {
			return errors.New("line item without product")
		}
		if item.Quantity <= 0 {
			return errors.Errorf("line item %d: quantity %d", item.Product.ID, item.Quantity)
		}
		if seen[item.Product.ID] {
			return errors.Errorf("duplicate line item for product %d", item.Product.ID)
		}
		seen[item.Product.ID] = true
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
