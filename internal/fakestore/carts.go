package fakestore

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/ccaceres17/supercatalogue/internal/cart"
)

// RemoteCart is a cart as stored by the remote API, returned from the
// purchase history endpoints.
type RemoteCart struct {
	ID     int64
	UserID int64
	Date   time.Time
	Items  []cart.SubmissionItem
}

// encodeSubmission serializes a checkout submission in the remote API's
// shape: {"userId": ..., "date": ..., "products": [{"productId", "quantity"}]}.
func encodeSubmission(sub cart.Submission) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("userId", func(e *jx.Encoder) { e.Int64(sub.OwnerID) })
		e.Field("date", func(e *jx.Encoder) { e.Str(sub.Date.Format(time.RFC3339)) })
		e.Field("products", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range sub.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("productId", func(e *jx.Encoder) { e.Int64(item.ProductID) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
					})
				}
			})
		})
	})
	return e.Bytes()
}

func decodeAck(body []byte) (*cart.Ack, error) {
	var ack cart.Ack
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "id" {
			return d.Skip()
		}
		v, err := d.Int64()
		if err != nil {
			return err
		}
		ack.ID = v
		return nil
	}); err != nil {
		return nil, err
	}
	if ack.ID == 0 {
		return nil, errors.New("response without cart id")
	}
	return &ack, nil
}

func decodeRemoteCarts(body []byte) ([]RemoteCart, error) {
	d := jx.DecodeBytes(body)
	var carts []RemoteCart
	if err := d.Arr(func(d *jx.Decoder) error {
		rc, err := decodeRemoteCart(d)
		if err != nil {
			return err
		}
		carts = append(carts, rc)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode carts")
	}
	return carts, nil
}

func decodeRemoteCart(d *jx.Decoder) (RemoteCart, error) {
	var rc RemoteCart
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			rc.ID = v
		case "userId":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "userId")
			}
			rc.UserID = v
		case "date":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "date")
			}
			// The API is inconsistent about date precision; an unparsable
			// date is display-only and defaults to zero.
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				rc.Date = ts
			}
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				var item cart.SubmissionItem
				err := d.Obj(func(d *jx.Decoder, key string) error {
					switch key {
					case "productId":
						v, err := d.Int64()
						if err != nil {
							return errors.Wrap(err, "productId")
						}
						item.ProductID = v
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
				rc.Items = append(rc.Items, item)
				return nil
			})
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return RemoteCart{}, err
	}
	if rc.ID == 0 {
		return RemoteCart{}, errors.New("cart without id")
	}
	return rc, nil
}
