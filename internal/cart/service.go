package cart

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ccaceres17/supercatalogue/internal/product"
	"github.com/ccaceres17/supercatalogue/internal/storage"
)

// snapshotKey is the persistent store key holding the serialized cart.
const snapshotKey = "cart"

// Service owns the in-memory cart and keeps its persisted snapshot in sync:
// every successful mutation writes the full snapshot before returning.
type Service struct {
	mu    sync.Mutex
	items []LineItem

	store    storage.KV
	remote   Submitter
	identity Identity
	lg       *zap.Logger
	now      func() time.Time
}

// NewService creates a cart Service. Call Restore before first use to load
// the persisted snapshot.
func NewService(store storage.KV, remote Submitter, identity Identity, lg *zap.Logger) *Service {
	return &Service{
		store:    store,
		remote:   remote,
		identity: identity,
		lg:       lg,
		now:      time.Now,
	}
}

// Restore loads the persisted snapshot. A missing or corrupt snapshot
// degrades to an empty cart; Restore never fails.
func (s *Service) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.store.Get(snapshotKey)
	if err != nil {
		s.lg.Warn("Read cart snapshot", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	items, err := decodeSnapshot(data)
	if err != nil {
		s.lg.Warn("Corrupt cart snapshot, starting empty", zap.Error(err))
		return
	}
	s.items = items
}

// Add puts qty units of p into the cart, merging into the existing line item
// when one exists for the same product id.
func (s *Service) Add(p product.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if line := s.find(p.ID); line != nil {
		line.Quantity += qty
	} else {
		s.items = append(s.items, LineItem{Product: p, Quantity: qty})
	}
	return s.persist()
}

// Remove deletes the line item for productID. Removing an absent product is
// a no-op, not an error.
func (s *Service) Remove(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(productID)
	return s.persist()
}

// SetQuantity replaces the quantity of the line item for productID. A value
// of zero or less removes the line item. Absent product ids are ignored.
func (s *Service) SetQuantity(productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		s.remove(productID)
		return s.persist()
	}
	if line := s.find(productID); line != nil {
		line.Quantity = qty
	}
	return s.persist()
}

// Clear empties the cart and drops the persisted snapshot.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.store.Remove(snapshotKey); err != nil {
		return errors.Wrap(err, "remove cart snapshot")
	}
	return nil
}

// Items returns a copy of the line items in insertion order.
func (s *Service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems returns the sum of quantities across all line items.
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of unit price times quantity over all line
// items. Rounding to currency precision is left to presentation.
func (s *Service) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		total = total.Add(item.Product.Price.Mul(qty))
	}
	return total
}

// Checkout submits the cart to the remote store on behalf of the
// authenticated user. It does not clear the cart; callers clear it after a
// successful submission.
func (s *Service) Checkout(ctx context.Context) (*Ack, error) {
	ownerID, ok := s.identity.CurrentUserID()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}
	sub := Submission{
		OwnerID: ownerID,
		Date:    s.now().UTC(),
		Items:   make([]SubmissionItem, len(s.items)),
	}
	for i, item := range s.items {
		sub.Items[i] = SubmissionItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		}
	}
	s.mu.Unlock()

	ack, err := s.remote.SubmitCart(ctx, sub)
	if err != nil {
		return nil, errors.Wrap(err, "submit cart")
	}
	return ack, nil
}

// find returns the line item for productID, or nil. Carts are small, so a
// linear scan is fine.
func (s *Service) find(productID int64) *LineItem {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return &s.items[i]
		}
	}
	return nil
}

func (s *Service) remove(productID int64) {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Service) persist() error {
	if err := s.store.Set(snapshotKey, encodeSnapshot(s.items)); err != nil {
		return errors.Wrap(err, "persist cart snapshot")
	}
	return nil
}
