// Package favorites holds the locally persisted list of products the user
// has marked as favorites.
package favorites

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"

	"github.com/ccaceres17/supercatalogue/internal/product"
	"github.com/ccaceres17/supercatalogue/internal/storage"
)

const snapshotKey = "favorites"

// Service owns the favorites list: an ordered set of products, unique by id.
type Service struct {
	mu    sync.Mutex
	items []product.Product

	store storage.KV
	lg    *zap.Logger
}

// NewService creates a favorites Service. Call Restore before first use.
func NewService(store storage.KV, lg *zap.Logger) *Service {
	return &Service{store: store, lg: lg}
}

// Restore loads the persisted list. Missing or corrupt snapshots degrade to
// an empty list; Restore never fails.
func (s *Service) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.store.Get(snapshotKey)
	if err != nil {
		s.lg.Warn("Read favorites snapshot", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	items, err := decodeSnapshot(data)
	if err != nil {
		s.lg.Warn("Corrupt favorites snapshot, starting empty", zap.Error(err))
		return
	}
	s.items = items
}

// Add appends p to the favorites. Adding a product that is already a
// favorite is a no-op.
func (s *Service) Add(p product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.ID == p.ID {
			return nil
		}
	}
	s.items = append(s.items, p)
	return s.persist()
}

// Remove drops the favorite with productID, if present.
func (s *Service) Remove(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// Contains reports whether productID is a favorite.
func (s *Service) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// List returns a copy of the favorites in insertion order.
func (s *Service) List() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]product.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) persist() error {
	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, p := range s.items {
			product.EncodeJSON(e, p)
		}
	})
	if err := s.store.Set(snapshotKey, e.String()); err != nil {
		return errors.Wrap(err, "persist favorites snapshot")
	}
	return nil
}

func decodeSnapshot(data string) ([]product.Product, error) {
	d := jx.DecodeStr(data)
	var items []product.Product
	err := d.Arr(func(d *jx.Decoder) error {
		p, err := product.DecodeJSON(d)
		if err != nil {
			return err
		}
		items = append(items, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
