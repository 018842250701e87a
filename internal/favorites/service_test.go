package favorites

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ccaceres17/supercatalogue/internal/product"
)

type mockKV struct {
	data map[string]string
}

func newMockKV() *mockKV {
	return &mockKV{data: map[string]string{}}
}

func (m *mockKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *mockKV) Remove(key string) error {
	delete(m.data, key)
	return nil
}

func newTestProduct(id int64, title string) product.Product {
	return product.Product{
		ID:     id,
		Title:  title,
		Price:  decimal.RequireFromString("9.99"),
		Rating: product.Rating{Rate: 3.5, Count: 10},
	}
}

func TestAdd_DeduplicatesByID(t *testing.T) {
	svc := NewService(newMockKV(), zap.NewNop())

	require.NoError(t, svc.Add(newTestProduct(1, "Backpack")))
	require.NoError(t, svc.Add(newTestProduct(1, "Backpack")))

	assert.Len(t, svc.List(), 1)
	assert.True(t, svc.Contains(1))
}

func TestRemove(t *testing.T) {
	svc := NewService(newMockKV(), zap.NewNop())
	require.NoError(t, svc.Add(newTestProduct(1, "Backpack")))
	require.NoError(t, svc.Add(newTestProduct(2, "Jacket")))

	require.NoError(t, svc.Remove(1))

	assert.False(t, svc.Contains(1))
	assert.True(t, svc.Contains(2))
	require.NoError(t, svc.Remove(42))
	assert.Len(t, svc.List(), 1)
}

func TestRestore_RoundTrip(t *testing.T) {
	kv := newMockKV()
	svc := NewService(kv, zap.NewNop())
	require.NoError(t, svc.Add(newTestProduct(2, "Jacket")))
	require.NoError(t, svc.Add(newTestProduct(1, "Backpack")))

	restored := NewService(kv, zap.NewNop())
	restored.Restore()

	got := restored.List()
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestRestore_CorruptSnapshot(t *testing.T) {
	kv := newMockKV()
	kv.data[snapshotKey] = "not json"
	svc := NewService(kv, zap.NewNop())

	svc.Restore()

	assert.Empty(t, svc.List())
}
