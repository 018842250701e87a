package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ccaceres17/supercatalogue/internal/cart"
	"github.com/ccaceres17/supercatalogue/internal/fakestore"
	"github.com/ccaceres17/supercatalogue/internal/favorites"
	"github.com/ccaceres17/supercatalogue/internal/product"
	"github.com/ccaceres17/supercatalogue/internal/session"
)

// --- Mock implementations ---

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

type mockCatalog struct {
	products map[int64]product.Product
	listErr  error
}

func (m *mockCatalog) List(_ context.Context, limit int) ([]product.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []product.Product
	for _, p := range m.products {
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockCatalog) Get(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (m *mockCatalog) Categories(_ context.Context) ([]string, error) {
	return []string{"electronics", "jewelery"}, nil
}

func (m *mockCatalog) ListByCategory(_ context.Context, category string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockSubmitter struct {
	ack *cart.Ack
	err error
}

func (m *mockSubmitter) SubmitCart(_ context.Context, _ cart.Submission) (*cart.Ack, error) {
	return m.ack, m.err
}

type mockAuthenticator struct {
	token string
	err   error
}

func (m *mockAuthenticator) Login(_ context.Context, _, _ string) (string, error) {
	return m.token, m.err
}

func (m *mockAuthenticator) RegisterUser(_ context.Context, _ session.NewUser) (int64, error) {
	return 5, m.err
}

type mockHistory struct {
	carts []fakestore.RemoteCart
	err   error
}

func (m *mockHistory) ListUserCarts(_ context.Context, _ int64) ([]fakestore.RemoteCart, error) {
	return m.carts, m.err
}

// --- Helpers ---

type fixture struct {
	deps Deps
	out  *bytes.Buffer
	kv   *mockKV
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := newMockKV()
	lg := zap.NewNop()
	sessionSvc := session.NewService(kv, &mockAuthenticator{token: "tok"}, lg)
	cartSvc := cart.NewService(kv, &mockSubmitter{ack: &cart.Ack{ID: 77}}, sessionSvc, lg)
	out := &bytes.Buffer{}
	return &fixture{
		deps: Deps{
			Catalog: &mockCatalog{products: map[int64]product.Product{
				1: {ID: 1, Title: "Backpack", Price: decimal.RequireFromString("109.95"), Category: "electronics"},
				2: {ID: 2, Title: "Jacket", Price: decimal.RequireFromString("55.99"), Category: "jewelery"},
			}},
			Session:   sessionSvc,
			Cart:      cartSvc,
			Favorites: favorites.NewService(kv, lg),
			History:   &mockHistory{},
			Out:       out,
			Lg:        lg,
		},
		out: out,
		kv:  kv,
	}
}

func (f *fixture) run(t *testing.T, args ...string) error {
	t.Helper()
	return Run(context.Background(), f.deps, args)
}

// --- Tests ---

func TestRun_UnknownCommand(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, f.out.String(), "Usage:")
}

func TestProducts_List(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "products"))
	assert.Contains(t, f.out.String(), "Backpack")
	assert.Contains(t, f.out.String(), "Jacket")
}

func TestProduct_Show(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "product", "1"))
	assert.Contains(t, f.out.String(), "Backpack")
	assert.Contains(t, f.out.String(), "$109.95")
}

func TestProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, "product", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestCartAdd_ThenShow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "cart", "add", "1", "--qty", "2"))
	assert.Contains(t, f.out.String(), "Cart now holds 2 items")

	f.out.Reset()
	require.NoError(t, f.run(t, "cart", "show"))
	assert.Contains(t, f.out.String(), "Backpack")
	assert.Contains(t, f.out.String(), "total $219.90")
}

func TestCartSet_RendersUpdatedCart(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "cart", "add", "1"))
	require.NoError(t, f.run(t, "cart", "set", "1", "--qty", "3"))
	assert.Equal(t, 3, f.deps.Cart.TotalItems())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer", 5))

	got := truncate("Fjällräven Kånken Säckgewebe Rucksack für Laptops", 20)
	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.Equal(t, 20, utf8.RuneCountInString(got))
}

func TestCheckout_RequiresLogin(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "cart", "add", "1"))

	err := f.run(t, "checkout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logged in")
}

func TestCheckout_SubmitsAndClears(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "login", "--username", "mor_2314", "--password", "83r5^_"))
	require.NoError(t, f.run(t, "cart", "add", "1"))

	require.NoError(t, f.run(t, "checkout"))

	assert.Contains(t, f.out.String(), "Order #77 confirmed")
	assert.Contains(t, f.out.String(), "$109.95")
	assert.Equal(t, 0, f.deps.Cart.TotalItems(), "cart cleared after successful checkout")
}

func TestCheckout_RejectsBeforeDelay(t *testing.T) {
	// A checkout doomed by validation must fail immediately; with the delay
	// first, these runs would block for an hour.
	f := newFixture(t)
	f.deps.CheckoutDelay = time.Hour

	err := f.run(t, "checkout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logged in")

	require.NoError(t, f.run(t, "login", "--username", "mor_2314", "--password", "83r5^_"))
	err = f.run(t, "checkout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "login", "--username", "mor_2314", "--password", "x"))

	err := f.run(t, "checkout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestLoginLogoutWhoami(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, "whoami"))
	assert.Contains(t, f.out.String(), "Not logged in")

	f.out.Reset()
	require.NoError(t, f.run(t, "login", "--username", "mor_2314", "--password", "83r5^_"))
	assert.Contains(t, f.out.String(), "Welcome back, mor_2314")

	f.out.Reset()
	require.NoError(t, f.run(t, "whoami"))
	assert.Contains(t, f.out.String(), "mor_2314@example.com")

	f.out.Reset()
	require.NoError(t, f.run(t, "logout"))
	require.NoError(t, f.run(t, "whoami"))
	assert.Contains(t, f.out.String(), "Not logged in")
}

func TestFavorites_Flow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "fav", "add", "2"))
	require.NoError(t, f.run(t, "fav", "list"))
	assert.Contains(t, f.out.String(), "Jacket")

	f.out.Reset()
	require.NoError(t, f.run(t, "fav", "remove", "2"))
	require.NoError(t, f.run(t, "fav", "list"))
	assert.Contains(t, f.out.String(), "No favorites yet")
}

func TestOrders_RequiresLogin(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, "orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logged in")
}

func TestHome_RendersBothSections(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "home"))
	assert.Contains(t, f.out.String(), "Featured products:")
	assert.Contains(t, f.out.String(), "electronics")
}
