// Package fakestore implements the remote catalog and account client against
// the Fake Store demo API. It is the only package that speaks HTTP to the
// remote; payloads are decoded into typed records at this boundary and
// malformed responses are rejected here.
package fakestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/ccaceres17/supercatalogue/internal/cart"
	"github.com/ccaceres17/supercatalogue/internal/product"
	"github.com/ccaceres17/supercatalogue/internal/session"
)

// ErrUnavailable is returned when the remote store cannot be reached or
// answers with an unexpected status. Finer HTTP semantics are not exposed.
var ErrUnavailable = errors.New("remote store unavailable")

// Compile-time checks: the client serves all three state services.
var (
	_ product.Catalog       = (*Client)(nil)
	_ session.Authenticator = (*Client)(nil)
	_ cart.Submitter        = (*Client)(nil)
)

// Client is a typed HTTP client for the Fake Store API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for baseURL. The given http.Client carries the
// transport middleware (request IDs, retries, logging, tracing).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// List returns up to limit products, or all of them when limit is zero or
// negative.
func (c *Client) List(ctx context.Context, limit int) ([]product.Product, error) {
	path := "/products"
	if limit > 0 {
		path = fmt.Sprintf("/products?limit=%d", limit)
	}
	body, status, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.Wrapf(ErrUnavailable, "list products: status %d", status)
	}
	return decodeProducts(body)
}

// Get returns the product with the given id. The demo API answers missing
// ids with an empty body rather than a 404, so both map to ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (*product.Product, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || len(bytes.TrimSpace(body)) == 0 {
		return nil, product.ErrNotFound
	}
	if status != http.StatusOK {
		return nil, errors.Wrapf(ErrUnavailable, "get product %d: status %d", id, status)
	}
	p, err := product.DecodeJSON(jx.DecodeBytes(body))
	if err != nil {
		return nil, errors.Wrapf(err, "decode product %d", id)
	}
	return &p, nil
}

// Categories returns the list of category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	body, status, err := c.get(ctx, "/products/categories")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.Wrapf(ErrUnavailable, "list categories: status %d", status)
	}

	d := jx.DecodeBytes(body)
	var categories []string
	if err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.Str()
		if err != nil {
			return err
		}
		categories = append(categories, v)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode categories")
	}
	return categories, nil
}

// ListByCategory returns the products in the given category.
func (c *Client) ListByCategory(ctx context.Context, category string) ([]product.Product, error) {
	body, status, err := c.get(ctx, "/products/category/"+url.PathEscape(category))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.Wrapf(ErrUnavailable, "list category %q: status %d", category, status)
	}
	return decodeProducts(body)
}

// Login exchanges credentials for an opaque token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("username", func(e *jx.Encoder) { e.Str(username) })
		e.Field("password", func(e *jx.Encoder) { e.Str(password) })
	})

	body, status, err := c.send(ctx, http.MethodPost, "/auth/login", e.Bytes())
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusOK:
	case status >= 400 && status < 500:
		return "", session.ErrInvalidCredentials
	default:
		return "", errors.Wrapf(ErrUnavailable, "login: status %d", status)
	}

	token := ""
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "token" {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		token = v
		return nil
	}); err != nil {
		return "", errors.Wrap(err, "decode login response")
	}
	if token == "" {
		return "", errors.Wrap(ErrUnavailable, "login: response without token")
	}
	return token, nil
}

// RegisterUser creates an account and returns the new account id.
func (c *Client) RegisterUser(ctx context.Context, u session.NewUser) (int64, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("username", func(e *jx.Encoder) { e.Str(u.Username) })
		e.Field("password", func(e *jx.Encoder) { e.Str(u.Password) })
		e.Field("email", func(e *jx.Encoder) { e.Str(u.Email) })
		e.Field("name", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("firstname", func(e *jx.Encoder) { e.Str(u.Name.First) })
				e.Field("lastname", func(e *jx.Encoder) { e.Str(u.Name.Last) })
			})
		})
	})

	body, status, err := c.send(ctx, http.MethodPost, "/users", e.Bytes())
	if err != nil {
		return 0, err
	}
	if status < 200 || status >= 300 {
		return 0, errors.Wrapf(session.ErrRegistration, "status %d", status)
	}

	var id int64
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "id" {
			return d.Skip()
		}
		v, err := d.Int64()
		if err != nil {
			return err
		}
		id = v
		return nil
	}); err != nil {
		return 0, errors.Wrap(err, "decode register response")
	}
	return id, nil
}

// SubmitCart posts a checkout submission and returns the acknowledgement.
func (c *Client) SubmitCart(ctx context.Context, sub cart.Submission) (*cart.Ack, error) {
	body, status, err := c.send(ctx, http.MethodPost, "/carts", encodeSubmission(sub))
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, errors.Wrapf(cart.ErrSubmission, "status %d", status)
	}
	ack, err := decodeAck(body)
	if err != nil {
		return nil, errors.Wrap(err, "decode cart response")
	}
	return ack, nil
}

// UpdateCart replaces a previously submitted cart.
func (c *Client) UpdateCart(ctx context.Context, id int64, sub cart.Submission) (*cart.Ack, error) {
	body, status, err := c.send(ctx, http.MethodPut, fmt.Sprintf("/carts/%d", id), encodeSubmission(sub))
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, errors.Wrapf(cart.ErrSubmission, "status %d", status)
	}
	ack, err := decodeAck(body)
	if err != nil {
		return nil, errors.Wrap(err, "decode cart response")
	}
	return ack, nil
}

// ListUserCarts returns the carts previously submitted for userID.
func (c *Client) ListUserCarts(ctx context.Context, userID int64) ([]RemoteCart, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("/carts/user/%d", userID))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.Wrapf(ErrUnavailable, "list user carts: status %d", status)
	}
	return decodeRemoteCarts(body)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(ErrUnavailable, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrapf(ErrUnavailable, "%s %s: read body: %v", method, path, err)
	}
	return data, resp.StatusCode, nil
}

func decodeProducts(body []byte) ([]product.Product, error) {
	d := jx.DecodeBytes(body)
	var products []product.Product
	if err := d.Arr(func(d *jx.Decoder) error {
		p, err := product.DecodeJSON(d)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}
