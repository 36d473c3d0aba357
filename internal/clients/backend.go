package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
)

const maxBodyBytes = 10 << 20

// BackendClient talks to the admin backend's public API. Every call asks for a
// fresh copy; nothing here caches or retries.
type BackendClient struct{ c *Client }

func NewBackendClient(c *Client) *BackendClient { return &BackendClient{c: c} }

// Base exposes the underlying client for health probes.
func (bc *BackendClient) Base() *Client { return bc.c }

func (bc *BackendClient) ListProducts(ctx context.Context, q url.Values) (catalog.RawProductList, error) {
	var out catalog.RawProductList
	err := bc.getJSON(ctx, "/api/public/products", q.Encode(), &out)
	return out, err
}

// GetProduct looks a product up by id or slug. A missing product is
// ErrNotFound whether the backend says 404 or answers with an empty body.
func (bc *BackendClient) GetProduct(ctx context.Context, idOrSlug string) (catalog.RawProduct, error) {
	var env catalog.RawProductEnvelope
	if err := bc.getJSON(ctx, "/api/public/products/"+idOrSlug, "", &env); err != nil {
		return catalog.RawProduct{}, err
	}
	if env.Product == nil {
		return catalog.RawProduct{}, fmt.Errorf("product %q: %w", idOrSlug, ErrNotFound)
	}
	return *env.Product, nil
}

// Categories returns the backend's categories payload as-is.
func (bc *BackendClient) Categories(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := bc.getJSON(ctx, "/api/public/categories", "", &out)
	return out, err
}

func (bc *BackendClient) HeroSettings(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	err := bc.getJSON(ctx, "/api/settings/hero", "", &out)
	return out, err
}

func (bc *BackendClient) CollectionSettings(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	err := bc.getJSON(ctx, "/api/settings/collection", "", &out)
	return out, err
}

// CreateOrder posts an order payload verbatim. The backend's status and body
// are returned as-is; only transport failures are errors.
func (bc *BackendClient) CreateOrder(ctx context.Context, payload []byte) (int, []byte, error) {
	h := jsonHeaders()
	resp, err := bc.c.Do(ctx, http.MethodPost, "/api/orders/create", "", bytes.NewReader(payload), h)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read order response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// GetOrder fetches a placed order by its order number and returns the order
// object.
func (bc *BackendClient) GetOrder(ctx context.Context, orderNumber string) (json.RawMessage, error) {
	var env struct {
		Order json.RawMessage `json:"order"`
	}
	if err := bc.getJSON(ctx, "/api/orders/"+orderNumber, "", &env); err != nil {
		return nil, err
	}
	if len(env.Order) == 0 || string(env.Order) == "null" {
		return nil, fmt.Errorf("order %q: %w", orderNumber, ErrNotFound)
	}
	return env.Order, nil
}

// FetchImage GETs an absolute image URL. The caller owns the response body.
func (bc *BackendClient) FetchImage(ctx context.Context, u *url.URL) (*http.Response, error) {
	h := http.Header{}
	h.Set("Accept", "image/*")
	resp, err := bc.c.DoURL(ctx, http.MethodGet, u, nil, h)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Endpoint: "GET " + u.String(), Status: resp.StatusCode}
	}
	return resp, nil
}

func (bc *BackendClient) getJSON(ctx context.Context, path, rawQuery string, out any) error {
	resp, err := bc.c.Do(ctx, http.MethodGet, path, rawQuery, nil, jsonHeaders())
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("GET %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: "GET " + path, Status: resp.StatusCode, Body: body}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

func jsonHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("Cache-Control", "no-cache")
	h.Set("Pragma", "no-cache")
	return h
}
