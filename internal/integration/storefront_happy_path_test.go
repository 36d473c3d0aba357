//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
)

type httpResult struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// TestStorefrontHappyPath drives a running storefront (STOREFRONT_URL) and the
// backend behind it. It never places an order.
func TestStorefrontHappyPath(t *testing.T) {
	baseURL := strings.TrimSpace(os.Getenv("STOREFRONT_URL"))
	if baseURL == "" {
		t.Skip("STOREFRONT_URL not set")
	}
	correlationID := fmt.Sprintf("it-%d", time.Now().UnixNano())

	client := &http.Client{Timeout: 10 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	waitForHealth(ctx, t, client, baseURL)

	list := firstProduct(ctx, t, client, baseURL, correlationID)
	getDetail(ctx, t, client, baseURL, list.Products[0].ID, correlationID)

	session := addToSessionCart(ctx, t, client, baseURL, list, correlationID)
	clearSessionCart(ctx, t, client, baseURL, session, correlationID)
}

func firstProduct(ctx context.Context, t *testing.T, client *http.Client, baseURL, cid string) dto.ProductListResponse {
	t.Helper()
	resp := doRequest(ctx, t, client, http.MethodGet, baseURL+"/api/products?limit=1", "", map[string]string{"X-Correlation-Id": cid})
	ensureNon5xx(t, resp)

	var list dto.ProductListResponse
	decodeJSON(t, resp.Body, &list)
	if len(list.Products) == 0 {
		t.Skip("backend has no products")
	}
	if list.Pagination.Page != 1 || list.Pagination.Limit != 1 {
		t.Fatalf("unexpected pagination: %+v", list.Pagination)
	}
	return list
}

func getDetail(ctx context.Context, t *testing.T, client *http.Client, baseURL, productID, cid string) {
	t.Helper()
	resp := doRequest(ctx, t, client, http.MethodGet, baseURL+"/api/products/"+productID, "", map[string]string{"X-Correlation-Id": cid})
	ensureNon5xx(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status fetching product %s: %d", productID, resp.StatusCode)
	}

	var detail struct {
		ID     string   `json:"id"`
		Images []string `json:"images"`
	}
	decodeJSON(t, resp.Body, &detail)
	if detail.ID != productID || len(detail.Images) == 0 {
		t.Fatalf("unexpected product detail: %+v", detail)
	}
	for _, img := range detail.Images {
		if !strings.HasPrefix(img, "http") && !strings.HasPrefix(img, "data:") {
			t.Fatalf("image url not absolute: %q", img)
		}
	}
}

func addToSessionCart(ctx context.Context, t *testing.T, client *http.Client, baseURL string, list dto.ProductListResponse, cid string) string {
	t.Helper()
	p := list.Products[0]
	if p.StockCount < 1 {
		t.Skip("first product is out of stock")
	}

	payload := fmt.Sprintf(`{"productId":%q,"name":%q,"price":%v,"stock":%d,"quantity":1}`, p.ID, p.Name, p.Price, p.StockCount)
	resp := doRequest(ctx, t, client, http.MethodPost, baseURL+"/api/cart/items", payload, map[string]string{"X-Correlation-Id": cid})
	ensureNon5xx(t, resp)

	var view dto.Cart
	decodeJSON(t, resp.Body, &view)
	if view.Count != 1 {
		t.Fatalf("expected one item in cart, got %+v", view)
	}

	session := resp.Header.Get("X-Cart-Session")
	if session == "" {
		t.Fatalf("expected a cart session token")
	}
	return session
}

func clearSessionCart(ctx context.Context, t *testing.T, client *http.Client, baseURL, session, cid string) {
	t.Helper()
	headers := map[string]string{"X-Cart-Session": session, "X-Correlation-Id": cid}
	resp := doRequest(ctx, t, client, http.MethodDelete, baseURL+"/api/cart", "", headers)
	ensureNon5xx(t, resp)

	var view dto.Cart
	decodeJSON(t, resp.Body, &view)
	if view.Count != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func waitForHealth(ctx context.Context, t *testing.T, client *http.Client, baseURL string) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("context done while waiting for health: %v", ctx.Err())
		case <-ticker.C:
			resp := doRequest(ctx, t, client, http.MethodGet, baseURL+"/health", "", nil)
			if resp.StatusCode != http.StatusOK {
				continue
			}

			resp = doRequest(ctx, t, client, http.MethodGet, baseURL+"/health/upstreams", "", nil)
			var payload dto.UpstreamsHealthResponse
			if err := json.Unmarshal(resp.Body, &payload); err != nil {
				continue
			}
			if payload.Status == "ok" {
				return
			}
		}
	}
}

func doRequest(ctx context.Context, t *testing.T, client *http.Client, method, url, body string, headers map[string]string) httpResult {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.Header.Get("X-Correlation-Id") == "" {
		t.Fatalf("expected correlation id on response")
	}

	return httpResult{StatusCode: resp.StatusCode, Body: data, Header: resp.Header.Clone()}
}

func ensureNon5xx(t *testing.T, resp httpResult) {
	if resp.StatusCode >= 500 {
		t.Fatalf("received 5xx (%d): %s", resp.StatusCode, string(resp.Body))
	}
}

func decodeJSON(t *testing.T, b []byte, v any) {
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("decode json: %v", err)
	}
}
