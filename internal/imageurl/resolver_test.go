package imageurl

import (
	"bytes"
	"encoding/json"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "https://admin.example.com"

func TestResolveString(t *testing.T) {
	r := NewResolver(origin+"/", nil)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", origin + PlaceholderPath},
		{"blank", "   ", origin + PlaceholderPath},
		{"absolute https", "https://cdn.test/a.jpg", "https://cdn.test/a.jpg"},
		{"absolute http", "http://cdn.test/a.jpg", "http://cdn.test/a.jpg"},
		{"protocol relative", "//cdn.test/a.jpg", "//cdn.test/a.jpg"},
		{"placeholder relative", PlaceholderPath, origin + PlaceholderPath},
		{"uploads", "/uploads/products/a.webp", origin + "/uploads/products/a.webp"},
		{"api path", "/api/images/123", origin + "/api/images/123"},
		{"rooted relative", "/static/a.png", origin + "/static/a.png"},
		{"bare relative", "static/a.png", origin + "/static/a.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.ResolveString(tc.in))
		})
	}
}

func TestResolveStructuredRefs(t *testing.T) {
	var buf bytes.Buffer
	r := NewResolver(origin, log.New(&buf, "", 0))

	assert.Equal(t, origin+"/uploads/x.jpg", r.Resolve(map[string]any{"url": "/uploads/x.jpg"}))
	assert.Equal(t, r.Placeholder(), r.Resolve(map[string]any{"_id": "65f0", "contentType": "image/png"}))
	assert.Contains(t, buf.String(), "raw image object")

	buf.Reset()
	assert.Equal(t, r.Placeholder(), r.Resolve(42))
	assert.Contains(t, buf.String(), "unrecognized")

	assert.Equal(t, r.Placeholder(), r.Resolve(nil))
	assert.Equal(t, r.Placeholder(), r.Resolve(json.RawMessage("null")))
	assert.Equal(t, origin+"/a.png", r.Resolve(json.RawMessage(`"a.png"`)))
	assert.Equal(t, origin+"/b.png", r.Resolve(json.RawMessage(`{"url":"/b.png"}`)))
	assert.Equal(t, r.Placeholder(), r.Resolve(json.RawMessage(`{oops`)))
}

func TestResolvedAlwaysAbsolute(t *testing.T) {
	r := NewResolver(origin, nil)
	inputs := []any{"", "a", "/a", "uploads/a", "/api/x", PlaceholderPath, "ftp://host/a", nil,
		map[string]any{}, map[string]any{"url": ""}, []string{"x"}}

	for _, in := range inputs {
		got := r.Resolve(in)
		require.True(t, hasScheme(got), "input %v resolved to %q", in, got)
	}
}

func TestResolveAll(t *testing.T) {
	r := NewResolver(origin, nil)

	assert.Equal(t, []string{r.Placeholder()}, r.ResolveAll(nil))
	assert.Equal(t, []string{r.Placeholder()}, r.ResolveAll([]string{"", " "}))

	got := r.ResolveAll([]string{"/uploads/1.jpg", "", "https://cdn.test/2.jpg"})
	assert.Equal(t, []string{origin + "/uploads/1.jpg", "https://cdn.test/2.jpg"}, got)
	for _, u := range got {
		assert.False(t, strings.HasPrefix(u, "/"))
	}
}
