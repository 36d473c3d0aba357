// Package imageurl turns the image references found in backend payloads into
// absolute URLs the storefront can render.
package imageurl

import (
	"encoding/json"
	"log"
	"strings"
)

const (
	PlaceholderPath = "/images/placeholder.svg"
	uploadsPrefix   = "/uploads/"
	apiPrefix       = "/api/"
)

// Resolver resolves image references against the backend origin. The zero
// Logger is allowed; warnings are then dropped.
type Resolver struct {
	origin string
	logger *log.Logger
}

func NewResolver(origin string, logger *log.Logger) *Resolver {
	return &Resolver{origin: strings.TrimRight(origin, "/"), logger: logger}
}

func (r *Resolver) Origin() string { return r.origin }

// Placeholder is the absolute placeholder image URL.
func (r *Resolver) Placeholder() string { return r.origin + PlaceholderPath }

// Resolve accepts a string, a decoded JSON object, raw JSON, or nil and always
// returns an absolute URL.
func (r *Resolver) Resolve(ref any) string {
	switch v := ref.(type) {
	case nil:
		return r.Placeholder()
	case string:
		return r.ResolveString(v)
	case *string:
		if v == nil {
			return r.Placeholder()
		}
		return r.ResolveString(*v)
	case json.RawMessage:
		return r.resolveRaw(v)
	case map[string]any:
		return r.resolveObject(v)
	default:
		r.warnf("unrecognized image reference %T", ref)
		return r.Placeholder()
	}
}

// ResolveString applies the path rules in order; the first match wins.
func (r *Resolver) ResolveString(p string) string {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return r.Placeholder()
	case hasScheme(p):
		return p
	case p == PlaceholderPath:
		return r.Placeholder()
	case strings.HasPrefix(p, uploadsPrefix), strings.HasPrefix(p, apiPrefix):
		return r.origin + p
	case strings.HasPrefix(p, "/"):
		return r.origin + p
	default:
		return r.origin + "/" + p
	}
}

// ResolveAll resolves every usable entry, skipping empty ones, and falls back
// to a single placeholder when nothing resolves.
func (r *Resolver) ResolveAll(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		out = append(out, r.ResolveString(ref))
	}
	if len(out) == 0 {
		return []string{r.Placeholder()}
	}
	return out
}

func (r *Resolver) resolveRaw(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return r.Placeholder()
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		r.warnf("invalid image reference %q: %v", string(raw), err)
		return r.Placeholder()
	}
	return r.Resolve(decoded)
}

func (r *Resolver) resolveObject(obj map[string]any) string {
	if u, ok := obj["url"].(string); ok && strings.TrimSpace(u) != "" {
		return r.ResolveString(u)
	}
	if _, ok := obj["_id"]; ok {
		r.warnf("received raw image object %v instead of a url", obj["_id"])
		return r.Placeholder()
	}
	r.warnf("unrecognized image object with keys %v", keys(obj))
	return r.Placeholder()
}

func (r *Resolver) warnf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf("imageurl: "+format, args...)
	}
}

func hasScheme(p string) bool {
	if strings.HasPrefix(p, "//") || strings.HasPrefix(p, "data:") {
		return true
	}
	i := strings.Index(p, "://")
	if i <= 0 {
		return false
	}
	for j, c := range p[:i] {
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if j == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
