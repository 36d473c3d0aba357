package handlers

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/imageurl"
)

const defaultImageContentType = "image/jpeg"

// ImageHandler streams backend images through the storefront's origin. A
// broken image always turns into the placeholder.
type ImageHandler struct {
	backend *clients.BackendClient
	images  *imageurl.Resolver
	logger  *log.Logger

	// Hosts images may be fetched from: the backend's plus any configured extras.
	allowHosts map[string]bool
}

func NewImageHandler(backend *clients.BackendClient, images *imageurl.Resolver, extraHosts []string, logger *log.Logger) *ImageHandler {
	allow := map[string]bool{}
	if u, err := url.Parse(images.Origin()); err == nil && u.Host != "" {
		allow[strings.ToLower(u.Host)] = true
	}
	for _, h := range extraHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	return &ImageHandler{backend: backend, images: images, logger: logger, allowHosts: allow}
}

// Images serves GET /api/images?url=|path=.
func (h *ImageHandler) Images(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "url", "path")
}

// Proxy serves GET /api/image-proxy?src=|path=.
func (h *ImageHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "src", "path")
}

func (h *ImageHandler) serve(w http.ResponseWriter, r *http.Request, params ...string) {
	ref := ""
	q := r.URL.Query()
	for _, p := range params {
		if v := strings.TrimSpace(q.Get(p)); v != "" {
			ref = v
			break
		}
	}
	if ref == "" {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Image URL is required")
		return
	}

	target, err := url.Parse(h.images.ResolveString(ref))
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") {
		h.logger.Printf("image %q not fetchable, using placeholder", ref)
		h.placeholder(w, r)
		return
	}
	if !h.allowHosts[strings.ToLower(target.Host)] {
		h.logger.Printf("image host %q not allowed, using placeholder", target.Host)
		h.placeholder(w, r)
		return
	}

	resp, err := h.backend.FetchImage(r.Context(), target)
	if err != nil {
		logUpstreamFailure(h.logger, "GET "+target.String(), err)
		h.placeholder(w, r)
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultImageContentType
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		h.logger.Printf("GET %s returned %s, using placeholder", target, contentType)
		h.placeholder(w, r)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Del("Access-Control-Allow-Credentials")
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Printf("stream %s: %v", target, err)
	}
}

func (h *ImageHandler) placeholder(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.images.Placeholder(), http.StatusFound)
}
