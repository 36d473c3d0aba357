package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/imageurl"
)

// galleryFanOut bounds concurrent per-category product queries.
const galleryFanOut = 4

// SettingsHandler serves the landing page content. None of its routes fail:
// upstream trouble yields the built-in defaults.
type SettingsHandler struct {
	backend  *clients.BackendClient
	reshaper *catalog.Reshaper
	images   *imageurl.Resolver
	logger   *log.Logger
}

func NewSettingsHandler(backend *clients.BackendClient, reshaper *catalog.Reshaper, images *imageurl.Resolver, logger *log.Logger) *SettingsHandler {
	return &SettingsHandler{backend: backend, reshaper: reshaper, images: images, logger: logger}
}

func (h *SettingsHandler) Hero(w http.ResponseWriter, r *http.Request) {
	settings, err := h.backend.HeroSettings(r.Context())
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/settings/hero", err)
		writeJSON(w, http.StatusOK, catalog.DefaultHero())
		return
	}
	writeJSON(w, http.StatusOK, catalog.NormalizeHero(settings, h.images))
}

func (h *SettingsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.collectionSettings(r.Context()))
}

func (h *SettingsHandler) collectionSettings(ctx context.Context) map[string]any {
	settings, err := h.backend.CollectionSettings(ctx)
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/settings/collection", err)
		return catalog.DefaultCollection()
	}
	return catalog.NormalizeCollection(settings, h.images)
}

// Gallery builds the "Our Collections" section: one panel per category with
// a few preview products each. Failures produce an empty gallery.
func (h *SettingsHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := dto.GalleryResponse{
		Settings:    h.collectionSettings(ctx),
		Collections: []catalog.Collection{},
	}

	rawCats, err := h.backend.Categories(ctx)
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/public/categories", err)
		writeJSON(w, http.StatusOK, resp)
		return
	}
	var cats catalog.RawCategoryList
	if err := json.Unmarshal(rawCats, &cats); err != nil {
		h.logger.Printf("categories payload unreadable: %v", err)
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if len(cats.Categories) == 0 {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	previews := make([][]catalog.Product, len(cats.Categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(galleryFanOut)
	for i, cat := range cats.Categories {
		if cat.Slug == "" {
			continue
		}
		g.Go(func() error {
			list, err := h.backend.ListProducts(gctx, url.Values{
				"category": {cat.Slug},
				"limit":    {strconv.Itoa(catalog.CollectionPreviewSize)},
			})
			if err != nil {
				// One empty category must not hide the others.
				logUpstreamFailure(h.logger, "GET /api/public/products?category="+cat.Slug, err)
				return nil
			}
			previews[i] = h.reshaper.Products(list.Products)
			return nil
		})
	}
	_ = g.Wait()

	resp.Collections = catalog.BuildCollections(cats.Categories, previews, h.images)
	writeJSON(w, http.StatusOK, resp)
}
