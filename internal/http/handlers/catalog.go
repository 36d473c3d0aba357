package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
)

const defaultRelatedLimit = 4

type CatalogHandler struct {
	backend  *clients.BackendClient
	reshaper *catalog.Reshaper
	logger   *log.Logger
}

func NewCatalogHandler(backend *clients.BackendClient, reshaper *catalog.Reshaper, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{backend: backend, reshaper: reshaper, logger: logger}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := catalog.ParseListQuery(r.URL.Query())

	list, err := h.backend.ListProducts(r.Context(), q.Upstream())
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/public/products", err)
		writeErrorDetails(w, r, http.StatusInternalServerError, "Failed to fetch products", err.Error())
		return
	}

	products := h.reshaper.Products(list.Products)
	pagination := catalog.NormalizePagination(list, q.Page, q.Limit)

	writeJSON(w, http.StatusOK, dto.ProductListResponse{
		Products:   products,
		Pagination: pagination,
		Filters: dto.Filters{
			Categories:     []string{},
			Brands:         []string{},
			PriceRange:     dto.PriceRange{Min: 0, Max: 1000},
			AppliedFilters: q,
		},
		Metadata: dto.ListMetadata{
			TotalProducts: pagination.Total,
			SearchQuery:   q.Search,
			ResultsCount:  len(products),
		},
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	raw, err := h.backend.GetProduct(r.Context(), id)
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/public/products/"+id, err)
		if errors.Is(err, clients.ErrNotFound) {
			WriteUpstreamError(w, r, http.StatusNotFound, "Product not found")
			return
		}
		writeErrorDetails(w, r, http.StatusInternalServerError, "Failed to fetch product", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.reshaper.Detail(raw))
}

// RelatedProducts picks products from the target's category, falling back to
// the general catalog when the category has nothing to offer.
func (h *CatalogHandler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit := defaultRelatedLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	target, err := h.backend.GetProduct(r.Context(), id)
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/public/products/"+id, err)
		var se *clients.StatusError
		if errors.Is(err, clients.ErrNotFound) || errors.As(err, &se) {
			WriteUpstreamError(w, r, http.StatusNotFound, "Product not found")
			return
		}
		WriteUpstreamError(w, r, http.StatusInternalServerError, "Failed to fetch related products")
		return
	}

	var siblings []catalog.RawProduct
	if slug := target.Category.Slug; slug != "" {
		siblings = h.listSiblings(r, url.Values{
			"category": {slug},
			"limit":    {strconv.Itoa(limit + 2)},
		})
	}
	if len(siblings) == 0 {
		siblings = h.listSiblings(r, url.Values{"limit": {strconv.Itoa(limit + 2)}})
	}

	related := catalog.SelectRelated(target, siblings, limit)
	writeJSON(w, http.StatusOK, dto.RelatedResponse{
		Products: h.reshaper.Related(related),
		Metadata: dto.RelatedMetadata{
			BasedOn:   target.Name,
			Category:  target.Category.Name,
			Algorithm: "category-based",
		},
	})
}

// listSiblings degrades to an empty list on any failure.
func (h *CatalogHandler) listSiblings(r *http.Request, q url.Values) []catalog.RawProduct {
	list, err := h.backend.ListProducts(r.Context(), q)
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/public/products", err)
		return nil
	}
	return list.Products
}

// Reviews is a placeholder until the backend exposes reviews.
func (h *CatalogHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.ReviewsResponse{
		Reviews:    []any{},
		Pagination: dto.ReviewsPagination{Total: 0, Page: 1, Limit: 10},
	})
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	body, err := h.backend.Categories(r.Context())
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/public/categories", err)
		WriteUpstreamError(w, r, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
