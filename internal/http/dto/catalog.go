package dto

import "github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Filters struct {
	Categories     []string          `json:"categories"`
	Brands         []string          `json:"brands"`
	PriceRange     PriceRange        `json:"priceRange"`
	AppliedFilters catalog.ListQuery `json:"appliedFilters"`
}

type ListMetadata struct {
	TotalProducts int    `json:"totalProducts"`
	SearchQuery   string `json:"searchQuery"`
	ResultsCount  int    `json:"resultsCount"`
}

type ProductListResponse struct {
	Products   []catalog.Product  `json:"products"`
	Pagination catalog.Pagination `json:"pagination"`
	Filters    Filters            `json:"filters"`
	Metadata   ListMetadata       `json:"metadata"`
}

type RelatedMetadata struct {
	BasedOn   string `json:"basedOn"`
	Category  string `json:"category"`
	Algorithm string `json:"algorithm"`
}

type RelatedResponse struct {
	Products []catalog.RelatedProduct `json:"products"`
	Metadata RelatedMetadata          `json:"metadata"`
}

type ReviewsPagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ReviewsResponse struct {
	Reviews    []any             `json:"reviews"`
	Pagination ReviewsPagination `json:"pagination"`
}

type GalleryResponse struct {
	Settings    map[string]any       `json:"settings"`
	Collections []catalog.Collection `json:"collections"`
}
