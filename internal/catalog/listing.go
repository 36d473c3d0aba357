package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	DefaultSort  = "newest"
)

// ListQuery is a storefront product listing request.
type ListQuery struct {
	Page     int    `json:"-"`
	Limit    int    `json:"-"`
	Search   string `json:"search"`
	Category string `json:"category"`
	SortBy   string `json:"sortBy"`
	Featured bool   `json:"featured"`
	Sale     bool   `json:"sale"`
}

// ParseListQuery reads the storefront's filter names, accepting both
// featured and isFeatured, and both sale and isOnSale.
func ParseListQuery(q url.Values) ListQuery {
	return ListQuery{
		Page:     positiveInt(q.Get("page"), DefaultPage),
		Limit:    positiveInt(q.Get("limit"), DefaultLimit),
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		SortBy:   firstNonEmpty(strings.TrimSpace(q.Get("sortBy")), strings.TrimSpace(q.Get("sort")), DefaultSort),
		Featured: q.Get("featured") == "true" || q.Get("isFeatured") == "true",
		Sale:     q.Get("isOnSale") == "true" || q.Get("sale") == "true",
	}
}

// Upstream renders the query with the backend's filter names.
func (q ListQuery) Upstream() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.SortBy != "" {
		v.Set("sort", q.SortBy)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Sale {
		v.Set("sale", "true")
	}
	return v
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NormalizePagination folds the upstream pagination variants into one shape.
// Fields the backend left out fall back to the request and the number of
// products actually returned.
func NormalizePagination(list RawProductList, reqPage, reqLimit int) Pagination {
	p := Pagination{Page: reqPage, Limit: reqLimit, Total: len(list.Products)}

	if rp := list.Pagination; rp != nil {
		if rp.Page > 0 {
			p.Page = int(rp.Page)
		}
		if rp.Limit > 0 {
			p.Limit = int(rp.Limit)
		}
		if rp.Total > 0 {
			p.Total = int(rp.Total)
		}
		switch {
		case rp.TotalPages > 0:
			p.TotalPages = int(rp.TotalPages)
		case rp.Pages > 0:
			p.TotalPages = int(rp.Pages)
		}
	}
	if (list.Pagination == nil || list.Pagination.Total <= 0) && list.Total != nil && *list.Total > 0 {
		p.Total = int(*list.Total)
	}

	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.TotalPages == 0 && p.Total > 0 {
		p.TotalPages = (p.Total + p.Limit - 1) / p.Limit
	}

	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1
	return p
}

func positiveInt(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return def
	}
	return n
}
