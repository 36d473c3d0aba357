package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The admin backend is loose about shapes: ids arrive as id or _id, images as
// strings or objects, stock as a number or a per-variant array. Every type
// below decodes each known shape explicitly and falls back to its zero value
// for anything else, so one odd field never fails a whole listing.

// FlexString accepts a JSON string or number.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*s = ""
	case b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			*s = ""
			return nil
		}
		*s = FlexString(n.String())
	}
	return nil
}

// FlexFloat accepts a JSON number or numeric string. NaN and infinities read
// as 0 since encoding/json cannot write them back out.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			*f = 0
			return nil
		}
		*f = FlexFloat(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(n)
	return nil
}

// ImageRef is an image entry: a bare path/URL or an object carrying url.
// Legacy embedded-binary objects (identified by _id) decode with an empty URL.
type ImageRef struct {
	URL    string
	Legacy bool
}

func (i *ImageRef) UnmarshalJSON(b []byte) error {
	*i = ImageRef{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &i.URL)
	case '{':
		var obj struct {
			URL string          `json:"url"`
			ID  json.RawMessage `json:"_id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		i.URL = obj.URL
		i.Legacy = obj.URL == "" && len(obj.ID) > 0
	}
	return nil
}

// StockRow is one color/size variant's stock.
type StockRow struct {
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
	Quantity int    `json:"quantity"`
}

// Stock is either an aggregate count or a per-variant breakdown.
type Stock struct {
	Total int
	Rows  []StockRow
}

func (s *Stock) UnmarshalJSON(b []byte) error {
	*s = Stock{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '[':
		var rows []struct {
			Color    FlexString `json:"color"`
			Size     FlexString `json:"size"`
			Quantity FlexFloat  `json:"quantity"`
		}
		if err := json.Unmarshal(b, &rows); err != nil {
			return nil
		}
		for _, r := range rows {
			q := int(r.Quantity)
			if q < 0 {
				q = 0
			}
			s.Rows = append(s.Rows, StockRow{Color: string(r.Color), Size: string(r.Size), Quantity: q})
			s.Total += q
		}
	default:
		var n FlexFloat
		if err := n.UnmarshalJSON(b); err != nil {
			return nil
		}
		if n > 0 {
			s.Total = int(n)
		}
	}
	return nil
}

// Variant is a color or size option. Plain string options round-trip as
// strings.
type Variant struct {
	Name      string
	Code      string
	Available *bool
	plain     bool
}

func (v *Variant) UnmarshalJSON(b []byte) error {
	*v = Variant{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		v.plain = true
		return json.Unmarshal(b, &v.Name)
	case '{':
		var obj struct {
			Name      string `json:"name"`
			Code      string `json:"code"`
			Available *bool  `json:"available"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		v.Name, v.Code, v.Available = obj.Name, obj.Code, obj.Available
	}
	return nil
}

func (v Variant) MarshalJSON() ([]byte, error) {
	if v.plain {
		return json.Marshal(v.Name)
	}
	return json.Marshal(struct {
		Name      string `json:"name"`
		Code      string `json:"code,omitempty"`
		Available *bool  `json:"available,omitempty"`
	}{v.Name, v.Code, v.Available})
}

// CategoryRef is a product's category: populated object or bare name.
type CategoryRef struct {
	ID   string
	Name string
	Slug string
}

func (c *CategoryRef) UnmarshalJSON(b []byte) error {
	*c = CategoryRef{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &c.Name)
	case '{':
		var obj struct {
			ID      FlexString `json:"id"`
			MongoID FlexString `json:"_id"`
			Name    string     `json:"name"`
			Slug    string     `json:"slug"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		c.ID = firstNonEmpty(string(obj.ID), string(obj.MongoID))
		c.Name, c.Slug = obj.Name, obj.Slug
	}
	return nil
}

// Rating is {average,count} or a bare average.
type Rating struct {
	Average float64
	Count   int
}

func (r *Rating) UnmarshalJSON(b []byte) error {
	*r = Rating{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			Average FlexFloat `json:"average"`
			Count   FlexFloat `json:"count"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		r.Average, r.Count = float64(obj.Average), int(obj.Count)
		return nil
	}
	var n FlexFloat
	_ = n.UnmarshalJSON(b)
	r.Average = float64(n)
	return nil
}

// RawProduct is a product as the admin backend serves it.
type RawProduct struct {
	ID               FlexString      `json:"id"`
	Slug             string          `json:"slug"`
	Name             string          `json:"name"`
	Price            FlexFloat       `json:"price"`
	OriginalPrice    *FlexFloat      `json:"originalPrice"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription"`
	Category         CategoryRef     `json:"category"`
	Rating           Rating          `json:"rating"`
	Images           []ImageRef      `json:"images"`
	Image            ImageRef        `json:"image"`
	Colors           []Variant       `json:"colors"`
	Sizes            []Variant       `json:"sizes"`
	Stock            Stock           `json:"stock"`
	Tags             []string        `json:"tags"`
	IsFeatured       bool            `json:"isFeatured"`
	IsOnSale         bool            `json:"isOnSale"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
	SEO              json.RawMessage `json:"seo"`
}

type rawProduct RawProduct

func (p *RawProduct) UnmarshalJSON(b []byte) error {
	aux := struct {
		*rawProduct
		MongoID FlexString `json:"_id"`
	}{rawProduct: (*rawProduct)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

// RawPagination covers the pagination shapes seen upstream.
type RawPagination struct {
	Page       FlexFloat `json:"page"`
	Limit      FlexFloat `json:"limit"`
	Total      FlexFloat `json:"total"`
	Pages      FlexFloat `json:"pages"`
	TotalPages FlexFloat `json:"totalPages"`
}

// RawProductList is a products listing: {products, pagination} with an
// optional flat total/count, or a bare array.
type RawProductList struct {
	Products   []RawProduct
	Pagination *RawPagination
	Total      *FlexFloat
}

func (l *RawProductList) UnmarshalJSON(b []byte) error {
	*l = RawProductList{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	if b[0] == '[' {
		return json.Unmarshal(b, &l.Products)
	}
	var obj struct {
		Products   []RawProduct   `json:"products"`
		Data       []RawProduct   `json:"data"`
		Pagination *RawPagination `json:"pagination"`
		Total      *FlexFloat     `json:"total"`
		Count      *FlexFloat     `json:"count"`
		Page       *FlexFloat     `json:"page"`
		Pages      *FlexFloat     `json:"pages"`
		TotalPages *FlexFloat     `json:"totalPages"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	l.Products = obj.Products
	if l.Products == nil {
		l.Products = obj.Data
	}
	l.Pagination = obj.Pagination
	l.Total = obj.Total
	if l.Total == nil {
		l.Total = obj.Count
	}
	// flat page/pages fields with no nested object
	if l.Pagination == nil && (obj.Page != nil || obj.Pages != nil || obj.TotalPages != nil) {
		l.Pagination = &RawPagination{}
		if obj.Page != nil {
			l.Pagination.Page = *obj.Page
		}
		if obj.Pages != nil {
			l.Pagination.Pages = *obj.Pages
		}
		if obj.TotalPages != nil {
			l.Pagination.TotalPages = *obj.TotalPages
		}
	}
	return nil
}

// RawProductEnvelope is the single-product response: {product} or the bare
// product object.
type RawProductEnvelope struct {
	Product *RawProduct
}

func (e *RawProductEnvelope) UnmarshalJSON(b []byte) error {
	*e = RawProductEnvelope{}
	var obj struct {
		Product *RawProduct `json:"product"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	if obj.Product != nil {
		e.Product = obj.Product
		return nil
	}
	var bare RawProduct
	if err := json.Unmarshal(b, &bare); err != nil {
		return nil
	}
	if bare.ID != "" || bare.Slug != "" {
		e.Product = &bare
	}
	return nil
}

// RawCategory is a category as the admin backend serves it.
type RawCategory struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Image       ImageRef
	SortOrder   int
}

func (c *RawCategory) UnmarshalJSON(b []byte) error {
	var obj struct {
		ID          FlexString `json:"id"`
		MongoID     FlexString `json:"_id"`
		Name        string     `json:"name"`
		Slug        string     `json:"slug"`
		Description string     `json:"description"`
		Image       ImageRef   `json:"image"`
		SortOrder   FlexFloat  `json:"sortOrder"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*c = RawCategory{
		ID:          firstNonEmpty(string(obj.ID), string(obj.MongoID)),
		Name:        obj.Name,
		Slug:        obj.Slug,
		Description: obj.Description,
		Image:       obj.Image,
		SortOrder:   int(obj.SortOrder),
	}
	return nil
}

// RawCategoryList is {categories:[...]} or a bare array.
type RawCategoryList struct {
	Categories []RawCategory
}

func (l *RawCategoryList) UnmarshalJSON(b []byte) error {
	*l = RawCategoryList{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	if b[0] == '[' {
		return json.Unmarshal(b, &l.Categories)
	}
	var obj struct {
		Categories []RawCategory `json:"categories"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	l.Categories = obj.Categories
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
