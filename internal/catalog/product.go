package catalog

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/imageurl"
)

const (
	DefaultBrand    = "Aphrodite"
	DefaultCategory = "Uncategorized"

	AvailabilityInStock    = "In Stock"
	AvailabilityLimited    = "Limited Stock"
	AvailabilityOutOfStock = "Out of Stock"

	// At or below this many units a product shows as limited.
	limitedStockThreshold = 5
	popularReviewCount    = 50
)

// Product is the storefront's view of a product.
type Product struct {
	ID               string     `json:"id"`
	Slug             string     `json:"slug"`
	Name             string     `json:"name"`
	Price            float64    `json:"price"`
	OriginalPrice    *float64   `json:"originalPrice,omitempty"`
	Description      string     `json:"description,omitempty"`
	ShortDescription string     `json:"shortDescription,omitempty"`
	Category         string     `json:"category"`
	CategorySlug     string     `json:"categorySlug,omitempty"`
	Brand            string     `json:"brand"`
	Rating           float64    `json:"rating"`
	ReviewCount      int        `json:"reviewCount"`
	Images           []string   `json:"images"`
	Colors           []Variant  `json:"colors"`
	Sizes            []Variant  `json:"sizes"`
	InStock          bool       `json:"inStock"`
	StockCount       int        `json:"stockCount"`
	Stock            []StockRow `json:"stock,omitempty"`
	Tags             []string   `json:"tags"`
	Featured         bool       `json:"featured"`
	IsOnSale         bool       `json:"isOnSale"`
	CreatedAt        string     `json:"createdAt,omitempty"`
	UpdatedAt        string     `json:"updatedAt,omitempty"`
	Discount         int        `json:"discount"`
	Availability     string     `json:"availability"`
}

// ProductDetail is the single-product page payload.
type ProductDetail struct {
	Product
	Features       []string        `json:"features"`
	Specifications json.RawMessage `json:"specifications"`
	LastUpdated    string          `json:"lastUpdated,omitempty"`
}

// RelatedProduct is a product card in the related strip.
type RelatedProduct struct {
	Product
	IsPopular bool `json:"isPopular"`
}

// Reshaper maps backend products onto the storefront contract.
type Reshaper struct {
	images *imageurl.Resolver
}

func NewReshaper(images *imageurl.Resolver) *Reshaper {
	return &Reshaper{images: images}
}

func (rs *Reshaper) Product(raw RawProduct) Product {
	p := Product{
		ID:               string(raw.ID),
		Slug:             raw.Slug,
		Name:             raw.Name,
		Price:            float64(raw.Price),
		Description:      raw.Description,
		ShortDescription: raw.ShortDescription,
		Category:         firstNonEmpty(raw.Category.Name, DefaultCategory),
		CategorySlug:     raw.Category.Slug,
		Brand:            DefaultBrand,
		Rating:           raw.Rating.Average,
		ReviewCount:      raw.Rating.Count,
		Images:           rs.images.ResolveAll(imagePaths(raw)),
		Colors:           nonNilVariants(raw.Colors),
		Sizes:            nonNilVariants(raw.Sizes),
		InStock:          raw.Stock.Total > 0,
		StockCount:       raw.Stock.Total,
		Stock:            raw.Stock.Rows,
		Tags:             nonNilStrings(raw.Tags),
		Featured:         raw.IsFeatured,
		IsOnSale:         raw.IsOnSale,
		CreatedAt:        raw.CreatedAt,
		UpdatedAt:        firstNonEmpty(raw.UpdatedAt, raw.CreatedAt),
		Availability:     Availability(raw.Stock.Total),
	}
	if raw.OriginalPrice != nil {
		op := float64(*raw.OriginalPrice)
		p.OriginalPrice = &op
		p.Discount = Discount(op, p.Price)
	}
	return p
}

func (rs *Reshaper) Products(raws []RawProduct) []Product {
	out := make([]Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, rs.Product(raw))
	}
	return out
}

func (rs *Reshaper) Detail(raw RawProduct) ProductDetail {
	p := rs.Product(raw)

	features := append([]string{}, p.Tags...)
	if strings.TrimSpace(raw.Description) != "" {
		features = append(features, "Premium quality")
	}

	specs := raw.SEO
	if len(specs) == 0 || string(specs) == "null" {
		specs = json.RawMessage("{}")
	}

	return ProductDetail{
		Product:        p,
		Features:       features,
		Specifications: specs,
		LastUpdated:    p.UpdatedAt,
	}
}

func (rs *Reshaper) Related(raws []RawProduct) []RelatedProduct {
	out := make([]RelatedProduct, 0, len(raws))
	for _, raw := range raws {
		p := rs.Product(raw)
		out = append(out, RelatedProduct{Product: p, IsPopular: p.ReviewCount > popularReviewCount})
	}
	return out
}

// Discount is the whole-percent markdown from originalPrice to price. A
// missing original price or a markup yields 0.
func Discount(originalPrice, price float64) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return int(math.Round(100 * (originalPrice - price) / originalPrice))
}

func Availability(stock int) string {
	switch {
	case stock <= 0:
		return AvailabilityOutOfStock
	case stock <= limitedStockThreshold:
		return AvailabilityLimited
	default:
		return AvailabilityInStock
	}
}

// SelectRelated drops the target (matched by id or slug) from candidates and
// keeps at most limit of the rest, in upstream order.
func SelectRelated(target RawProduct, candidates []RawProduct, limit int) []RawProduct {
	if limit < 0 {
		limit = 0
	}
	out := make([]RawProduct, 0, limit)
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		if target.ID != "" && c.ID == target.ID {
			continue
		}
		if target.Slug != "" && c.Slug == target.Slug {
			continue
		}
		out = append(out, c)
	}
	return out
}

func imagePaths(raw RawProduct) []string {
	paths := make([]string, 0, len(raw.Images))
	for _, img := range raw.Images {
		if img.URL != "" {
			paths = append(paths, img.URL)
		}
	}
	if len(paths) == 0 && raw.Image.URL != "" {
		paths = append(paths, raw.Image.URL)
	}
	return paths
}

func nonNilVariants(v []Variant) []Variant {
	if v == nil {
		return []Variant{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
