package catalog

import (
	"fmt"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/imageurl"
)

// CollectionPreviewSize is how many products each gallery entry shows.
const CollectionPreviewSize = 3

var collectionPalette = []string{"#27323c", "#19304a", "#2b2533", "#1a3a52", "#2d1f33", "#324a5e"}

// Collection is one category panel of the "Our Collections" gallery.
type Collection struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
	Products    []Product `json:"products"`
}

// BuildCollections pairs each category with its preview products. previews
// is indexed like cats; categories without products are left out. Colors
// follow the category's position in cats, so they stay stable when a
// neighbour is dropped.
func BuildCollections(cats []RawCategory, previews [][]Product, images *imageurl.Resolver) []Collection {
	out := make([]Collection, 0, len(cats))
	for i, cat := range cats {
		if i >= len(previews) || len(previews[i]) == 0 {
			continue
		}

		image := DefaultCollectionImage
		if cat.Image.URL != "" {
			image = images.ResolveString(cat.Image.URL)
		}

		desc := cat.Description
		if strings.TrimSpace(desc) == "" {
			desc = fmt.Sprintf("Discover our curated %s collection.", strings.ToLower(cat.Name))
		}

		out = append(out, Collection{
			ID:          cat.ID,
			Title:       cat.Name,
			Subtitle:    "Explore " + cat.Name,
			Description: desc,
			Image:       image,
			Color:       collectionPalette[i%len(collectionPalette)],
			Category:    cat.Slug,
			Products:    previews[i],
		})
	}
	return out
}
