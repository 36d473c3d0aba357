package catalog

import (
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/imageurl"
)

const (
	DefaultHeroImage       = "https://i.postimg.cc/t403yfn9/home2.jpg"
	DefaultCollectionImage = "https://i.postimg.cc/Xqmwr12c/clothing.webp"
)

// DefaultHero keeps the landing page renderable when hero settings are
// unavailable.
func DefaultHero() map[string]any {
	return map[string]any{
		"imageUrl":    DefaultHeroImage,
		"title":       "SUMMER COLLECTION",
		"heading":     "FALL - WINTER\nCollection 2025",
		"description": "A specialist label creating luxury essentials. Ethically crafted with an unwavering commitment to exceptional quality.",
		"buttonText":  "New Collection",
		"buttonLink":  "#new-collection",
	}
}

func DefaultCollection() map[string]any {
	return map[string]any{
		"imageUrl": nil,
		"title":    "Our Collections",
		"subtitle": "Explore our curated selection of premium products",
	}
}

// NormalizeHero makes imageUrl absolute and fills in the stock image when
// none is set. Other fields pass through untouched.
func NormalizeHero(settings map[string]any, images *imageurl.Resolver) map[string]any {
	if s, ok := settings["imageUrl"].(string); ok && strings.TrimSpace(s) != "" {
		settings["imageUrl"] = images.ResolveString(s)
	} else {
		settings["imageUrl"] = DefaultHeroImage
	}
	return settings
}

// NormalizeCollection makes a relative imageUrl absolute. A missing image
// stays null so the page can fall back to its own artwork.
func NormalizeCollection(settings map[string]any, images *imageurl.Resolver) map[string]any {
	if s, ok := settings["imageUrl"].(string); ok && strings.TrimSpace(s) != "" {
		settings["imageUrl"] = images.ResolveString(s)
	}
	return settings
}
