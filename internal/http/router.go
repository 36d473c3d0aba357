package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/handlers"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/imageurl"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

type Deps struct {
	Logger *log.Logger
	Cfg    config.Config

	Backend  *clients.BackendClient
	Images   *imageurl.Resolver
	Carts    cart.Slots
	Sessions *middleware.CartSessions
	Events   events.OrderPublisher

	HealthProbes []clients.HealthProbe
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middlewares (outer -> inner)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
	r.Use(middleware.CorrelationID)
	r.Use(chimw.Logger)

	reshaper := catalog.NewReshaper(d.Images)

	// Health
	health := &handlers.HealthHandler{Probes: d.HealthProbes}
	r.Get("/health", health.Storefront)
	r.Get("/health/upstreams", health.Upstreams)

	r.Route("/api", func(r chi.Router) {
		cat := handlers.NewCatalogHandler(d.Backend, reshaper, d.Logger)
		r.Get("/products", cat.ListProducts)
		r.Get("/products/{id}", cat.GetProduct)
		r.Get("/products/{id}/related", cat.RelatedProducts)
		r.Get("/products/{id}/reviews", cat.Reviews)
		r.Get("/categories", cat.Categories)

		settings := handlers.NewSettingsHandler(d.Backend, reshaper, d.Images, d.Logger)
		r.Get("/hero", settings.Hero)
		r.Get("/collection", settings.Collection)
		r.Get("/collections/gallery", settings.Gallery)

		orders := handlers.NewOrderHandler(d.Backend, d.Logger)
		r.Post("/orders/create", orders.Create)
		r.Get("/orders/{orderNumber}", orders.Get)

		img := handlers.NewImageHandler(d.Backend, d.Images, d.Cfg.ImageAllowHosts, d.Logger)
		r.Get("/images", img.Images)
		r.Get("/image-proxy", img.Proxy)

		r.Post("/cart/add", handlers.AddToCart)
		r.Post("/wishlist/toggle", handlers.ToggleWishlist)

		// Session cart
		carts := handlers.NewCartHandler(d.Carts, d.Backend, d.Events, d.Logger)
		r.Group(func(r chi.Router) {
			r.Use(d.Sessions.Middleware)
			r.Get("/cart", carts.Get)
			r.Delete("/cart", carts.Clear)
			r.Post("/cart/items", carts.AddItem)
			r.Patch("/cart/items", carts.UpdateItem)
			r.Delete("/cart/items", carts.RemoveItem)
			r.Post("/cart/checkout", carts.Checkout)
		})
	})

	return r
}
