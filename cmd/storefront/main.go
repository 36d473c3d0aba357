package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/imageurl"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lmicroseconds)
	if cfg.DefaultSessionSecret() {
		logger.Printf("WARNING: CART_SESSION_SECRET is not set; cart sessions are signed with the public development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Base HTTP client (shared)
	sharedHTTP := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	backendBase := clients.NewClient("backend", cfg.BackendURL, sharedHTTP)
	backend := clients.NewBackendClient(backendBase)

	// --- Cart persistence ---
	carts, closeCarts, err := openCartSlots(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("cart store: %v", err)
	}
	defer closeCarts()

	// --- AMQP ---
	var publisher events.OrderPublisher = events.NopPublisher{Logger: logger}
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatalf("rabbitmq dial: %v", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:   logger,
		Cfg:      cfg,
		Backend:  backend,
		Images:   imageurl.NewResolver(cfg.BackendURL, logger),
		Carts:    carts,
		Sessions: middleware.NewCartSessions(cfg.CartSessionSecret, cfg.CartTTL, logger),
		Events:   publisher,
		HealthProbes: []clients.HealthProbe{
			{Name: "backend", Client: backendBase, Path: "/api/public/categories", Timeout: cfg.HealthProbeTimeout},
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on :%s (backend %s, cart store %s)", cfg.Port, cfg.BackendURL, cfg.CartStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	logger.Printf("shutdown complete")
}

// openCartSlots picks the cart persistence backend named by CART_STORE. The
// returned func releases whatever connection it opened.
func openCartSlots(ctx context.Context, cfg config.Config, logger *log.Logger) (cart.Slots, func(), error) {
	noop := func() {}

	switch cfg.CartStore {
	case "", "memory":
		return cart.NewMemorySlots(), noop, nil

	case "file":
		if err := os.MkdirAll(cfg.CartFileDir, 0o755); err != nil {
			return nil, noop, fmt.Errorf("create cart dir: %w", err)
		}
		return cart.NewFileSlots(cfg.CartFileDir), noop, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return cart.NewRedisSlots(rdb, cfg.CartTTL), func() { _ = rdb.Close() }, nil

	case "postgres":
		if cfg.DatabaseDSN == "" {
			return nil, noop, errors.New("CART_STORE=postgres needs DATABASE_DSN")
		}
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				return nil, noop, fmt.Errorf("db migrate: %w", err)
			}
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("db connect: %w", err)
		}
		return cart.NewPostgresSlots(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown CART_STORE %q", cfg.CartStore)
	}
}
