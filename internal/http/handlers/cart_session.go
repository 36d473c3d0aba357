package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

// CartHandler serves the session cart. Every request takes the session lock,
// opens the session's store, applies one operation and answers with the
// resulting cart.
type CartHandler struct {
	slots   cart.Slots
	locks   *cart.SessionLocks
	backend *clients.BackendClient
	events  events.OrderPublisher
	logger  *log.Logger
}

func NewCartHandler(slots cart.Slots, backend *clients.BackendClient, pub events.OrderPublisher, logger *log.Logger) *CartHandler {
	return &CartHandler{slots: slots, locks: cart.NewSessionLocks(), backend: backend, events: pub, logger: logger}
}

// open locks the session and loads its cart. The caller must call unlock once
// it is done with the store.
func (h *CartHandler) open(r *http.Request) (store *cart.Store, sid string, unlock func()) {
	sid = middleware.GetCartSessionID(r.Context())
	unlock = h.locks.Lock(sid)
	return cart.Open(r.Context(), h.slots.For(sid), cart.WithLogger(h.logger)), sid, unlock
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, _, unlock := h.open(r)
	defer unlock()
	writeJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Product ID is required")
		return
	}

	store, _, unlock := h.open(r)
	defer unlock()
	if err := store.Add(r.Context(), req.Item(), req.Quantity); err != nil {
		writeCartError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Product ID is required")
		return
	}

	store, _, unlock := h.open(r)
	defer unlock()
	if err := store.UpdateQuantity(r.Context(), req.Key(), req.Quantity); err != nil {
		writeCartError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := cart.Key{ProductID: q.Get("productId"), Color: q.Get("color"), Size: q.Get("size")}
	if strings.TrimSpace(key.ProductID) == "" {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Product ID is required")
		return
	}

	store, _, unlock := h.open(r)
	defer unlock()
	store.Remove(r.Context(), key)
	writeJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store, _, unlock := h.open(r)
	defer unlock()
	store.Clear(r.Context())
	writeJSON(w, http.StatusOK, cartView(store))
}

// Checkout submits the cart as an order. The cart is only emptied once the
// backend accepted the order; the session stays locked until then so nothing
// added meanwhile is cleared unordered.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req order.Checkout
	if err := decodeJSON(w, r, &req); err != nil {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	store, sid, unlock := h.open(r)
	defer unlock()
	o, err := order.FromCart(store.Items(), req)
	if err != nil {
		var fe *order.FieldError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			WriteUpstreamError(w, r, http.StatusBadRequest, "Cart is empty")
		case errors.As(err, &fe):
			writeErrorDetails(w, r, http.StatusBadRequest, "Invalid customer details", fe.Error())
		default:
			writeErrorDetails(w, r, http.StatusBadRequest, "Invalid checkout request", err.Error())
		}
		return
	}

	payload, err := json.Marshal(o)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	status, body, err := h.backend.CreateOrder(r.Context(), payload)
	if err != nil {
		logUpstreamFailure(h.logger, "POST /api/orders/create", err)
		WriteUpstreamError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if status >= 200 && status <= 299 {
		store.Clear(r.Context())
		h.publishPlaced(r, sid, o, body)
	}
	relayOrderResult(w, r, h.logger, status, body)
}

func (h *CartHandler) publishPlaced(r *http.Request, sid string, o order.Order, body []byte) {
	if h.events == nil {
		return
	}

	var placed struct {
		OrderNumber string `json:"orderNumber"`
		Order       struct {
			OrderNumber string `json:"orderNumber"`
		} `json:"order"`
	}
	_ = json.Unmarshal(body, &placed)
	orderNumber := placed.OrderNumber
	if orderNumber == "" {
		orderNumber = placed.Order.OrderNumber
	}

	err := h.events.PublishOrderPlaced(r.Context(), events.EventMeta{
		CorrelationID: middleware.GetCorrelationID(r.Context()),
		PartitionKey:  firstNonBlank(orderNumber, sid),
	}, events.OrderPlaced{
		OrderNumber:   orderNumber,
		SessionID:     sid,
		Total:         o.Total,
		ItemCount:     o.ItemCount(),
		PaymentMethod: string(o.PaymentMethod),
	})
	if err != nil {
		h.logger.Printf("publish OrderPlaced for %s: %v", orderNumber, err)
	}
}

func cartView(s *cart.Store) dto.Cart {
	return dto.Cart{Items: s.Items(), Total: s.Total(), Count: s.Count()}
}

func writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cart.ErrStockExceeded):
		WriteUpstreamError(w, r, http.StatusConflict, "Requested quantity exceeds available stock")
	case errors.Is(err, cart.ErrInvalidQuantity):
		WriteUpstreamError(w, r, http.StatusBadRequest, "Quantity must be at least 1")
	default:
		WriteUpstreamError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
