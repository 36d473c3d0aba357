package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
)

const maxOrderBody = 1 << 20

type OrderHandler struct {
	backend *clients.BackendClient
	logger  *log.Logger
}

func NewOrderHandler(backend *clients.BackendClient, logger *log.Logger) *OrderHandler {
	return &OrderHandler{backend: backend, logger: logger}
}

// Create relays the order body to the backend untouched.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxOrderBody))
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Invalid order payload")
		return
	}

	status, body, err := h.backend.CreateOrder(r.Context(), payload)
	if err != nil {
		logUpstreamFailure(h.logger, "POST /api/orders/create", err)
		WriteUpstreamError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	relayOrderResult(w, r, h.logger, status, body)
}

// relayOrderResult answers 201 with the backend's body on success and mirrors
// the backend's status and message otherwise.
func relayOrderResult(w http.ResponseWriter, r *http.Request, logger *log.Logger, status int, body []byte) {
	if status < 200 || status > 299 {
		logUpstreamFailure(logger, "POST /api/orders/create", &clients.StatusError{Endpoint: "POST /api/orders/create", Status: status, Body: body})
		msg := clients.ErrorMessage(body)
		if msg == "" {
			msg = "Failed to create order"
		}
		WriteUpstreamError(w, r, status, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := h.backend.GetOrder(r.Context(), orderNumber)
	if err != nil {
		logUpstreamFailure(h.logger, "GET /api/orders/"+orderNumber, err)
		if errors.Is(err, clients.ErrNotFound) {
			WriteUpstreamError(w, r, http.StatusNotFound, "Order not found")
			return
		}
		WriteUpstreamError(w, r, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, dto.OrderResponse{Order: order})
}
