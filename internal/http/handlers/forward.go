package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteUpstreamError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeErrorDetails(w, r, status, msg, "")
}

func writeErrorDetails(w http.ResponseWriter, r *http.Request, status int, msg, details string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:         msg,
		Details:       details,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}

// logUpstreamFailure records a failed backend call with the upstream status
// when there was one.
func logUpstreamFailure(logger *log.Logger, endpoint string, err error) {
	if logger == nil {
		return
	}
	var se *clients.StatusError
	if errors.As(err, &se) {
		logger.Printf("%s failed: upstream status %d", endpoint, se.Status)
		return
	}
	logger.Printf("%s failed: %v", endpoint, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(v)
}
