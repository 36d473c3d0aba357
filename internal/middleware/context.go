package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
)

type ctxKey string

const (
	ctxCorrelationID ctxKey = "correlation_id"
	ctxCartSession   ctxKey = "cart_session"
)

func stringFrom(ctx context.Context, k ctxKey) string {
	if v := ctx.Value(k); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:         msg,
		CorrelationID: GetCorrelationID(r.Context()),
	})
}
