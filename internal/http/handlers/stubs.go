package handlers

import (
	"net/http"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
)

// AddToCart acknowledges an add without touching any state. Session carts
// live under /api/cart.
func AddToCart(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRef
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.ProductID) == "" {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Product ID is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	writeJSON(w, http.StatusOK, dto.CartAddResponse{
		Success: true,
		Message: "Product added to cart",
		Cart:    dto.CartAddStub{ProductID: req.ProductID, Quantity: req.Quantity},
	})
}

func ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRef
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.ProductID) == "" {
		WriteUpstreamError(w, r, http.StatusBadRequest, "Product ID is required")
		return
	}

	writeJSON(w, http.StatusOK, dto.WishlistToggleResponse{
		Success:  true,
		Message:  "Wishlist toggled",
		Wishlist: dto.WishlistState{ProductID: req.ProductID, IsWishlisted: true},
	})
}
