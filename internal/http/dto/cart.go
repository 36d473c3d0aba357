package dto

import "github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"

// ProductRef is the body of the stateless cart and wishlist endpoints.
type ProductRef struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

type CartAddStub struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CartAddResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Cart    CartAddStub `json:"cart"`
}

type WishlistState struct {
	ProductID    string `json:"productId"`
	IsWishlisted bool   `json:"isWishlisted"`
}

type WishlistToggleResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Wishlist WishlistState `json:"wishlist"`
}

// Cart is the session cart view.
type Cart struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
	Count int         `json:"count"`
}

type AddCartItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

func (r AddCartItemRequest) Item() cart.Item {
	return cart.Item{
		ProductID: r.ProductID,
		Name:      r.Name,
		Price:     r.Price,
		Image:     r.Image,
		Color:     r.Color,
		Size:      r.Size,
		Stock:     r.Stock,
	}
}

type UpdateCartItemRequest struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (r UpdateCartItemRequest) Key() cart.Key {
	return cart.Key{ProductID: r.ProductID, Color: r.Color, Size: r.Size}
}
