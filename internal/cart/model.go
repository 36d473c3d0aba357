package cart

import "errors"

var (
	ErrStockExceeded   = errors.New("requested quantity exceeds available stock")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Item is one cart line. Stock is the product's stock as seen when the item
// was added; it is not refreshed afterwards.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Stock     int     `json:"stock"`
}

// Key identifies a line: the same product in another color or size is a
// separate line.
type Key struct {
	ProductID string
	Color     string
	Size      string
}

func (it Item) Key() Key {
	return Key{ProductID: it.ProductID, Color: it.Color, Size: it.Size}
}

func (it Item) LineTotal() float64 {
	return it.Price * float64(it.Quantity)
}
