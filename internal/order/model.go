package order

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCreditCard     PaymentMethod = "credit_card"
)

// DefaultCountry is the checkout form's preselected country.
const DefaultCountry = "United States"

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCustomer = errors.New("invalid customer details")
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type Customer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// Item is a snapshot of a cart line at checkout.
type Item struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Color    string  `json:"color,omitempty"`
	Size     string  `json:"size,omitempty"`
}

// Order is the submission payload for the backend's order endpoint.
type Order struct {
	Customer      Customer      `json:"customer"`
	Items         []Item        `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Shipping      float64       `json:"shipping"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes,omitempty"`
}

// Checkout is what the shopper submits alongside their cart.
type Checkout struct {
	Customer      Customer      `json:"customer"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes"`
}

// FieldError lists the customer fields that failed validation.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return "missing or invalid: " + strings.Join(e.Fields, ", ")
}

func (e *FieldError) Unwrap() error { return ErrInvalidCustomer }

func (c Customer) Validate() error {
	var bad []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			bad = append(bad, name)
		}
	}
	check("name", c.Name)
	check("phone", c.Phone)
	check("address.street", c.Address.Street)
	check("address.city", c.Address.City)
	check("address.state", c.Address.State)
	check("address.zipCode", c.Address.ZipCode)

	if _, err := mail.ParseAddress(strings.TrimSpace(c.Email)); err != nil {
		bad = append(bad, "email")
	}

	if len(bad) > 0 {
		return &FieldError{Fields: bad}
	}
	return nil
}

// FromCart builds the order for the given cart lines. Shipping and tax are
// not charged online, so the total equals the subtotal rounded to cents.
func FromCart(lines []cart.Item, c Checkout) (Order, error) {
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}
	if err := c.Customer.Validate(); err != nil {
		return Order{}, err
	}

	pm := c.PaymentMethod
	switch pm {
	case "":
		pm = PaymentCashOnDelivery
	case PaymentCashOnDelivery, PaymentCreditCard:
	default:
		return Order{}, fmt.Errorf("payment method %q: %w", pm, ErrInvalidCustomer)
	}

	o := Order{
		Customer:      c.Customer,
		Items:         make([]Item, 0, len(lines)),
		PaymentMethod: pm,
		Notes:         strings.TrimSpace(c.Notes),
	}
	if strings.TrimSpace(o.Customer.Address.Country) == "" {
		o.Customer.Address.Country = DefaultCountry
	}

	var subtotal float64
	for _, l := range lines {
		o.Items = append(o.Items, Item{
			Product:  l.ProductID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
			Image:    l.Image,
			Color:    l.Color,
			Size:     l.Size,
		})
		subtotal += l.LineTotal()
	}

	o.Subtotal = roundCents(subtotal)
	o.Total = o.Subtotal + o.Shipping + o.Tax
	return o, nil
}

func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
