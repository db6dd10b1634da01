package models

import (
	"time"

	"github.com/shopspring/decimal"

	"pizzeria-system/internal/apperr"
)

// Order is a persisted customer order. The id lists reference catalog
// items, one entry per purchased unit (duplicates allowed). TotalPrice
// is a cached derived value: it is recomputed from the resolved items on
// every create/update and never taken from the client.
type Order struct {
	ID         int             `json:"id"`
	PizzaIDs   []int           `json:"pizzas"`
	DrinkIDs   []int           `json:"drinks"`
	DessertIDs []int           `json:"desserts"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Processed  bool            `json:"processed"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// CreateOrderRequest is the payload for creating an order. Drinks and
// desserts are optional; pizzas are not.
type CreateOrderRequest struct {
	Pizzas   []int `json:"pizzas"`
	Drinks   []int `json:"drinks,omitempty"`
	Desserts []int `json:"desserts,omitempty"`
}

// Validate checks the create request. An order must contain at least
// one pizza; the engine re-checks this defensively.
func (req *CreateOrderRequest) Validate() error {
	if len(req.Pizzas) == 0 {
		return apperr.NewValidation("pizzas", "at least one pizza is required")
	}
	return nil
}

// UpdateOrderRequest is the payload for updating an order. Nil fields
// keep the stored id list; a present empty list replaces it (partial
// update semantics, not partial-item semantics).
type UpdateOrderRequest struct {
	Pizzas   *[]int `json:"pizzas,omitempty"`
	Drinks   *[]int `json:"drinks,omitempty"`
	Desserts *[]int `json:"desserts,omitempty"`
}
