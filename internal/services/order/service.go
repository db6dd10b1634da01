// Package order implements the order engine: it resolves catalog ids,
// validates availability, prices the selection and persists immutable
// order records with monotonically increasing ids.
package order

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"pizzeria-system/internal/apperr"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
)

// PizzaLookup resolves pizza ids against the pizza catalog.
type PizzaLookup interface {
	FindByIDs(ids []int) ([]models.Pizza, error)
}

// DrinkLookup resolves drink ids against the drink catalog.
type DrinkLookup interface {
	FindByIDs(ids []int) ([]models.Drink, error)
}

// DessertLookup resolves dessert ids against the dessert catalog.
type DessertLookup interface {
	FindByIDs(ids []int) ([]models.Dessert, error)
}

// Store persists the order collection as a whole: no partial writes.
type Store interface {
	ReadAll() ([]models.Order, error)
	WriteAll(orders []models.Order) error
}

// PriceFunc computes the total for a resolved selection.
type PriceFunc func(pizzas []models.Pizza, drinks []models.Drink, desserts []models.Dessert) (decimal.Decimal, error)

// Service orchestrates order creation and lifecycle. Every mutating
// operation is a read-modify-write cycle over the whole collection with
// no locking across the cycle; concurrent writers can lose updates
// (single writer expected by convention).
type Service struct {
	store    Store
	pizzas   PizzaLookup
	drinks   DrinkLookup
	desserts DessertLookup
	price    PriceFunc
	logger   *logger.Logger
}

// NewService wires the order engine to its collaborators.
func NewService(store Store, pizzas PizzaLookup, drinks DrinkLookup, desserts DessertLookup, price PriceFunc, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		pizzas:   pizzas,
		drinks:   drinks,
		desserts: desserts,
		price:    price,
		logger:   log,
	}
}

// resolvedSelection holds the catalog items an id selection resolved to.
type resolvedSelection struct {
	pizzas   []models.Pizza
	drinks   []models.Drink
	desserts []models.Dessert
}

// Create validates the selection, prices it and persists a new order.
// The new order id is max(existing)+1; processed starts false and
// createdAt is set once, here.
func (s *Service) Create(req *models.CreateOrderRequest, requestID string) (models.Order, error) {
	var zero models.Order

	if err := req.Validate(); err != nil {
		return zero, err
	}

	resolved, err := s.resolve(req.Pizzas, req.Drinks, req.Desserts, requestID)
	if err != nil {
		return zero, err
	}

	total, err := s.price(resolved.pizzas, resolved.drinks, resolved.desserts)
	if err != nil {
		return zero, err
	}

	orders, err := s.store.ReadAll()
	if err != nil {
		return zero, err
	}

	newOrder := models.Order{
		ID:         nextOrderID(orders),
		PizzaIDs:   req.Pizzas,
		DrinkIDs:   emptyIfNil(req.Drinks),
		DessertIDs: emptyIfNil(req.Desserts),
		TotalPrice: total.Round(2),
		Processed:  false,
		CreatedAt:  time.Now().UTC(),
	}

	orders = append(orders, newOrder)
	if err := s.store.WriteAll(orders); err != nil {
		return zero, err
	}

	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_id":    newOrder.ID,
		"total_price": newOrder.TotalPrice.String(),
	})
	return newOrder, nil
}

// Update re-resolves and re-prices the order. Nil id lists in the
// request keep the stored lists; processed and createdAt are preserved
// unchanged.
func (s *Service) Update(id int, req *models.UpdateOrderRequest, requestID string) (models.Order, error) {
	var zero models.Order

	orders, err := s.store.ReadAll()
	if err != nil {
		return zero, err
	}

	idx := indexOf(orders, id)
	if idx == -1 {
		return zero, fmt.Errorf("order with id %d: %w", id, apperr.ErrNotFound)
	}
	current := orders[idx]

	pizzaIDs := current.PizzaIDs
	if req.Pizzas != nil {
		pizzaIDs = *req.Pizzas
	}
	drinkIDs := current.DrinkIDs
	if req.Drinks != nil {
		drinkIDs = *req.Drinks
	}
	dessertIDs := current.DessertIDs
	if req.Desserts != nil {
		dessertIDs = *req.Desserts
	}

	resolved, err := s.resolve(pizzaIDs, drinkIDs, dessertIDs, requestID)
	if err != nil {
		return zero, err
	}

	total, err := s.price(resolved.pizzas, resolved.drinks, resolved.desserts)
	if err != nil {
		return zero, err
	}

	orders[idx] = models.Order{
		ID:         id,
		PizzaIDs:   emptyIfNil(pizzaIDs),
		DrinkIDs:   emptyIfNil(drinkIDs),
		DessertIDs: emptyIfNil(dessertIDs),
		TotalPrice: total.Round(2),
		Processed:  current.Processed,
		CreatedAt:  current.CreatedAt,
	}

	if err := s.store.WriteAll(orders); err != nil {
		return zero, err
	}

	s.logger.Info("order_updated", "Order updated", requestID, map[string]interface{}{
		"order_id":    id,
		"total_price": orders[idx].TotalPrice.String(),
	})
	return orders[idx], nil
}

// Get returns the order with the given id.
func (s *Service) Get(id int) (models.Order, error) {
	var zero models.Order

	orders, err := s.store.ReadAll()
	if err != nil {
		return zero, err
	}

	idx := indexOf(orders, id)
	if idx == -1 {
		return zero, fmt.Errorf("order with id %d: %w", id, apperr.ErrNotFound)
	}
	return orders[idx], nil
}

// List returns all orders in storage (insertion) order. Filtering by
// processed state is left to the caller.
func (s *Service) List() ([]models.Order, error) {
	return s.store.ReadAll()
}

// MarkProcessed flips the order to processed. The transition is one-way
// and idempotent: marking an already-processed order succeeds unchanged.
func (s *Service) MarkProcessed(id int, requestID string) (models.Order, error) {
	var zero models.Order

	orders, err := s.store.ReadAll()
	if err != nil {
		return zero, err
	}

	idx := indexOf(orders, id)
	if idx == -1 {
		return zero, fmt.Errorf("order with id %d: %w", id, apperr.ErrNotFound)
	}

	orders[idx].Processed = true
	if err := s.store.WriteAll(orders); err != nil {
		return zero, err
	}

	s.logger.Info("order_processed", "Order marked as processed", requestID, map[string]interface{}{
		"order_id": id,
	})
	return orders[idx], nil
}

// Delete removes the order record entirely, processed or not.
func (s *Service) Delete(id int, requestID string) error {
	orders, err := s.store.ReadAll()
	if err != nil {
		return err
	}

	idx := indexOf(orders, id)
	if idx == -1 {
		return fmt.Errorf("order with id %d: %w", id, apperr.ErrNotFound)
	}

	orders = append(orders[:idx], orders[idx+1:]...)
	if err := s.store.WriteAll(orders); err != nil {
		return err
	}

	s.logger.Info("order_deleted", "Order deleted", requestID, map[string]interface{}{
		"order_id": id,
	})
	return nil
}

// HealthCheck reports whether the order store is readable.
func (s *Service) HealthCheck() bool {
	_, err := s.store.ReadAll()
	return err == nil
}

// resolve maps the id lists to catalog items and rejects the selection
// when any resolved item is unavailable, naming every offender grouped
// by catalog. Unknown ids are dropped by the lookups; a short resolution
// is logged but not an error.
func (s *Service) resolve(pizzaIDs, drinkIDs, dessertIDs []int, requestID string) (resolvedSelection, error) {
	var sel resolvedSelection
	var err error

	sel.pizzas, err = s.pizzas.FindByIDs(pizzaIDs)
	if err != nil {
		return sel, fmt.Errorf("resolving pizzas: %w", err)
	}
	sel.drinks, err = s.drinks.FindByIDs(drinkIDs)
	if err != nil {
		return sel, fmt.Errorf("resolving drinks: %w", err)
	}
	sel.desserts, err = s.desserts.FindByIDs(dessertIDs)
	if err != nil {
		return sel, fmt.Errorf("resolving desserts: %w", err)
	}

	requested := len(pizzaIDs) + len(drinkIDs) + len(dessertIDs)
	found := len(sel.pizzas) + len(sel.drinks) + len(sel.desserts)
	if found < requested {
		s.logger.Warn("order_resolution_short", "Some requested ids did not resolve and were dropped", requestID, map[string]interface{}{
			"requested": requested,
			"resolved":  found,
		})
	}

	unavailable := &apperr.UnavailableItemsError{
		Pizzas: lo.FilterMap(sel.pizzas, func(p models.Pizza, _ int) (string, bool) {
			return p.Name, !p.Available
		}),
		Drinks: lo.FilterMap(sel.drinks, func(d models.Drink, _ int) (string, bool) {
			return d.Name, !d.Available
		}),
		Desserts: lo.FilterMap(sel.desserts, func(d models.Dessert, _ int) (string, bool) {
			return d.Name, !d.Available
		}),
	}
	if unavailable.HasAny() {
		return sel, unavailable
	}

	return sel, nil
}

func indexOf(orders []models.Order, id int) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

func nextOrderID(orders []models.Order) int {
	if len(orders) == 0 {
		return 1
	}
	maxID := lo.Max(lo.Map(orders, func(o models.Order, _ int) int { return o.ID }))
	return maxID + 1
}

func emptyIfNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
