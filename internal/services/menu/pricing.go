// Package menu computes order totals, including the menu bundle
// discount: 10% off one pizza + non-alcoholic drink + dessert triple
// when the order contains at least one of each.
package menu

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"pizzeria-system/internal/apperr"
	"pizzeria-system/internal/models"
)

// discountRate is the bundle reduction applied to exactly one triple.
var discountRate = decimal.New(1, -1) // 0.10

// Price returns the total for the resolved items. Items arrive in
// catalog storage order (the FindByIDs contract), so "first pizza" means
// first matching stored pizza, not first in the request.
//
// The returned amount is exact; callers round to two decimal places at
// the display/persistence boundary only.
func Price(pizzas []models.Pizza, drinks []models.Drink, desserts []models.Dessert) (decimal.Decimal, error) {
	hasPizza := len(pizzas) > 0
	hasNonAlcoholicDrink := lo.SomeBy(drinks, func(d models.Drink) bool { return !d.WithAlcohol })
	hasDessert := len(desserts) > 0

	if !hasPizza || !hasNonAlcoholicDrink || !hasDessert {
		total := sumPrices(pizzas, pizzaPrice).
			Add(sumPrices(drinks, drinkPrice)).
			Add(sumPrices(desserts, dessertPrice))
		return total, nil
	}

	bundlePizza := pizzas[0]
	bundleDessert := desserts[0]
	bundleDrink, found := lo.Find(drinks, func(d models.Drink) bool { return !d.WithAlcohol })
	if !found {
		// Unreachable: eligibility above requires a non-alcoholic drink.
		return decimal.Zero, fmt.Errorf("bundle drink missing after eligibility check: %w", apperr.ErrInternalInconsistency)
	}

	bundleSubtotal := bundlePizza.Price.Add(bundleDrink.Price).Add(bundleDessert.Price)
	bundleDiscount := bundleSubtotal.Mul(discountRate)

	alcoholicDrinks := lo.Filter(drinks, func(d models.Drink, _ int) bool { return d.WithAlcohol })
	nonAlcoholicDrinks := lo.Filter(drinks, func(d models.Drink, _ int) bool { return !d.WithAlcohol })

	total := bundleSubtotal.Sub(bundleDiscount).
		Add(sumPrices(pizzas[1:], pizzaPrice)).
		Add(sumPrices(alcoholicDrinks, drinkPrice)).
		Add(sumPrices(nonAlcoholicDrinks[1:], drinkPrice)).
		Add(sumPrices(desserts[1:], dessertPrice))

	return total, nil
}

func sumPrices[T any](items []T, price func(T) decimal.Decimal) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, item T, _ int) decimal.Decimal {
		return acc.Add(price(item))
	}, decimal.Zero)
}

func pizzaPrice(p models.Pizza) decimal.Decimal { return p.Price }

func drinkPrice(d models.Drink) decimal.Decimal { return d.Price }

func dessertPrice(d models.Dessert) decimal.Decimal { return d.Price }
