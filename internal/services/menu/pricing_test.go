package menu_test

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-system/internal/models"
	"pizzeria-system/internal/services/menu"
)

func pizza(price string) models.Pizza {
	return models.Pizza{CatalogItem: models.CatalogItem{Name: "pizza", Price: decimal.RequireFromString(price), Available: true}}
}

func drink(price string, withAlcohol bool) models.Drink {
	return models.Drink{CatalogItem: models.CatalogItem{Name: "drink", Price: decimal.RequireFromString(price), Available: true}, WithAlcohol: withAlcohol}
}

func dessert(price string) models.Dessert {
	return models.Dessert{CatalogItem: models.CatalogItem{Name: "dessert", Price: decimal.RequireFromString(price), Available: true}}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		pizzas   []models.Pizza
		drinks   []models.Drink
		desserts []models.Dessert
		want     string
	}{
		{
			name:     "bundle with extra alcoholic drink",
			pizzas:   []models.Pizza{pizza("8.50")},
			drinks:   []models.Drink{drink("3.50", false), drink("4.50", true)},
			desserts: []models.Dessert{dessert("5.50")},
			// bundle 17.50, discount 1.75, plus the beer at full price
			want: "20.25",
		},
		{
			name:     "no drinks is not eligible",
			pizzas:   []models.Pizza{pizza("8.50"), pizza("10.50")},
			desserts: []models.Dessert{dessert("5.50")},
			want:     "24.50",
		},
		{
			name:     "only alcoholic drinks is not eligible",
			pizzas:   []models.Pizza{pizza("8.50")},
			drinks:   []models.Drink{drink("4.50", true), drink("6.00", true)},
			desserts: []models.Dessert{dessert("5.50")},
			want:     "24.50",
		},
		{
			name:   "no dessert is not eligible",
			pizzas: []models.Pizza{pizza("8.50")},
			drinks: []models.Drink{drink("3.50", false)},
			want:   "12.00",
		},
		{
			name:     "no pizza is not eligible",
			drinks:   []models.Drink{drink("3.50", false)},
			desserts: []models.Dessert{dessert("5.50")},
			want:     "9.00",
		},
		{
			name:     "minimal bundle",
			pizzas:   []models.Pizza{pizza("8.50")},
			drinks:   []models.Drink{drink("3.50", false)},
			desserts: []models.Dessert{dessert("5.50")},
			want:     "15.75",
		},
		{
			name:     "extra items priced at full price",
			pizzas:   []models.Pizza{pizza("8.50"), pizza("10.50")},
			drinks:   []models.Drink{drink("3.50", false), drink("2.50", false)},
			desserts: []models.Dessert{dessert("5.50"), dessert("6.00")},
			// bundle 17.50 -> 15.75, plus 10.50 + 2.50 + 6.00
			want: "34.75",
		},
		{
			name: "empty selection",
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := menu.Price(tt.pizzas, tt.drinks, tt.desserts)
			require.NoError(t, err)

			want := decimal.RequireFromString(tt.want)
			assert.Truef(t, want.Equal(total), "want %s, got %s", want, total)
		})
	}
}

// The bundle triple is the first pizza, first non-alcoholic drink and
// first dessert in the given (storage) order, never the cheapest or the
// last.
func TestPrice_BundleSelectsFirstInStorageOrder(t *testing.T) {
	pizzas := []models.Pizza{pizza("12.00"), pizza("8.00")}
	drinks := []models.Drink{drink("9.99", true), drink("5.00", false), drink("2.00", false)}
	desserts := []models.Dessert{dessert("7.00"), dessert("3.00")}

	total, err := menu.Price(pizzas, drinks, desserts)
	require.NoError(t, err)

	// bundle = 12.00 + 5.00 + 7.00 = 24.00, discounted to 21.60;
	// remaining 8.00 + 9.99 + 2.00 + 3.00 at full price.
	want := decimal.RequireFromString("44.59")
	assert.Truef(t, want.Equal(total), "want %s, got %s", want, total)
}

func TestPrice_Randomized(t *testing.T) {
	faker := gofakeit.New(7)

	randPrice := func() decimal.Decimal {
		cents := faker.Number(1, 5000)
		return decimal.New(int64(cents), -2)
	}

	for i := 0; i < 200; i++ {
		var pizzas []models.Pizza
		for range faker.Number(0, 4) {
			pizzas = append(pizzas, models.Pizza{CatalogItem: models.CatalogItem{Name: faker.Word(), Price: randPrice()}})
		}
		var drinks []models.Drink
		for range faker.Number(0, 4) {
			drinks = append(drinks, models.Drink{CatalogItem: models.CatalogItem{Name: faker.Word(), Price: randPrice()}, WithAlcohol: faker.Bool()})
		}
		var desserts []models.Dessert
		for range faker.Number(0, 4) {
			desserts = append(desserts, models.Dessert{CatalogItem: models.CatalogItem{Name: faker.Word(), Price: randPrice()}})
		}

		fullSum := decimal.Zero
		for _, p := range pizzas {
			fullSum = fullSum.Add(p.Price)
		}
		for _, d := range drinks {
			fullSum = fullSum.Add(d.Price)
		}
		for _, d := range desserts {
			fullSum = fullSum.Add(d.Price)
		}

		var firstNonAlcoholic *models.Drink
		for j := range drinks {
			if !drinks[j].WithAlcohol {
				firstNonAlcoholic = &drinks[j]
				break
			}
		}

		want := fullSum
		if len(pizzas) > 0 && firstNonAlcoholic != nil && len(desserts) > 0 {
			bundle := pizzas[0].Price.Add(firstNonAlcoholic.Price).Add(desserts[0].Price)
			want = fullSum.Sub(bundle.Mul(decimal.RequireFromString("0.1")))
		}

		total, err := menu.Price(pizzas, drinks, desserts)
		require.NoError(t, err)
		require.Truef(t, want.Equal(total),
			"iteration %d: want %s, got %s (%s)", i, want, total,
			fmt.Sprintf("%d pizzas, %d drinks, %d desserts", len(pizzas), len(drinks), len(desserts)))
	}
}
