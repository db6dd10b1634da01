package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"pizzeria-system/internal/apperr"
)

// Prices are persisted and served as plain JSON numbers, not quoted
// strings, so stored records round-trip through the flat files exactly.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CatalogItem is the part shared by every catalog entry. It is embedded
// by the concrete item types so one generic service can manage all three
// catalogs.
type CatalogItem struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

func (c *CatalogItem) ItemID() int { return c.ID }

func (c *CatalogItem) SetItemID(id int) { c.ID = id }

func (c *CatalogItem) ItemName() string { return c.Name }

func (c *CatalogItem) IsAvailable() bool { return c.Available }

// Pizza is a catalog pizza with its ingredient list.
type Pizza struct {
	CatalogItem
	Ingredients []string `json:"ingredients"`
}

// Validate checks a pizza payload for create/update requests.
func (p *Pizza) Validate() error {
	if len(strings.TrimSpace(p.Name)) < 3 {
		return apperr.NewValidation("name", "must contain at least 3 characters")
	}
	if !p.Price.IsPositive() {
		return apperr.NewValidation("price", "must be strictly positive")
	}
	if len(p.Ingredients) == 0 {
		return apperr.NewValidation("ingredients", "at least one ingredient is required")
	}
	for _, ing := range p.Ingredients {
		if strings.TrimSpace(ing) == "" {
			return apperr.NewValidation("ingredients", "ingredients must be non-empty strings")
		}
	}
	return nil
}

// Drink is a catalog drink. Size is free-form ("33cl", "50cl").
type Drink struct {
	CatalogItem
	Size        string `json:"size"`
	WithAlcohol bool   `json:"withAlcohol"`
}

// Validate checks a drink payload for create/update requests.
func (d *Drink) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return apperr.NewValidation("name", "is required")
	}
	if !d.Price.IsPositive() {
		return apperr.NewValidation("price", "must be strictly positive")
	}
	if strings.TrimSpace(d.Size) == "" {
		return apperr.NewValidation("size", "is required")
	}
	return nil
}

// Dessert is a catalog dessert; it carries no extra fields.
type Dessert struct {
	CatalogItem
}

// Validate checks a dessert payload for create/update requests.
func (d *Dessert) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return apperr.NewValidation("name", "is required")
	}
	if !d.Price.IsPositive() {
		return apperr.NewValidation("price", "must be strictly positive")
	}
	return nil
}
