package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a dish preparation with its ingredient lines. The servings
// count turns the total ingredient cost into a cost per serving.
type Recipe struct {
	ID             uuid.UUID    `json:"id"`
	OrganizationID uuid.UUID    `json:"organization_id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Servings       int          `json:"servings"`
	Ingredients    []Ingredient `json:"ingredients,omitempty"`
	IsActive       bool         `json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Ingredient is one recipe line: a quantity of a tenant ingredient.
type Ingredient struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}
