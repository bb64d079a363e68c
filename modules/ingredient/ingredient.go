package ingredient

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a purchasable raw material with its cost per unit.
// Soft-deleted rows keep history but stop counting toward usage and
// recipe costs.
type Ingredient struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category,omitempty"`
	Unit           string    `json:"unit"`
	CostPerUnit    float64   `json:"cost_per_unit"`
	Supplier       string    `json:"supplier,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
