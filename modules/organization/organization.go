package organization

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant entity. Every ingredient, recipe and menu
// item belongs to exactly one organization, and the subscription plan
// stored here drives freemium limit enforcement.
type Organization struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	SubscriptionPlan string    `json:"subscription_plan"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
