package limits

import "maps"

// Well-known plan IDs. Only the premium plan unlocks the large limits;
// every other value, including unknown or missing ones, falls back to
// the free tier so that enforcement degrades gracefully.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Plan describes a subscription plan and its resource constraints.
type Plan struct {
	ID          string
	Name        string
	Description string
	Limits      map[Resource]int64
	Public      bool // available for self-service signup
}

// Limit returns the limit for a resource, or 0 if the plan does not
// define it. A resource without a limit cannot be created at all.
func (p Plan) Limit(res Resource) int64 {
	return p.Limits[res]
}

// DefaultPlans returns the built-in plan catalog.
func DefaultPlans() map[string]Plan {
	return map[string]Plan{
		PlanFree: {
			ID:          PlanFree,
			Name:        "Free",
			Description: "Starter tier for small kitchens",
			Limits: map[Resource]int64{
				ResourceIngredients: 50,
				ResourceRecipes:     5,
				ResourceMenuItems:   2,
			},
			Public: true,
		},
		PlanPremium: {
			ID:          PlanPremium,
			Name:        "Premium",
			Description: "Full cost control for professional kitchens",
			Limits: map[Resource]int64{
				ResourceIngredients: 1000,
				ResourceRecipes:     1000,
				ResourceMenuItems:   1000,
			},
			Public: true,
		},
	}
}

func clonePlan(p Plan) Plan {
	p.Limits = maps.Clone(p.Limits)
	return p
}
