package menu

import (
	"time"

	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/pkg/costing"
)

// Item is a sellable menu entry. Its food cost comes from the linked
// recipe's cost per serving when one exists, otherwise from the manually
// maintained FoodCost field.
type Item struct {
	ID                uuid.UUID  `json:"id"`
	OrganizationID    uuid.UUID  `json:"organization_id"`
	RecipeID          *uuid.UUID `json:"recipe_id,omitempty"`
	Name              string     `json:"name"`
	Category          string     `json:"category,omitempty"`
	SellingPrice      float64    `json:"selling_price"`
	FoodCost          float64    `json:"food_cost"`
	TargetFoodCostPct float64    `json:"target_food_cost_percentage"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ItemWithMargins is an Item decorated with derived profitability
// metrics. The pointer fields stay nil when the selling price is zero.
type ItemWithMargins struct {
	Item
	FoodCost         float64  `json:"food_cost"`
	FoodCostPct      *float64 `json:"food_cost_percentage,omitempty"`
	Margin           *float64 `json:"margin,omitempty"`
	MarginPct        *float64 `json:"margin_percentage,omitempty"`
	RecommendedPrice *float64 `json:"recommended_price,omitempty"`
}

func decorate(item Item, recipeCost float64) ItemWithMargins {
	foodCost := costing.EffectiveFoodCost(recipeCost, item.FoodCost)
	margins := costing.CalculateMargins(foodCost, item.SellingPrice)

	return ItemWithMargins{
		Item:             item,
		FoodCost:         margins.FoodCost,
		FoodCostPct:      margins.FoodCostPct,
		Margin:           margins.Margin,
		MarginPct:        margins.MarginPct,
		RecommendedPrice: costing.RecommendedPrice(foodCost, item.TargetFoodCostPct),
	}
}
