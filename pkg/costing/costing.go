package costing

// CostLine is one recipe ingredient's contribution to the recipe cost.
type CostLine struct {
	Quantity    float64
	CostPerUnit float64
	Active      bool
}

// Contribution returns the line's share of the total cost. Inactive
// lines and lines without usable cost data contribute nothing.
func (l CostLine) Contribution() float64 {
	if !l.Active || l.Quantity <= 0 || l.CostPerUnit <= 0 {
		return 0
	}
	return l.Quantity * l.CostPerUnit
}

// RecipeCost is the computed cost of one recipe.
type RecipeCost struct {
	TotalCost      float64 `json:"total_ingredient_cost"`
	CostPerServing float64 `json:"cost_per_serving"`
}

// CalculateRecipeCost sums the cost lines and divides by servings.
// Servings of zero or less yield a zero cost per serving instead of a
// division error.
func CalculateRecipeCost(lines []CostLine, servings int) RecipeCost {
	var total float64
	for _, line := range lines {
		total += line.Contribution()
	}

	cost := RecipeCost{TotalCost: total}
	if servings > 0 {
		cost.CostPerServing = total / float64(servings)
	}
	return cost
}

// Margins holds the profitability metrics of a menu item. The pointer
// fields stay nil when the selling price is zero: percentages of nothing
// are meaningless and must not be reported as 0.
type Margins struct {
	FoodCost    float64  `json:"food_cost"`
	FoodCostPct *float64 `json:"food_cost_percentage,omitempty"`
	Margin      *float64 `json:"margin,omitempty"`
	MarginPct   *float64 `json:"margin_percentage,omitempty"`
}

// EffectiveFoodCost picks the recipe-derived cost when one exists and
// falls back to the manually maintained cost otherwise.
func EffectiveFoodCost(recipeCost, manualCost float64) float64 {
	if recipeCost > 0 {
		return recipeCost
	}
	return manualCost
}

// CalculateMargins derives food-cost percentage and margin from the food
// cost and the selling price. A zero selling price leaves the derived
// fields unset.
func CalculateMargins(foodCost, sellingPrice float64) Margins {
	m := Margins{FoodCost: foodCost}
	if sellingPrice <= 0 {
		return m
	}

	pct := foodCost / sellingPrice * 100
	margin := sellingPrice - foodCost
	marginPct := margin / sellingPrice * 100

	m.FoodCostPct = &pct
	m.Margin = &margin
	m.MarginPct = &marginPct
	return m
}

// RecommendedPrice suggests a selling price hitting the target food-cost
// percentage. Returns nil unless both inputs are positive.
func RecommendedPrice(foodCost, targetFoodCostPct float64) *float64 {
	if foodCost <= 0 || targetFoodCostPct <= 0 {
		return nil
	}
	price := foodCost / (targetFoodCostPct / 100)
	return &price
}
