package costing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastropartner/gastropartner/pkg/costing"
)

func TestCalculateRecipeCost(t *testing.T) {
	t.Parallel()

	t.Run("sums lines and divides by servings", func(t *testing.T) {
		t.Parallel()

		lines := []costing.CostLine{
			{Quantity: 2, CostPerUnit: 3, Active: true},
			{Quantity: 1, CostPerUnit: 5, Active: true},
		}

		cost := costing.CalculateRecipeCost(lines, 2)
		assert.InDelta(t, 11.0, cost.TotalCost, 1e-9)
		assert.InDelta(t, 5.5, cost.CostPerServing, 1e-9)
	})

	t.Run("inactive lines contribute nothing", func(t *testing.T) {
		t.Parallel()

		lines := []costing.CostLine{
			{Quantity: 2, CostPerUnit: 3, Active: true},
			{Quantity: 10, CostPerUnit: 100, Active: false},
		}

		cost := costing.CalculateRecipeCost(lines, 1)
		assert.InDelta(t, 6.0, cost.TotalCost, 1e-9)
	})

	t.Run("non-positive quantity or cost contributes nothing", func(t *testing.T) {
		t.Parallel()

		lines := []costing.CostLine{
			{Quantity: 0, CostPerUnit: 3, Active: true},
			{Quantity: 2, CostPerUnit: 0, Active: true},
			{Quantity: -1, CostPerUnit: 5, Active: true},
		}

		cost := costing.CalculateRecipeCost(lines, 4)
		assert.Zero(t, cost.TotalCost)
		assert.Zero(t, cost.CostPerServing)
	})

	t.Run("zero servings yields zero cost per serving", func(t *testing.T) {
		t.Parallel()

		lines := []costing.CostLine{{Quantity: 2, CostPerUnit: 3, Active: true}}

		cost := costing.CalculateRecipeCost(lines, 0)
		assert.InDelta(t, 6.0, cost.TotalCost, 1e-9)
		assert.Zero(t, cost.CostPerServing)
	})

	t.Run("no lines", func(t *testing.T) {
		t.Parallel()

		cost := costing.CalculateRecipeCost(nil, 3)
		assert.Zero(t, cost.TotalCost)
		assert.Zero(t, cost.CostPerServing)
	})
}

func TestCalculateMargins(t *testing.T) {
	t.Parallel()

	t.Run("derives percentages from selling price", func(t *testing.T) {
		t.Parallel()

		m := costing.CalculateMargins(30, 100)
		assert.InDelta(t, 30.0, m.FoodCost, 1e-9)
		require.NotNil(t, m.FoodCostPct)
		assert.InDelta(t, 30.0, *m.FoodCostPct, 1e-9)
		require.NotNil(t, m.Margin)
		assert.InDelta(t, 70.0, *m.Margin, 1e-9)
		require.NotNil(t, m.MarginPct)
		assert.InDelta(t, 70.0, *m.MarginPct, 1e-9)
	})

	t.Run("zero selling price leaves derived fields unset", func(t *testing.T) {
		t.Parallel()

		m := costing.CalculateMargins(30, 0)
		assert.InDelta(t, 30.0, m.FoodCost, 1e-9)
		assert.Nil(t, m.FoodCostPct)
		assert.Nil(t, m.Margin)
		assert.Nil(t, m.MarginPct)
	})

	t.Run("negative margin when cost exceeds price", func(t *testing.T) {
		t.Parallel()

		m := costing.CalculateMargins(120, 100)
		require.NotNil(t, m.Margin)
		assert.InDelta(t, -20.0, *m.Margin, 1e-9)
		require.NotNil(t, m.MarginPct)
		assert.InDelta(t, -20.0, *m.MarginPct, 1e-9)
	})
}

func TestEffectiveFoodCost(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 4.5, costing.EffectiveFoodCost(4.5, 9), 1e-9)
	assert.InDelta(t, 9.0, costing.EffectiveFoodCost(0, 9), 1e-9)
	assert.InDelta(t, 9.0, costing.EffectiveFoodCost(-1, 9), 1e-9)
}

func TestRecommendedPrice(t *testing.T) {
	t.Parallel()

	t.Run("hits the target percentage", func(t *testing.T) {
		t.Parallel()

		price := costing.RecommendedPrice(30, 30)
		require.NotNil(t, price)
		assert.InDelta(t, 100.0, *price, 1e-9)
	})

	t.Run("nil without positive inputs", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, costing.RecommendedPrice(0, 30))
		assert.Nil(t, costing.RecommendedPrice(30, 0))
		assert.Nil(t, costing.RecommendedPrice(-1, -1))
	})
}
