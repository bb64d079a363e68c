package limits_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastropartner/gastropartner/pkg/limits"
)

func TestInMemSource(t *testing.T) {
	t.Parallel()

	t.Run("serves the default catalog", func(t *testing.T) {
		t.Parallel()

		src := limits.NewInMemSource(limits.DefaultPlans())
		plans, err := src.Load(context.Background())
		require.NoError(t, err)

		free, ok := plans[limits.PlanFree]
		require.True(t, ok)
		assert.Equal(t, int64(50), free.Limit(limits.ResourceIngredients))
		assert.Equal(t, int64(5), free.Limit(limits.ResourceRecipes))
		assert.Equal(t, int64(2), free.Limit(limits.ResourceMenuItems))

		premium, ok := plans[limits.PlanPremium]
		require.True(t, ok)
		assert.Equal(t, int64(1000), premium.Limit(limits.ResourceIngredients))
		assert.Equal(t, int64(1000), premium.Limit(limits.ResourceRecipes))
		assert.Equal(t, int64(1000), premium.Limit(limits.ResourceMenuItems))
	})

	t.Run("loads are isolated copies", func(t *testing.T) {
		t.Parallel()

		src := limits.NewInMemSource(limits.DefaultPlans())

		first, err := src.Load(context.Background())
		require.NoError(t, err)
		first[limits.PlanFree].Limits[limits.ResourceRecipes] = 999

		second, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5), second[limits.PlanFree].Limit(limits.ResourceRecipes))
	})

	t.Run("undefined resource has zero limit", func(t *testing.T) {
		t.Parallel()

		src := limits.NewInMemSource(limits.DefaultPlans())
		plans, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), plans[limits.PlanFree].Limit(limits.Resource("suppliers")))
	})
}

func TestYAMLSource(t *testing.T) {
	t.Parallel()

	writeCatalog := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "plans.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("parses the catalog", func(t *testing.T) {
		t.Parallel()

		path := writeCatalog(t, `
free:
  name: Free
  public: true
  limits:
    ingredients: 50
    recipes: 5
    menu_items: 2
premium:
  name: Premium
  description: Full cost control
  public: true
  limits:
    ingredients: 1000
    recipes: 1000
    menu_items: 1000
`)

		plans, err := limits.NewYAMLSource(path).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, plans, 2)

		free := plans["free"]
		assert.Equal(t, "free", free.ID)
		assert.Equal(t, "Free", free.Name)
		assert.True(t, free.Public)
		assert.Equal(t, int64(5), free.Limit(limits.ResourceRecipes))
		assert.Equal(t, "Full cost control", plans["premium"].Description)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := limits.NewYAMLSource(filepath.Join(t.TempDir(), "nope.yml")).Load(context.Background())
		require.ErrorIs(t, err, limits.ErrPlanSourceFileNotFound)
	})

	t.Run("rejects negative limits", func(t *testing.T) {
		t.Parallel()

		path := writeCatalog(t, `
free:
  name: Free
  limits:
    recipes: -1
`)

		_, err := limits.NewYAMLSource(path).Load(context.Background())
		require.ErrorIs(t, err, limits.ErrInvalidPlanConfig)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeCatalog(t, "free: [not a plan")

		_, err := limits.NewYAMLSource(path).Load(context.Background())
		require.ErrorIs(t, err, limits.ErrFailedToLoadPlans)
	})
}
