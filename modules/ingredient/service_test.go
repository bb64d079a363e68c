package ingredient_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastropartner/gastropartner/modules/ingredient"
	"github.com/gastropartner/gastropartner/pkg/limits"
)

type fakeStorage struct {
	mu    sync.Mutex
	items map[uuid.UUID]ingredient.Ingredient
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: make(map[uuid.UUID]ingredient.Ingredient)}
}

func (s *fakeStorage) Insert(_ context.Context, ing ingredient.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[ing.ID] = ing
	return nil
}

func (s *fakeStorage) Get(_ context.Context, orgID, id uuid.UUID) (ingredient.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ing, ok := s.items[id]
	if !ok || ing.OrganizationID != orgID || !ing.IsActive {
		return ingredient.Ingredient{}, ingredient.ErrNotFound
	}
	return ing, nil
}

func (s *fakeStorage) List(_ context.Context, orgID uuid.UUID) ([]ingredient.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []ingredient.Ingredient
	for _, ing := range s.items {
		if ing.OrganizationID == orgID && ing.IsActive {
			result = append(result, ing)
		}
	}
	return result, nil
}

func (s *fakeStorage) Update(_ context.Context, ing ingredient.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[ing.ID]; !ok {
		return ingredient.ErrNotFound
	}
	s.items[ing.ID] = ing
	return nil
}

func (s *fakeStorage) SoftDelete(_ context.Context, orgID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ing, ok := s.items[id]
	if !ok || ing.OrganizationID != orgID || !ing.IsActive {
		return ingredient.ErrNotFound
	}
	ing.IsActive = false
	s.items[id] = ing
	return nil
}

func (s *fakeStorage) CountActive(_ context.Context, orgID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, ing := range s.items {
		if ing.OrganizationID == orgID && ing.IsActive {
			n++
		}
	}
	return n, nil
}

// allowEnforcer always grants headroom.
type allowEnforcer struct{}

func (allowEnforcer) Enforce(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ limits.Resource) error {
	return nil
}

// denyEnforcer rejects every create with a limit error.
type denyEnforcer struct {
	res     limits.Resource
	current int64
	max     int64
}

func (e denyEnforcer) Enforce(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ limits.Resource) error {
	return &limits.LimitExceededError{Resource: e.res, Current: e.current, Max: e.max}
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orgID := uuid.New()

	t.Run("inserts when the limit allows", func(t *testing.T) {
		t.Parallel()

		storage := newFakeStorage()
		svc := ingredient.NewService(storage, allowEnforcer{})

		ing, err := svc.Create(ctx, orgID, nil, ingredient.CreateParams{
			Name: "Tomato", Category: "produce", Unit: "kg", CostPerUnit: 2.5, Supplier: "Local Farm",
		})
		require.NoError(t, err)
		assert.Equal(t, orgID, ing.OrganizationID)
		assert.Equal(t, "produce", ing.Category)
		assert.True(t, ing.IsActive)

		count, err := svc.CountActive(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("limit rejection leaves storage untouched", func(t *testing.T) {
		t.Parallel()

		storage := newFakeStorage()
		svc := ingredient.NewService(storage, denyEnforcer{res: limits.ResourceIngredients, current: 50, max: 50})

		_, err := svc.Create(ctx, orgID, nil, ingredient.CreateParams{Name: "Basil"})
		require.ErrorIs(t, err, limits.ErrLimitExceeded)

		var limitErr *limits.LimitExceededError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, "50/50 ingredients used", limitErr.Error())

		count, err := svc.CountActive(ctx, orgID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("name is required before the limit check", func(t *testing.T) {
		t.Parallel()

		svc := ingredient.NewService(newFakeStorage(), denyEnforcer{})
		_, err := svc.Create(ctx, orgID, nil, ingredient.CreateParams{})
		require.ErrorIs(t, err, ingredient.ErrNameRequired)
	})
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orgID := uuid.New()

	storage := newFakeStorage()
	svc := ingredient.NewService(storage, allowEnforcer{})

	ing, err := svc.Create(ctx, orgID, nil, ingredient.CreateParams{Name: "Flour", Unit: "kg"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, orgID, ing.ID))

	// Soft-deleted rows stop counting toward usage.
	count, err := svc.CountActive(ctx, orgID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.Get(ctx, orgID, ing.ID)
	require.ErrorIs(t, err, ingredient.ErrNotFound)
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orgID := uuid.New()

	svc := ingredient.NewService(newFakeStorage(), allowEnforcer{})

	ing, err := svc.Create(ctx, orgID, nil, ingredient.CreateParams{Name: "Butter", Category: "dairy", Unit: "kg", CostPerUnit: 8})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, orgID, ing.ID, ingredient.CreateParams{Name: "Butter AOP", Category: "dairy-aop", Unit: "kg", CostPerUnit: 11})
	require.NoError(t, err)
	assert.Equal(t, "Butter AOP", updated.Name)
	assert.Equal(t, "dairy-aop", updated.Category)
	assert.InDelta(t, 11.0, updated.CostPerUnit, 1e-9)

	// Updates do not change the active count and are not limit-gated.
	count, err := svc.CountActive(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
