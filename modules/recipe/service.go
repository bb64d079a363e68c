package recipe

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/pkg/analytics"
	"github.com/gastropartner/gastropartner/pkg/costing"
	"github.com/gastropartner/gastropartner/pkg/limits"
)

// Service manages recipes with limit-gated creation and cost reporting.
type Service struct {
	storage  Storage
	enforcer limits.Enforcer
	tracker  analytics.Tracker
	log      *slog.Logger
}

// ServiceOption configures optional Service dependencies.
type ServiceOption func(*Service)

// WithTracker sets the analytics tracker for usage events.
func WithTracker(t analytics.Tracker) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracker = t
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a recipe Service.
func NewService(storage Storage, enforcer limits.Enforcer, opts ...ServiceOption) *Service {
	if storage == nil {
		panic("recipe: Storage is required")
	}
	if enforcer == nil {
		panic("recipe: limits.Enforcer is required")
	}

	s := &Service{
		storage:  storage,
		enforcer: enforcer,
		tracker:  analytics.NoopTracker{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateParams are the writable recipe fields.
type CreateParams struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
}

func (p CreateParams) validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Servings < 0 {
		return ErrInvalidServings
	}
	return nil
}

// Create checks the recipe limit and inserts the recipe with its lines.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, userID *uuid.UUID, params CreateParams) (Recipe, error) {
	if err := params.validate(); err != nil {
		return Recipe{}, err
	}

	if err := s.enforcer.Enforce(ctx, orgID, userID, limits.ResourceRecipes); err != nil {
		return Recipe{}, err
	}

	now := time.Now().UTC()
	rec := Recipe{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           params.Name,
		Description:    params.Description,
		Servings:       params.Servings,
		Ingredients:    params.Ingredients,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.storage.Insert(ctx, rec); err != nil {
		return Recipe{}, err
	}

	s.tracker.Track(ctx, analytics.NewEvent(orgID, userID, analytics.EventTypeUsage, "recipe_created", map[string]any{
		"recipe_id":   rec.ID.String(),
		"ingredients": len(rec.Ingredients),
	}))
	return rec, nil
}

// Get fetches one active recipe with its ingredient lines.
func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (Recipe, error) {
	return s.storage.Get(ctx, orgID, id)
}

// List returns all active recipes without their lines.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]Recipe, error) {
	return s.storage.List(ctx, orgID)
}

// Update modifies a recipe and replaces its ingredient lines.
func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, params CreateParams) (Recipe, error) {
	if err := params.validate(); err != nil {
		return Recipe{}, err
	}

	rec, err := s.storage.Get(ctx, orgID, id)
	if err != nil {
		return Recipe{}, err
	}

	rec.Name = params.Name
	rec.Description = params.Description
	rec.Servings = params.Servings
	rec.Ingredients = params.Ingredients
	if err := s.storage.Update(ctx, rec); err != nil {
		return Recipe{}, err
	}
	return s.storage.Get(ctx, orgID, id)
}

// Delete soft-deletes the recipe.
func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.storage.SoftDelete(ctx, orgID, id)
}

// CountActive implements limits.CounterFunc for recipes.
func (s *Service) CountActive(ctx context.Context, orgID uuid.UUID) (int64, error) {
	return s.storage.CountActive(ctx, orgID)
}

// Cost computes the recipe's ingredient cost and cost per serving from
// its active lines.
func (s *Service) Cost(ctx context.Context, orgID, id uuid.UUID) (costing.RecipeCost, error) {
	rec, err := s.storage.Get(ctx, orgID, id)
	if err != nil {
		return costing.RecipeCost{}, err
	}

	lines, err := s.storage.CostLines(ctx, orgID, id)
	if err != nil {
		return costing.RecipeCost{}, err
	}

	return costing.CalculateRecipeCost(lines, rec.Servings), nil
}

// CostPerServing returns just the per-serving cost, shaped for the menu
// module's margin decoration.
func (s *Service) CostPerServing(ctx context.Context, orgID, id uuid.UUID) (float64, error) {
	cost, err := s.Cost(ctx, orgID, id)
	if err != nil {
		return 0, err
	}
	return cost.CostPerServing, nil
}
