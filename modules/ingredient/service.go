package ingredient

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/pkg/analytics"
	"github.com/gastropartner/gastropartner/pkg/limits"
)

// Service manages ingredients with freemium limit enforcement on
// creation.
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

// NewService creates an ingredient Service. Storage and the limit
// enforcer are required: every create must pass the freemium gate.
func NewService(storage Storage, enforcer limits.Enforcer, opts ...ServiceOption) *Service {
	if storage == nil {
		panic("ingredient: Storage is required")
	}
	if enforcer == nil {
		panic("ingredient: limits.Enforcer is required")
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

// CreateParams are the writable ingredient fields.
type CreateParams struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	CostPerUnit float64 `json:"cost_per_unit"`
	Supplier    string  `json:"supplier"`
}

// Create checks the ingredient limit and inserts the ingredient. The
// limit check and the insert are separate round-trips; see
// limits.Service.Enforce for the concurrency semantics.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, userID *uuid.UUID, params CreateParams) (Ingredient, error) {
	if params.Name == "" {
		return Ingredient{}, ErrNameRequired
	}

	if err := s.enforcer.Enforce(ctx, orgID, userID, limits.ResourceIngredients); err != nil {
		return Ingredient{}, err
	}

	now := time.Now().UTC()
	ing := Ingredient{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           params.Name,
		Category:       params.Category,
		Unit:           params.Unit,
		CostPerUnit:    params.CostPerUnit,
		Supplier:       params.Supplier,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.storage.Insert(ctx, ing); err != nil {
		return Ingredient{}, err
	}

	s.tracker.Track(ctx, analytics.NewEvent(orgID, userID, analytics.EventTypeUsage, "ingredient_created", map[string]any{
		"ingredient_id": ing.ID.String(),
	}))
	return ing, nil
}

// Get fetches one active ingredient.
func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (Ingredient, error) {
	return s.storage.Get(ctx, orgID, id)
}

// List returns all active ingredients of the organization.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]Ingredient, error) {
	return s.storage.List(ctx, orgID)
}

// Update modifies an existing ingredient. Updates are not limit-gated:
// they do not change the active count.
func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, params CreateParams) (Ingredient, error) {
	if params.Name == "" {
		return Ingredient{}, ErrNameRequired
	}

	ing, err := s.storage.Get(ctx, orgID, id)
	if err != nil {
		return Ingredient{}, err
	}

	ing.Name = params.Name
	ing.Category = params.Category
	ing.Unit = params.Unit
	ing.CostPerUnit = params.CostPerUnit
	ing.Supplier = params.Supplier
	if err := s.storage.Update(ctx, ing); err != nil {
		return Ingredient{}, err
	}
	return s.storage.Get(ctx, orgID, id)
}

// Delete soft-deletes the ingredient. The row stays for recipe history
// but stops counting toward usage and contributing to costs.
func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.storage.SoftDelete(ctx, orgID, id)
}

// CountActive implements limits.CounterFunc for ingredients.
func (s *Service) CountActive(ctx context.Context, orgID uuid.UUID) (int64, error) {
	return s.storage.CountActive(ctx, orgID)
}
