package menu

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/pkg/analytics"
	"github.com/gastropartner/gastropartner/pkg/limits"
)

// RecipeCoster supplies the cost per serving of a linked recipe. The
// recipe module implements it.
type RecipeCoster interface {
	CostPerServing(ctx context.Context, orgID, recipeID uuid.UUID) (float64, error)
}

// Service manages menu items with limit-gated creation and margin
// decoration on reads.
type Service struct {
	storage  Storage
	enforcer limits.Enforcer
	coster   RecipeCoster
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

// NewService creates a menu Service. The coster resolves linked recipe
// costs; items without a recipe fall back to their manual food cost.
func NewService(storage Storage, enforcer limits.Enforcer, coster RecipeCoster, opts ...ServiceOption) *Service {
	if storage == nil {
		panic("menu: Storage is required")
	}
	if enforcer == nil {
		panic("menu: limits.Enforcer is required")
	}
	if coster == nil {
		panic("menu: RecipeCoster is required")
	}

	s := &Service{
		storage:  storage,
		enforcer: enforcer,
		coster:   coster,
		tracker:  analytics.NoopTracker{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateParams are the writable menu item fields.
type CreateParams struct {
	RecipeID          *uuid.UUID `json:"recipe_id"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	SellingPrice      float64    `json:"selling_price"`
	FoodCost          float64    `json:"food_cost"`
	TargetFoodCostPct float64    `json:"target_food_cost_percentage"`
}

func (p CreateParams) validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.SellingPrice < 0 || p.FoodCost < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Create checks the menu item limit and inserts the item.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, userID *uuid.UUID, params CreateParams) (Item, error) {
	if err := params.validate(); err != nil {
		return Item{}, err
	}

	if err := s.enforcer.Enforce(ctx, orgID, userID, limits.ResourceMenuItems); err != nil {
		return Item{}, err
	}

	now := time.Now().UTC()
	item := Item{
		ID:                uuid.New(),
		OrganizationID:    orgID,
		RecipeID:          params.RecipeID,
		Name:              params.Name,
		Category:          params.Category,
		SellingPrice:      params.SellingPrice,
		FoodCost:          params.FoodCost,
		TargetFoodCostPct: params.TargetFoodCostPct,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.storage.Insert(ctx, item); err != nil {
		return Item{}, err
	}

	s.tracker.Track(ctx, analytics.NewEvent(orgID, userID, analytics.EventTypeUsage, "menu_item_created", map[string]any{
		"menu_item_id": item.ID.String(),
	}))
	return item, nil
}

// Get fetches one active item decorated with margins.
func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (ItemWithMargins, error) {
	item, err := s.storage.Get(ctx, orgID, id)
	if err != nil {
		return ItemWithMargins{}, err
	}
	return decorate(item, s.recipeCost(ctx, item)), nil
}

// List returns all active items decorated with margins.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]ItemWithMargins, error) {
	items, err := s.storage.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]ItemWithMargins, 0, len(items))
	for _, item := range items {
		result = append(result, decorate(item, s.recipeCost(ctx, item)))
	}
	return result, nil
}

// Update modifies an existing item.
func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, params CreateParams) (ItemWithMargins, error) {
	if err := params.validate(); err != nil {
		return ItemWithMargins{}, err
	}

	item, err := s.storage.Get(ctx, orgID, id)
	if err != nil {
		return ItemWithMargins{}, err
	}

	item.RecipeID = params.RecipeID
	item.Name = params.Name
	item.Category = params.Category
	item.SellingPrice = params.SellingPrice
	item.FoodCost = params.FoodCost
	item.TargetFoodCostPct = params.TargetFoodCostPct
	if err := s.storage.Update(ctx, item); err != nil {
		return ItemWithMargins{}, err
	}
	return s.Get(ctx, orgID, id)
}

// Delete soft-deletes the item.
func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.storage.SoftDelete(ctx, orgID, id)
}

// CountActive implements limits.CounterFunc for menu items.
func (s *Service) CountActive(ctx context.Context, orgID uuid.UUID) (int64, error) {
	return s.storage.CountActive(ctx, orgID)
}

// ProfitabilityReport summarizes margins across the active menu.
type ProfitabilityReport struct {
	Items             []ItemWithMargins `json:"items"`
	AverageFoodCostPc *float64          `json:"average_food_cost_percentage,omitempty"`
}

// Profitability lists all active items with margins plus the average
// food-cost percentage over items that have one.
func (s *Service) Profitability(ctx context.Context, orgID uuid.UUID) (ProfitabilityReport, error) {
	items, err := s.List(ctx, orgID)
	if err != nil {
		return ProfitabilityReport{}, err
	}

	report := ProfitabilityReport{Items: items}

	var sum float64
	var n int
	for _, item := range items {
		if item.FoodCostPct != nil {
			sum += *item.FoodCostPct
			n++
		}
	}
	if n > 0 {
		avg := sum / float64(n)
		report.AverageFoodCostPc = &avg
	}
	return report, nil
}

// recipeCost resolves the linked recipe's cost per serving. Failures
// degrade to the manual food cost instead of failing the read: a menu
// listing must not break because one recipe row is bad.
func (s *Service) recipeCost(ctx context.Context, item Item) float64 {
	if item.RecipeID == nil {
		return 0
	}
	cost, err := s.coster.CostPerServing(ctx, item.OrganizationID, *item.RecipeID)
	if err != nil {
		s.log.WarnContext(ctx, "failed to resolve recipe cost",
			"organization_id", item.OrganizationID, "recipe_id", *item.RecipeID, "error", err)
		return 0
	}
	return cost
}
