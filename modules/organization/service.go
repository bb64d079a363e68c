package organization

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/pkg/analytics"
	"github.com/gastropartner/gastropartner/pkg/limits"
)

// Service manages organizations and resolves their subscription plans
// for limit enforcement.
type Service struct {
	storage Storage
	cache   PlanCache
	plans   map[string]limits.Plan
	tracker analytics.Tracker
	log     *slog.Logger
}

// ServiceOption configures optional Service dependencies.
type ServiceOption func(*Service)

// WithCache sets the plan cache. Defaults to no caching.
func WithCache(cache PlanCache) ServiceOption {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithTracker sets the analytics tracker for signup and plan-change
// conversion events.
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

// NewService creates an organization Service. The plan catalog is used
// to validate plan changes.
func NewService(storage Storage, plans map[string]limits.Plan, opts ...ServiceOption) *Service {
	if storage == nil {
		panic("organization: Storage is required")
	}

	s := &Service{
		storage: storage,
		cache:   NoopPlanCache{},
		plans:   plans,
		tracker: analytics.NoopTracker{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new organization on the free plan.
func (s *Service) Create(ctx context.Context, name string) (Organization, error) {
	if name == "" {
		return Organization{}, ErrNameRequired
	}

	now := time.Now().UTC()
	org := Organization{
		ID:               uuid.New(),
		Name:             name,
		SubscriptionPlan: limits.PlanFree,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.storage.Insert(ctx, org); err != nil {
		return Organization{}, err
	}

	s.tracker.Track(ctx, analytics.NewEvent(org.ID, nil, analytics.EventTypeUsage, "organization_created", map[string]any{
		"plan": org.SubscriptionPlan,
	}))
	return org, nil
}

// Get fetches an active organization.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Organization, error) {
	return s.storage.Get(ctx, id)
}

// ChangePlan switches the organization to another catalog plan and
// evicts the cached plan so the next limit check sees the new tier.
func (s *Service) ChangePlan(ctx context.Context, id uuid.UUID, planID string) error {
	if _, ok := s.plans[planID]; !ok {
		return ErrUnknownPlan
	}

	if err := s.storage.UpdatePlan(ctx, id, planID); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "failed to evict plan cache", "organization_id", id, "error", err)
	}

	s.tracker.Track(ctx, analytics.NewEvent(id, nil, analytics.EventTypeConversion, "plan_changed", map[string]any{
		"plan": planID,
	}))
	return nil
}

// Delete soft-deletes the organization.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.SoftDelete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "failed to evict plan cache", "organization_id", id, "error", err)
	}
	return nil
}

// ResolvePlan implements limits.PlanResolver. Missing organizations are
// reported as limits.ErrOrganizationNotFound so enforcement falls back
// to the free tier; storage failures propagate.
func (s *Service) ResolvePlan(ctx context.Context, orgID uuid.UUID) (string, error) {
	if planID, ok := s.cache.Get(ctx, orgID); ok {
		return planID, nil
	}

	org, err := s.storage.Get(ctx, orgID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", limits.ErrOrganizationNotFound
		}
		return "", err
	}

	if err := s.cache.Set(ctx, orgID, org.SubscriptionPlan); err != nil {
		s.log.WarnContext(ctx, "failed to cache plan", "organization_id", orgID, "error", err)
	}
	return org.SubscriptionPlan, nil
}
