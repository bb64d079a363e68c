package limits

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gastropartner/gastropartner/pkg/analytics"
	"github.com/gastropartner/gastropartner/pkg/async"
)

// PlanResolver resolves the subscription plan ID for an organization.
// Implementations should return ErrOrganizationNotFound (possibly
// wrapped) when the organization does not exist; the service maps that
// to the free tier instead of failing unrelated flows.
type PlanResolver func(ctx context.Context, orgID uuid.UUID) (string, error)

// Enforcer gates create operations on plan limits. Feature modules
// depend on this interface so tests can substitute a fake.
type Enforcer interface {
	Enforce(ctx context.Context, orgID uuid.UUID, userID *uuid.UUID, res Resource) error
}

// Service combines plan resolution and usage counting into limit checks
// and gated enforcement.
type Service struct {
	plans    map[string]Plan
	counters CounterRegistry
	resolver PlanResolver
	tracker  analytics.Tracker
	log      *slog.Logger
}

// ServiceOption configures optional Service dependencies.
type ServiceOption func(*Service)

// WithTracker sets the analytics tracker used for limit-hit and
// upgrade-prompt events. Defaults to a no-op tracker.
func WithTracker(t analytics.Tracker) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracker = t
		}
	}
}

// WithLogger sets the logger for swallowed analytics failures and
// degraded plan resolution.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a limits Service. The plan catalog is loaded once
// from src; counters and resolver are required because every check
// depends on them.
func NewService(ctx context.Context, src Source, counters CounterRegistry, resolver PlanResolver, opts ...ServiceOption) (*Service, error) {
	if src == nil {
		panic("limits: Source is required")
	}
	if resolver == nil {
		panic("limits: PlanResolver is required")
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if _, ok := plans[PlanFree]; !ok {
		return nil, errors.Join(ErrInvalidPlanConfig, errors.New("catalog has no free plan to fall back to"))
	}

	if counters == nil {
		counters = NewRegistry()
	}

	s := &Service{
		plans:    plans,
		counters: counters,
		resolver: resolver,
		tracker:  analytics.NoopTracker{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PlanFor returns the effective plan for an organization. Unknown plan
// values and missing organizations resolve to the free tier.
func (s *Service) PlanFor(ctx context.Context, orgID uuid.UUID) (Plan, error) {
	planID, err := s.resolver(ctx, orgID)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return s.plans[PlanFree], nil
		}
		return Plan{}, errors.Join(ErrFailedToResolvePlan, err)
	}

	plan, ok := s.plans[planID]
	if !ok {
		return s.plans[PlanFree], nil
	}
	return plan, nil
}

// CheckAll computes a fresh UsageCheck for the organization. For each
// resource listed in addIntents the verdict answers "would adding one
// more exceed the limit"; for all others it answers "is the current
// count within the limit". Equality to the limit still passes without an
// add intent: current=max means the allowance is exactly used up, and
// only the next add is rejected.
//
// The plan lookup and the usage counts are independent reads and run
// concurrently.
func (s *Service) CheckAll(ctx context.Context, orgID uuid.UUID, addIntents ...Resource) (UsageCheck, error) {
	planFuture := async.Async(ctx, orgID, s.PlanFor)
	usageFuture := async.Async(ctx, orgID, s.currentUsage)

	plan, err := planFuture.Await()
	if err != nil {
		return UsageCheck{}, err
	}
	usage, err := usageFuture.Await()
	if err != nil {
		return UsageCheck{}, err
	}

	check := UsageCheck{
		PlanID:    plan.ID,
		Resources: make(map[Resource]ResourceUsage, len(usage)),
	}
	for res, current := range usage {
		var delta int64
		for _, intent := range addIntents {
			if intent == res {
				delta = 1
				break
			}
		}
		max := plan.Limit(res)
		canAdd := current+delta <= max
		check.Resources[res] = ResourceUsage{Current: current, Max: max, CanAdd: canAdd}
		if !canAdd {
			check.UpgradeNeeded = true
		}
	}
	return check, nil
}

// Enforce gates a create operation on one resource. It returns nil when
// the organization has headroom and a *LimitExceededError otherwise,
// after firing best-effort limit-hit and upgrade-prompt events.
//
// The check and the caller's subsequent write are separate round-trips:
// two concurrent creates at current=max-1 can both pass. This
// best-effort semantics is intentional; the counts converge on the next
// check.
func (s *Service) Enforce(ctx context.Context, orgID uuid.UUID, userID *uuid.UUID, res Resource) error {
	check, err := s.CheckAll(ctx, orgID, res)
	if err != nil {
		return err
	}

	usage, ok := check.Resources[res]
	if !ok {
		return ErrInvalidResource
	}
	if usage.CanAdd {
		return nil
	}

	s.trackLimitHit(ctx, orgID, userID, res, usage)

	return &LimitExceededError{Resource: res, Current: usage.Current, Max: usage.Max}
}

// currentUsage collects the active-record counts for all registered
// resources. Resources without a registered counter count as zero.
func (s *Service) currentUsage(ctx context.Context, orgID uuid.UUID) (map[Resource]int64, error) {
	usage := make(map[Resource]int64, len(AllResources()))
	for _, res := range AllResources() {
		counter, ok := s.counters[res]
		if !ok {
			usage[res] = 0
			continue
		}
		current, err := counter(ctx, orgID)
		if err != nil {
			return nil, errors.Join(ErrFailedToCountUsage, err)
		}
		usage[res] = current
	}
	return usage, nil
}

func (s *Service) trackLimitHit(ctx context.Context, orgID uuid.UUID, userID *uuid.UUID, res Resource, usage ResourceUsage) {
	// Tracker implementations never block or return errors, but a
	// panicking custom tracker must not break enforcement either.
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "analytics tracker panicked", "panic", r)
		}
	}()

	s.tracker.Track(ctx, analytics.NewEvent(orgID, userID, analytics.EventTypeLimit, analytics.EventLimitHit, map[string]any{
		"resource": string(res),
		"current":  usage.Current,
		"limit":    usage.Max,
	}))
	s.tracker.Track(ctx, analytics.NewEvent(orgID, userID, analytics.EventTypeConversion, analytics.EventUpgradePrompt, map[string]any{
		"prompt_type": "limit_reached",
		"resource":    string(res),
	}))
}
