package limits

import (
	"errors"
	"fmt"
)

// Domain errors for limit operations.
var (
	ErrLimitExceeded          = errors.New("limits.errors.limit_exceeded")
	ErrFailedToLoadPlans      = errors.New("limits.errors.failed_to_load_plans")
	ErrFailedToCountUsage     = errors.New("limits.errors.failed_to_count_usage")
	ErrFailedToResolvePlan    = errors.New("limits.errors.failed_to_resolve_plan")
	ErrOrganizationNotFound   = errors.New("limits.errors.organization_not_found")
	ErrInvalidResource        = errors.New("limits.errors.invalid_resource")
	ErrInvalidPlanConfig      = errors.New("limits.errors.invalid_plan_configuration")
	ErrPlanSourceFileNotFound = errors.New("limits.errors.plan_source_file_not_found")
)

// LimitExceededError reports a freemium limit violation. The message is
// user-facing and shown verbatim in upgrade prompts.
type LimitExceededError struct {
	Resource Resource
	Current  int64
	Max      int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%d/%d %s used", e.Current, e.Max, e.Resource)
}

// Unwrap makes errors.Is(err, ErrLimitExceeded) work for callers that
// only care about the category, not the counts.
func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}

// Feature names the gated resource for the X-Feature response header.
func (e *LimitExceededError) Feature() string {
	return string(e.Resource)
}
