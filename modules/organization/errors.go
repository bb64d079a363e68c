package organization

import "errors"

var (
	ErrNotFound       = errors.New("organization.errors.not_found")
	ErrNameRequired   = errors.New("organization.errors.name_required")
	ErrUnknownPlan    = errors.New("organization.errors.unknown_plan")
	ErrFailedToCreate = errors.New("organization.errors.failed_to_create")
	ErrFailedToUpdate = errors.New("organization.errors.failed_to_update")
	ErrFailedToFetch  = errors.New("organization.errors.failed_to_fetch")
)
