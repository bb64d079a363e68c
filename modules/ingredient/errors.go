package ingredient

import "errors"

var (
	ErrNotFound       = errors.New("ingredient.errors.not_found")
	ErrNameRequired   = errors.New("ingredient.errors.name_required")
	ErrFailedToCreate = errors.New("ingredient.errors.failed_to_create")
	ErrFailedToUpdate = errors.New("ingredient.errors.failed_to_update")
	ErrFailedToFetch  = errors.New("ingredient.errors.failed_to_fetch")
	ErrFailedToCount  = errors.New("ingredient.errors.failed_to_count")
)
