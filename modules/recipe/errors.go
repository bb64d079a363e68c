package recipe

import "errors"

var (
	ErrNotFound         = errors.New("recipe.errors.not_found")
	ErrNameRequired     = errors.New("recipe.errors.name_required")
	ErrInvalidServings  = errors.New("recipe.errors.invalid_servings")
	ErrFailedToCreate   = errors.New("recipe.errors.failed_to_create")
	ErrFailedToUpdate   = errors.New("recipe.errors.failed_to_update")
	ErrFailedToFetch    = errors.New("recipe.errors.failed_to_fetch")
	ErrFailedToCount    = errors.New("recipe.errors.failed_to_count")
	ErrFailedToCalcCost = errors.New("recipe.errors.failed_to_calculate_cost")
)
