package menu

import "errors"

var (
	ErrNotFound       = errors.New("menu.errors.not_found")
	ErrRecipeMissing  = errors.New("menu.errors.recipe_missing")
	ErrNameRequired   = errors.New("menu.errors.name_required")
	ErrInvalidPrice   = errors.New("menu.errors.invalid_price")
	ErrFailedToCreate = errors.New("menu.errors.failed_to_create")
	ErrFailedToUpdate = errors.New("menu.errors.failed_to_update")
	ErrFailedToFetch  = errors.New("menu.errors.failed_to_fetch")
	ErrFailedToCount  = errors.New("menu.errors.failed_to_count")
)
