package analytics

import "errors"

var (
	ErrFailedToSave  = errors.New("analytics.errors.failed_to_save")
	ErrFailedToFetch = errors.New("analytics.errors.failed_to_fetch")
)
