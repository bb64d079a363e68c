package async

import "errors"

var (
	// ErrTimeout indicates the future did not complete in time.
	ErrTimeout = errors.New("async: operation timed out waiting for future completion")
)
