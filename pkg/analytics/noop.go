package analytics

import "context"

// NoopTracker discards all events. Useful for tests and for running
// without an analytics store.
type NoopTracker struct{}

func (NoopTracker) Track(_ context.Context, _ Event) {}
