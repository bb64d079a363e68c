// Package analytics provides best-effort event tracking for usage,
// limit and conversion events.
//
// Events flow through a bounded in-memory buffer to a Store in the
// background. Tracking never blocks the caller and flush failures are
// logged, not propagated: analytics must not be able to fail a primary
// operation.
package analytics
