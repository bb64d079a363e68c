// Package core defines the shared HTTP vocabulary of the API: typed
// HTTP errors, JSON envelopes and the payment-required mapping used by
// freemium limit enforcement.
package core
