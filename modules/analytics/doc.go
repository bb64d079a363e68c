// Package analytics stores tracked product events in Postgres and
// exposes a per-organization read endpoint.
package analytics
