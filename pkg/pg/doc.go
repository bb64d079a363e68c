// Package pg wires pgx connection pooling, goose migrations and health
// probing behind a single env-driven Config.
package pg
