// Package redis provides env-driven connection setup and health probing
// for the go-redis client.
package redis
