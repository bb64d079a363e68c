// Package httpserver runs an http.Server with graceful shutdown,
// env-driven configuration and health probe handlers.
package httpserver
