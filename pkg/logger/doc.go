// Package logger builds configured slog.Logger instances with
// environment presets, static service attributes and context-driven
// attribute injection.
package logger
