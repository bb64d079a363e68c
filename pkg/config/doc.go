// Package config loads typed configuration structs from environment
// variables, with optional .env support for local development.
//
// Each struct type is parsed once and cached; components receive their
// configuration by value through constructors rather than reading the
// environment themselves.
package config
