// Package config loads and validates the subsync TOML configuration.
//
// Configuration is immutable after Load: engine components receive value
// copies of the sections they need, never a shared mutable pointer, so two
// concurrent batch items can never observe each other's settings.
package config
