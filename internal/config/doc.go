// Package config loads, normalizes, and validates the TOML configuration for
// the catalog pipeline and extraction orchestrator.
package config
