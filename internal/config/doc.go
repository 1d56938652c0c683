// Package config loads, normalizes, and validates termplay configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts) and reads TOML files. The Config type centralizes the external
// tool names, playback defaults and workspace policy so the CLI resolves
// everything in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
