// Package config loads, normalizes, and validates jellyboxd configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads an optional TOML file. Command-line flags are layered
// on top by the CLI before the final Validate call, so credentials can live in
// either place.
//
// Always obtain settings through this package so downstream code receives
// sanitized URLs, canonical log formats, and clear validation errors.
package config
