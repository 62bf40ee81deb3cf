// Package config loads, normalizes, and validates vcfimport configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the VCFIMPORT_DATA_DIR and
// VCFIMPORT_LOG_LEVEL environment overrides. The store path falls back to
// contacts.db inside the data directory.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
