// Package config loads, normalizes, and validates subburn configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SUBBURN_MODEL_DIR and HF_TOKEN. The Config type centralizes the knobs the
// CLI host hands to the subtitle burner: tool locations, transcription
// engine settings, encoder quality, default caption style, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
