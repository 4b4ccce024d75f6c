// Package config loads filmr settings from defaults, a YAML file, .env files,
// FILMR_* environment variables and command-line overrides, in that order of
// increasing precedence.
package config
