package config

import "errors"

// Sentinel kinds for configuration failures. Load wraps the concrete cause
// so callers can branch with errors.Is.
var (
	// ErrInvalidConfig marks a configuration that parsed but failed
	// validation: an empty listen address, a non-positive tau, or a
	// regulation factor outside [0, 1].
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig marks a failure reading or decoding a source (the
	// LILA_CONFIG file or the environment).
	ErrLoadConfig = errors.New("load config failed")
)
