package config

import "errors"

// Failure kinds the loader wraps with %w. Callers branch on these with
// errors.Is rather than matching message text.
var (
	// ErrInvalidConfig marks a configuration that loaded but fails validation,
	// such as a blank service URL or a non-positive timeout.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrLoadConfig marks a failure reading or decoding a configuration
	// source (file, env) before validation runs.
	ErrLoadConfig = errors.New("client configuration could not be loaded")
)
