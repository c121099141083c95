package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrOpen     = errors.New("open state store failed")
	ErrNotFound = errors.New("key not found")
)
