package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("player not found")
	ErrInvalidLimit = errors.New("invalid ranking limit")
	ErrBadCategory  = errors.New("invalid category")
)
