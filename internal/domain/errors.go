package domain

import "errors"

// Store errors. Repositories translate driver errors into these so services
// never depend on gorm or pgx directly.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Banner validation errors
var (
	ErrInvalidCountdown = errors.New("countdown must be non-negative")
)
