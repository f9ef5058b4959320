package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNegativeBaseRate = errors.New("base rate must be non-negative")
	ErrTableTooLarge    = errors.New("table exceeds the row limit")
)
