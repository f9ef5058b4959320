package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrNilMutation = errors.New("nil session mutation")
)
