package tabular

import "errors"

// Sentinel kinds for file parsing errors.
var (
	ErrEmptyFile  = errors.New("file contains no data")
	ErrNoHeader   = errors.New("file contains no header row")
	ErrParseFile  = errors.New("file could not be parsed")
	ErrTooManyRow = errors.New("file exceeds the row limit")
)
