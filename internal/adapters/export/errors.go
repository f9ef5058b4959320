package export

import "errors"

// Sentinel kinds for export errors.
var (
	ErrWriteExport = errors.New("export write failed")
)
