package rules

import "errors"

// Sentinel kinds for policy validation. Resolution itself never errors;
// these surface only at the configuration edge.
var (
	ErrUnknownTierPolicy  = errors.New("unknown tier policy")
	ErrUnknownBonusPolicy = errors.New("unknown bonus policy")
)
