// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers file and environment on top of the defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Default limits for uploaded tables.
const (
	defaultMaxUploadBytes = 1 << 20 // 1 MiB is generous for league tables
	defaultMaxTableRows   = 5000
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BaseRate is the startup fallback €/Punkt rate for ranks no tier
	// covers. Must be non-negative.
	BaseRate float64 `koanf:"base_rate"`

	// TierPolicy selects between overlapping tiers: first | max_range.
	TierPolicy string `koanf:"tier_policy"`

	// BonusPolicy aggregates overlapping bonuses: first | max | sum.
	BonusPolicy string `koanf:"bonus_policy"`

	// MaxUploadBytes bounds the size of an uploaded scenario file.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// MaxTableRows bounds the row count of any uploaded or edited table.
	MaxTableRows int `koanf:"max_table_rows"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		BaseRate:       50,
		TierPolicy:     "first",
		BonusPolicy:    "first",
		MaxUploadBytes: defaultMaxUploadBytes,
		MaxTableRows:   defaultMaxTableRows,
	}
}
