// Package scenariocheck drives an end-to-end verification run against a
// live service: it uploads a generated scenario batch, fetches the
// computed results, recomputes them locally and reports mismatches.
package scenariocheck

import "time"

// Config holds the parameters of a verification run.
type Config struct {
	BaseURL      string
	NumScenarios int
	MaxRank      int
	MaxPoints    int
	Timeout      time.Duration
	Verbose      bool
}

// Stats accumulates run statistics.
type Stats struct {
	RunID              string
	ScenariosGenerated int
	RowsComputed       int
	RowsMatched        int
	RowsMismatched     int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
