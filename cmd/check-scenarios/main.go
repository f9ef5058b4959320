package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/premia/internal/scenariocheck"
	"github.com/okian/premia/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumScenarios = 200
	defaultMaxRank      = 20
	defaultMaxPoints    = 100
	defaultTimeout      = 30 * time.Second
	defaultRunTimeout   = 5 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numScenarios = flag.Int("scenarios", defaultNumScenarios, "Number of scenario rows to generate")
		maxRank      = flag.Int("max-rank", defaultMaxRank, "Upper bound for generated ranks")
		maxPoints    = flag.Int("max-points", defaultMaxPoints, "Upper bound for generated points")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose      = flag.Bool("verbose", false, "Log every mismatched row")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &scenariocheck.Config{
		BaseURL:      *baseURL,
		NumScenarios: *numScenarios,
		MaxRank:      *maxRank,
		MaxPoints:    *maxPoints,
		Timeout:      *timeout,
		Verbose:      *verbose,
	}

	if err := scenariocheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
