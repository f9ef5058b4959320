package scenariocheck

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/premia/internal/domain/payout"
	"github.com/okian/premia/internal/domain/rules"
	"github.com/okian/premia/pkg/logger"
)

// Verification pins the session to these values so the local
// recomputation is deterministic.
const (
	checkBaseRate    = 25.0
	checkTierPolicy  = "first"
	checkBonusPolicy = "sum"
)

var (
	checkTiers = rules.Table{
		{From: 1, To: 2, Value: decimal.NewFromInt(75)},
		{From: 3, To: 5, Value: decimal.NewFromInt(50)},
		{From: 6, To: 10, Value: decimal.NewFromInt(35)},
	}
	checkBonuses = rules.Table{
		{From: 1, To: 1, Value: decimal.NewFromInt(2500)},
		{From: 2, To: 2, Value: decimal.NewFromInt(2000)},
	}
)

// Run executes a complete verification round trip.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting scenario check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("scenarios", config.NumScenarios),
		logger.String("timeout", config.Timeout.String()),
	)

	c := newClient(config.BaseURL, config.Timeout)

	if err := c.checkHealth(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	batch := generateScenarios(ctx, config, stats)

	// Pin the session to the reference configuration. The rule tables
	// used by the service are the seed defaults replaced through the API
	// by the reference tables, so both sides compute over the same data.
	if err := c.putConfig(ctx, checkBaseRate, checkTierPolicy, checkBonusPolicy); err != nil {
		return fmt.Errorf("config setup failed: %w", err)
	}
	if err := putRuleTables(ctx, c); err != nil {
		return fmt.Errorf("rule table setup failed: %w", err)
	}
	if err := c.putScenarios(ctx, batch); err != nil {
		return fmt.Errorf("scenario upload failed: %w", err)
	}

	remote, err := c.getResults(ctx)
	if err != nil {
		return fmt.Errorf("result retrieval failed: %w", err)
	}
	stats.RowsComputed = len(remote)

	evaluator := payout.NewEvaluator(
		payout.WithBaseRate(decimal.NewFromFloat(checkBaseRate)),
		payout.WithTierPolicy(rules.TierPolicy(checkTierPolicy)),
		payout.WithBonusPolicy(rules.BonusPolicy(checkBonusPolicy)),
	)
	local := evaluator.Evaluate(batch, checkTiers, checkBonuses)

	if len(local) != len(remote) {
		return fmt.Errorf("row count mismatch: local %d, remote %d", len(local), len(remote))
	}
	for i := range local {
		if local[i].Rank == remote[i].Rank && local[i].Total.Equal(remote[i].Total) {
			stats.RowsMatched++
			continue
		}
		stats.RowsMismatched++
		if config.Verbose {
			log.Warn(ctx, "row mismatch",
				logger.Int("index", i),
				logger.String("localTotal", local[i].Total.String()),
				logger.String("remoteTotal", remote[i].Total.String()),
			)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayStats(stats)

	if stats.RowsMismatched > 0 {
		return fmt.Errorf("%d of %d rows mismatched", stats.RowsMismatched, stats.RowsComputed)
	}
	log.Info(ctx, "scenario check completed successfully")
	return nil
}

// putRuleTables replaces tiers and bonuses with the reference tables.
func putRuleTables(ctx context.Context, c *client) error {
	tiers := make([]map[string]any, 0, len(checkTiers))
	for _, t := range checkTiers {
		tiers = append(tiers, map[string]any{
			"von_platz":     t.From,
			"bis_platz":     t.To,
			"eur_pro_punkt": t.Value.String(),
		})
	}
	if err := c.putRows(ctx, "/tiers", tiers); err != nil {
		return err
	}
	bonuses := make([]map[string]any, 0, len(checkBonuses))
	for _, b := range checkBonuses {
		bonuses = append(bonuses, map[string]any{
			"von_platz": b.From,
			"bis_platz": b.To,
			"bonus_eur": b.Value.String(),
		})
	}
	return c.putRows(ctx, "/bonuses", bonuses)
}

// displayStats prints the final run statistics.
func displayStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.String("runID", stats.RunID),
		logger.Int("scenariosGenerated", stats.ScenariosGenerated),
		logger.Int("rowsComputed", stats.RowsComputed),
		logger.Int("rowsMatched", stats.RowsMatched),
		logger.Int("rowsMismatched", stats.RowsMismatched),
		logger.String("duration", stats.Duration.String()),
	)
}
