// Package payout evaluates scenario batches against the configured rule
// tables. Evaluation is a pure, in-memory transform: clean the batch,
// resolve rate and bonus per row, total them up.
package payout

import (
	"github.com/shopspring/decimal"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/rules"
	"github.com/okian/premia/internal/domain/types"
)

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithBaseRate sets the fallback per-point rate for ranks no tier
// covers.
func WithBaseRate(rate decimal.Decimal) Option {
	return func(e *Evaluator) {
		if !rate.IsNegative() {
			e.baseRate = rate
		}
	}
}

// WithTierPolicy sets the tier overlap policy.
func WithTierPolicy(p rules.TierPolicy) Option {
	return func(e *Evaluator) {
		if p != "" {
			e.tierPolicy = p
		}
	}
}

// WithBonusPolicy sets the bonus aggregation policy.
func WithBonusPolicy(p rules.BonusPolicy) Option {
	return func(e *Evaluator) {
		if p != "" {
			e.bonusPolicy = p
		}
	}
}

// Evaluator computes payout results for scenario batches.
type Evaluator struct {
	baseRate    decimal.Decimal
	tierPolicy  rules.TierPolicy
	bonusPolicy rules.BonusPolicy
}

// NewEvaluator creates an evaluator with configuration options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		baseRate:    decimal.Zero,
		tierPolicy:  rules.TierPolicyFirst,
		bonusPolicy: rules.BonusPolicyFirst,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CleanScenarios coerces a raw scenario batch into typed scenarios.
// Rows where rank or points fail coercion are dropped; surviving rows
// keep their input order. Same best-effort contract as rule-table
// normalization.
func CleanScenarios(raw tabular.Table) []types.Scenario {
	out := make([]types.Scenario, 0, len(raw))
	for _, row := range raw.Canonicalize(rules.ScenarioAliases) {
		rank, ok := tabular.Int(row[rules.ColRank])
		if !ok {
			continue
		}
		points, ok := tabular.Decimal(row[rules.ColPoints])
		if !ok {
			continue
		}
		out = append(out, types.Scenario{Rank: rank, Points: points})
	}
	return out
}

// Evaluate cleans the raw batch and computes one result per surviving
// row: rate from the tiers (base rate fallback), bonus from the bonus
// ranges, total = points × rate + bonus. Output order matches cleaned
// input order. Pure; never errors.
func (e *Evaluator) Evaluate(raw tabular.Table, tiers, bonuses rules.Table) []types.ScenarioResult {
	return e.EvaluateScenarios(CleanScenarios(raw), tiers, bonuses)
}

// EvaluateScenarios computes results for an already cleaned batch.
func (e *Evaluator) EvaluateScenarios(scenarios []types.Scenario, tiers, bonuses rules.Table) []types.ScenarioResult {
	out := make([]types.ScenarioResult, 0, len(scenarios))
	for _, s := range scenarios {
		rate := rules.ResolveRate(s.Rank, tiers, e.baseRate, e.tierPolicy)
		bonus := rules.ResolveBonus(s.Rank, bonuses, e.bonusPolicy)
		out = append(out, types.ScenarioResult{
			Rank:   s.Rank,
			Points: s.Points,
			Rate:   rate,
			Bonus:  bonus,
			Total:  s.Points.Mul(rate).Add(bonus),
		})
	}
	return out
}
