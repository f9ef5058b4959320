// Package service provides the core business service that implements
// the dependencies required by the HTTP API. It owns the single
// operator session and recomputes results in full on every read.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/premia/internal/adapters/repository"
	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/model"
	"github.com/okian/premia/internal/domain/payout"
	"github.com/okian/premia/internal/domain/rules"
	"github.com/okian/premia/internal/domain/types"
	"github.com/okian/premia/pkg/logger"
	"github.com/okian/premia/pkg/metrics"
)

// Service implements the API dependencies for the payout calculator.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Startup configuration applied on top of the seed session.
	baseRate     decimal.Decimal
	tierPolicy   rules.TierPolicy
	bonusPolicy  rules.BonusPolicy
	maxTableRows int

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBaseRate sets the startup fallback rate.
func WithBaseRate(rate decimal.Decimal) Option {
	return func(s *Service) {
		if !rate.IsNegative() {
			s.baseRate = rate
		}
	}
}

// WithTierPolicy sets the startup tier overlap policy.
func WithTierPolicy(p rules.TierPolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.tierPolicy = p
		}
	}
}

// WithBonusPolicy sets the startup bonus aggregation policy.
func WithBonusPolicy(p rules.BonusPolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.bonusPolicy = p
		}
	}
}

// WithMaxTableRows bounds the row count accepted per table edit.
func WithMaxTableRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTableRows = n
		}
	}
}

// WithStore injects a session store, mainly for tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		baseRate:     decimal.NewFromInt(50),
		tierPolicy:   rules.TierPolicyFirst,
		bonusPolicy:  rules.BonusPolicyFirst,
		maxTableRows: 5000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the session store with the seed defaults, adjusted
// to the configured base rate and policies.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewMemStore(repository.WithSeed(s.seedSession))
	}

	s.started = true
	s.logger.Info(ctx, "payout service started",
		logger.String("baseRate", s.baseRate.String()),
		logger.String("tierPolicy", string(s.tierPolicy)),
		logger.String("bonusPolicy", string(s.bonusPolicy)),
	)
	return nil
}

// Stop shuts the service down. The session is in-memory only, so there
// is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "payout service stopped")
}

// seedSession is the seed adjusted to the startup configuration.
func (s *Service) seedSession() model.Session {
	session := model.DefaultSession()
	session.BaseRate = s.baseRate
	session.TierPolicy = s.tierPolicy
	session.BonusPolicy = s.bonusPolicy
	return session
}

// Session returns a snapshot of the current session.
func (s *Service) Session(ctx context.Context) model.Session {
	return s.store.Snapshot(ctx)
}

// ApplyConfig replaces base rate and policies in one step.
func (s *Service) ApplyConfig(ctx context.Context, baseRate decimal.Decimal, tierPolicy rules.TierPolicy, bonusPolicy rules.BonusPolicy) error {
	if baseRate.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeBaseRate, baseRate)
	}
	return s.store.Update(ctx, func(session *model.Session) {
		session.BaseRate = baseRate
		session.TierPolicy = tierPolicy
		session.BonusPolicy = bonusPolicy
	})
}

// ReplaceTiers normalizes and stores a raw tier table. The returned
// warnings are non-blocking editor advisories; dropped rows never fail
// the call.
func (s *Service) ReplaceTiers(ctx context.Context, raw tabular.Table) (rules.Table, []string, error) {
	if len(raw) > s.maxTableRows {
		return nil, nil, fmt.Errorf("%w: %d rows", ErrTableTooLarge, len(raw))
	}
	normalized := rules.NormalizeTiers(raw)
	warnings := tableWarnings("Stufen", raw, normalized, rules.InvertedTierRows(raw))
	metrics.RecordRowsDropped("tiers", len(raw)-len(normalized))
	err := s.store.Update(ctx, func(session *model.Session) {
		session.Tiers = normalized
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug(ctx, "tiers replaced",
		logger.Int("raw", len(raw)),
		logger.Int("kept", len(normalized)),
	)
	return normalized.Clone(), warnings, nil
}

// ReplaceBonuses normalizes and stores a raw bonus table.
func (s *Service) ReplaceBonuses(ctx context.Context, raw tabular.Table) (rules.Table, []string, error) {
	if len(raw) > s.maxTableRows {
		return nil, nil, fmt.Errorf("%w: %d rows", ErrTableTooLarge, len(raw))
	}
	normalized := rules.NormalizeBonuses(raw)
	warnings := tableWarnings("Aufstiegsbonus", raw, normalized, rules.InvertedBonusRows(raw))
	metrics.RecordRowsDropped("bonuses", len(raw)-len(normalized))
	err := s.store.Update(ctx, func(session *model.Session) {
		session.Bonuses = normalized
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug(ctx, "bonuses replaced",
		logger.Int("raw", len(raw)),
		logger.Int("kept", len(normalized)),
	)
	return normalized.Clone(), warnings, nil
}

// ReplaceScenarios stores a raw scenario batch. The batch is kept as
// edited; cleaning happens at evaluation time.
func (s *Service) ReplaceScenarios(ctx context.Context, raw tabular.Table) error {
	if len(raw) > s.maxTableRows {
		return fmt.Errorf("%w: %d rows", ErrTableTooLarge, len(raw))
	}
	return s.store.Update(ctx, func(session *model.Session) {
		session.Scenarios = raw.Clone()
	})
}

// LoadDefaults resets the session to the seed defaults.
func (s *Service) LoadDefaults(ctx context.Context) {
	s.store.Reset(ctx)
	metrics.RecordSessionReset()
	s.logger.Info(ctx, "session reset to defaults")
}

// Results recomputes the full result batch from the current session.
// Recomputation is cheap enough to run on every read; nothing is cached.
func (s *Service) Results(ctx context.Context) ([]types.ScenarioResult, types.Summary) {
	start := time.Now()
	session := s.store.Snapshot(ctx)

	evaluator := payout.NewEvaluator(
		payout.WithBaseRate(session.BaseRate),
		payout.WithTierPolicy(session.TierPolicy),
		payout.WithBonusPolicy(session.BonusPolicy),
	)
	scenarios := payout.CleanScenarios(session.Scenarios)
	results := evaluator.EvaluateScenarios(scenarios, session.Tiers, session.Bonuses)

	metrics.RecordRowsDropped("scenarios", len(session.Scenarios)-len(scenarios))
	metrics.RecordRecompute(float64(time.Since(start).Microseconds()) / 1000.0)

	return results, types.Summarize(results)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      started,
		"maxTableRows": s.maxTableRows,
	}
	if started {
		session := s.store.Snapshot(context.Background())
		stats["tierRules"] = len(session.Tiers)
		stats["bonusRules"] = len(session.Bonuses)
		stats["scenarioRows"] = len(session.Scenarios)
		stats["tierPolicy"] = string(session.TierPolicy)
		stats["bonusPolicy"] = string(session.BonusPolicy)
		stats["baseRate"] = session.BaseRate.String()
	}
	return stats
}

// tableWarnings builds the operator-facing advisory list for a table
// edit. Informational only; computation is unaffected.
func tableWarnings(label string, raw tabular.Table, kept rules.Table, inverted int) []string {
	var warnings []string
	if inverted > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: %d Zeile(n) mit Von > Bis wurden verworfen", label, inverted))
	}
	if dropped := len(raw) - len(kept) - inverted; dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: %d Zeile(n) mit unvollständigen Werten wurden verworfen", label, dropped))
	}
	return warnings
}
