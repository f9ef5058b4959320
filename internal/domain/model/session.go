// Package model contains domain models passed between layers.
package model

import (
	"github.com/shopspring/decimal"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/rules"
)

// Session is the single unit of mutable state: the operator's current
// configuration plus the scenario batch. It lives only for the process
// lifetime; edits replace fields wholesale and results are recomputed
// from scratch on every read.
type Session struct {
	BaseRate    decimal.Decimal   `json:"base_rate"`
	TierPolicy  rules.TierPolicy  `json:"tier_policy"`
	BonusPolicy rules.BonusPolicy `json:"bonus_policy"`
	Tiers       rules.Table       `json:"tiers"`
	Bonuses     rules.Table       `json:"bonuses"`

	// Scenarios is the raw batch as edited or uploaded; cleaning happens
	// at evaluation time so editors see exactly what they typed.
	Scenarios tabular.Table `json:"scenarios"`
}

// Clone returns a copy safe to hand outside the store.
func (s Session) Clone() Session {
	s.Tiers = s.Tiers.Clone()
	s.Bonuses = s.Bonuses.Clone()
	s.Scenarios = s.Scenarios.Clone()
	return s
}

// Seed values: base rate 50 €/Punkt, 100 €/Punkt for places 3-6 and
// 75 €/Punkt from place 7, a 500 € promotion bonus for places 1-2, and
// a 16-team example season.
var (
	defaultBaseRate = decimal.NewFromInt(50)

	defaultTiers = rules.Table{
		{From: 3, To: 6, Value: decimal.NewFromInt(100)},
		{From: 7, To: 999, Value: decimal.NewFromInt(75)},
	}

	defaultBonuses = rules.Table{
		{From: 1, To: 2, Value: decimal.NewFromInt(500)},
	}

	defaultPoints = []int{73, 69, 67, 59, 51, 46, 35, 35, 32, 32, 31, 26, 23, 19, 11, 11}
)

// DefaultSession builds a session populated with the seed defaults.
func DefaultSession() Session {
	scenarios := make(tabular.Table, 0, len(defaultPoints))
	for i, pts := range defaultPoints {
		scenarios = append(scenarios, tabular.Row{
			rules.ColRank:   i + 1,
			rules.ColPoints: pts,
		})
	}
	return Session{
		BaseRate:    defaultBaseRate,
		TierPolicy:  rules.TierPolicyFirst,
		BonusPolicy: rules.BonusPolicyFirst,
		Tiers:       defaultTiers.Clone(),
		Bonuses:     defaultBonuses.Clone(),
		Scenarios:   scenarios,
	}
}
