package rules

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TierPolicy decides between overlapping tier intervals at query time.
type TierPolicy string

// Tier policies.
const (
	// TierPolicyFirst returns the first matching rule in table order.
	TierPolicyFirst TierPolicy = "first"

	// TierPolicyMaxRange keeps the historical policy name: despite the
	// name it selects the narrowest matching interval (minimal To-From),
	// ties broken by smallest From.
	TierPolicyMaxRange TierPolicy = "max_range"
)

// BonusPolicy aggregates overlapping bonus intervals at query time.
type BonusPolicy string

// Bonus policies.
const (
	BonusPolicyFirst BonusPolicy = "first"
	BonusPolicyMax   BonusPolicy = "max"
	BonusPolicySum   BonusPolicy = "sum"
)

// ParseTierPolicy validates an operator-supplied tier policy string.
func ParseTierPolicy(s string) (TierPolicy, error) {
	switch TierPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case TierPolicyFirst:
		return TierPolicyFirst, nil
	case TierPolicyMaxRange:
		return TierPolicyMaxRange, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTierPolicy, s)
	}
}

// ParseBonusPolicy validates an operator-supplied bonus policy string.
func ParseBonusPolicy(s string) (BonusPolicy, error) {
	switch BonusPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case BonusPolicyFirst:
		return BonusPolicyFirst, nil
	case BonusPolicyMax:
		return BonusPolicyMax, nil
	case BonusPolicySum:
		return BonusPolicySum, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBonusPolicy, s)
	}
}

// ResolveRate returns the per-point rate for rank. No matching tier
// means the fallback base rate. Total over any rank and any table,
// including an empty one; an unrecognized policy behaves like "first".
func ResolveRate(rank int, tiers Table, baseRate decimal.Decimal, policy TierPolicy) decimal.Decimal {
	matches := tiers.matches(rank)
	if len(matches) == 0 {
		return baseRate
	}
	if policy == TierPolicyMaxRange {
		best := matches[0]
		for _, r := range matches[1:] {
			if r.Width() < best.Width() || (r.Width() == best.Width() && r.From < best.From) {
				best = r
			}
		}
		return best.Value
	}
	return matches[0].Value
}

// ResolveBonus returns the promotion bonus for rank. No matching range
// means zero. An unrecognized policy aggregates like "sum", matching the
// historical fallthrough.
func ResolveBonus(rank int, bonuses Table, policy BonusPolicy) decimal.Decimal {
	matches := bonuses.matches(rank)
	if len(matches) == 0 {
		return decimal.Zero
	}
	switch policy {
	case BonusPolicyFirst:
		return matches[0].Value
	case BonusPolicyMax:
		best := matches[0].Value
		for _, r := range matches[1:] {
			if r.Value.GreaterThan(best) {
				best = r.Value
			}
		}
		return best
	default:
		sum := decimal.Zero
		for _, r := range matches {
			sum = sum.Add(r.Value)
		}
		return sum
	}
}

// matches collects the rules containing rank, in table order.
func (t Table) matches(rank int) []Rule {
	var out []Rule
	for _, r := range t {
		if r.Matches(rank) {
			out = append(out, r)
		}
	}
	return out
}
