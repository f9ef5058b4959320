// Package rules implements the rank-range rule engine: cleaning
// user-edited range tables into a canonical sorted form and resolving a
// rank against them under a selectable overlap policy.
//
// Cleaning is deliberately best-effort. Editors hand over spreadsheet-
// grade data; rows that do not coerce are dropped, never rejected.
package rules

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/okian/premia/internal/adapters/tabular"
)

// Canonical column names after aliasing. The German names are the wire
// vocabulary of the editor surface.
const (
	ColFrom   = "von_platz"
	ColTo     = "bis_platz"
	ColRate   = "eur_pro_punkt"
	ColBonus  = "bonus_eur"
	ColRank   = "platz"
	ColPoints = "punkte"
)

// rangeAliases maps the accepted spellings of the interval columns.
var rangeAliases = map[string]string{
	"von":       ColFrom,
	"von_platz": ColFrom,
	"bis":       ColTo,
	"bis_platz": ColTo,
}

// tierAliases additionally maps the per-point rate column spellings.
var tierAliases = merge(rangeAliases, map[string]string{
	"€/punkt":        ColRate,
	"euro pro punkt": ColRate,
	"eur_pro_punkt":  ColRate,
	"value":          ColRate,
})

// bonusAliases additionally maps the flat bonus column spellings.
var bonusAliases = merge(rangeAliases, map[string]string{
	"bonus":          ColBonus,
	"aufstiegsbonus": ColBonus,
	"bonus_eur":      ColBonus,
	"value":          ColBonus,
})

// ScenarioAliases maps the accepted spellings of the scenario columns.
var ScenarioAliases = map[string]string{
	"platz":  ColRank,
	"rang":   ColRank,
	"punkte": ColPoints,
	"points": ColPoints,
}

func merge(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Rule maps an inclusive rank interval to a value: a per-point rate for
// tiers, a flat promotion bonus for bonus ranges.
type Rule struct {
	From  int             `json:"von_platz"`
	To    int             `json:"bis_platz"`
	Value decimal.Decimal `json:"value"`
}

// Width is the interval width used by the narrowest-match policy.
func (r Rule) Width() int { return r.To - r.From }

// Matches reports whether the rule's interval contains rank.
func (r Rule) Matches(rank int) bool { return r.From <= rank && rank <= r.To }

// Table is a canonical rule table: sorted ascending by (From, To),
// inverted intervals removed. Overlapping intervals are permitted;
// resolution policy decides between them at query time.
type Table []Rule

// NormalizeTiers cleans a raw tier table (Von/Bis -> €/Punkt).
func NormalizeTiers(raw tabular.Table) Table {
	return normalize(raw, tierAliases, ColRate)
}

// NormalizeBonuses cleans a raw bonus table (Von/Bis -> Bonus €).
func NormalizeBonuses(raw tabular.Table) Table {
	return normalize(raw, bonusAliases, ColBonus)
}

// normalize aliases columns, coerces fields, drops rows that fail
// coercion or have From > To, and stable-sorts by (From, To). Malformed
// input degrades to an empty or partial table; it never errors.
func normalize(raw tabular.Table, aliases map[string]string, valueCol string) Table {
	out := make(Table, 0, len(raw))
	for _, row := range raw.Canonicalize(aliases) {
		from, ok := tabular.Int(row[ColFrom])
		if !ok {
			continue
		}
		to, ok := tabular.Int(row[ColTo])
		if !ok {
			continue
		}
		value, ok := tabular.Decimal(row[valueCol])
		if !ok {
			continue
		}
		if from > to {
			continue
		}
		out = append(out, Rule{From: from, To: to, Value: value})
	}
	return out.Normalize()
}

// Normalize re-cleans an already typed table: inverted intervals are
// dropped and the sort order restored. Normalizing a normalized table is
// a no-op.
func (t Table) Normalize() Table {
	out := make(Table, 0, len(t))
	for _, r := range t {
		if r.From > r.To {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Clone returns a copy safe to hand across the store boundary.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// InvertedRows counts raw rows whose interval coerces but is inverted
// (From > To). Those rows are dropped by normalization; the count feeds
// the non-blocking editor advisory and never alters computation.
func InvertedRows(raw tabular.Table, aliases map[string]string) int {
	n := 0
	for _, row := range raw.Canonicalize(aliases) {
		from, ok := tabular.Int(row[ColFrom])
		if !ok {
			continue
		}
		to, ok := tabular.Int(row[ColTo])
		if !ok {
			continue
		}
		if from > to {
			n++
		}
	}
	return n
}

// InvertedTierRows counts inverted rows in a raw tier table.
func InvertedTierRows(raw tabular.Table) int { return InvertedRows(raw, tierAliases) }

// InvertedBonusRows counts inverted rows in a raw bonus table.
func InvertedBonusRows(raw tabular.Table) int { return InvertedRows(raw, bonusAliases) }
