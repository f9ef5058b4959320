// Package types contains common types used across the application.
package types

import "github.com/shopspring/decimal"

func init() {
	// Money fields go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Scenario is one (rank, points) row of the input batch. Scenarios have
// no identity beyond their position in the batch.
type Scenario struct {
	Rank   int             `json:"platz"`
	Points decimal.Decimal `json:"punkte"`
}

// ScenarioResult is a scenario plus its computed payout.
// Total = Points × Rate + Bonus.
type ScenarioResult struct {
	Rank   int             `json:"platz"`
	Points decimal.Decimal `json:"punkte"`
	Rate   decimal.Decimal `json:"eur_pro_punkt"`
	Bonus  decimal.Decimal `json:"bonus_eur"`
	Total  decimal.Decimal `json:"gesamt_eur"`
}

// Summary aggregates a result batch for display. AverageRate is the
// Ø €/Punkt indicator; zero when there are no rows.
type Summary struct {
	Rows        int             `json:"rows"`
	AverageRate decimal.Decimal `json:"average_rate"`
}

// Summarize computes the display summary for a result batch.
func Summarize(results []ScenarioResult) Summary {
	s := Summary{Rows: len(results)}
	if len(results) == 0 {
		return s
	}
	sum := decimal.Zero
	for _, r := range results {
		sum = sum.Add(r.Rate)
	}
	s.AverageRate = sum.Div(decimal.NewFromInt(int64(len(results))))
	return s
}
