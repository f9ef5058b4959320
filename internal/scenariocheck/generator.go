package scenariocheck

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/rules"
	"github.com/okian/premia/pkg/logger"
)

// generateScenarios builds a random scenario batch. Ranks may repeat on
// purpose: the service must not assume uniqueness. Roughly one row in
// ten is deliberately malformed to exercise the silent-drop contract.
func generateScenarios(ctx context.Context, config *Config, stats *Stats) tabular.Table {
	stats.RunID = uuid.New().String()
	logger.Get().Info(ctx, "generating scenarios",
		logger.String("runID", stats.RunID),
		logger.Int("numScenarios", config.NumScenarios),
	)

	batch := make(tabular.Table, 0, config.NumScenarios)
	for i := 0; i < config.NumScenarios; i++ {
		if i%10 == 9 {
			// Unparseable rank; the service has to drop this row.
			batch = append(batch, tabular.Row{
				rules.ColRank:   "n/a",
				rules.ColPoints: randomInt(config.MaxPoints),
			})
			continue
		}
		batch = append(batch, tabular.Row{
			rules.ColRank:   1 + randomInt(config.MaxRank),
			rules.ColPoints: randomInt(config.MaxPoints),
		})
	}
	stats.ScenariosGenerated = len(batch)
	return batch
}

// randomInt returns a uniform int in [0, n) from crypto/rand.
func randomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
