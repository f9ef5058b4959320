// Package export renders result batches for download. These are the
// presentation collaborators of the core: they receive plain result
// rows and the input tables, and own all serialization concerns.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/okian/premia/internal/domain/types"
)

// The original tool produced semicolon-separated files with a UTF-8 BOM
// so Excel opens them cleanly on German locales. Kept for parity.
var (
	csvSeparator = ';'
	csvBOM       = []byte{0xEF, 0xBB, 0xBF}
)

// resultHeader is the column order of the result export.
var resultHeader = []string{"platz", "punkte", "eur_pro_punkt", "bonus_eur", "gesamt_eur"}

// WriteResultsCSV writes the result batch as semicolon-separated text
// with a leading UTF-8 BOM.
func WriteResultsCSV(w io.Writer, results []types.ScenarioResult) error {
	if _, err := w.Write(csvBOM); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteExport, err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = csvSeparator

	if err := cw.Write(resultHeader); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteExport, err)
	}
	for _, r := range results {
		record := []string{
			fmt.Sprintf("%d", r.Rank),
			r.Points.String(),
			r.Rate.String(),
			r.Bonus.String(),
			r.Total.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteExport, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteExport, err)
	}
	return nil
}
