package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/premia/internal/domain/model"
	"github.com/okian/premia/internal/domain/types"
)

// Sheet names of the workbook export.
const (
	sheetConfig  = "Konfiguration"
	sheetResults = "Ergebnisse"
)

// WriteWorkbook renders the printable summary: one sheet with the
// session configuration (base rate, policies, tiers, bonuses) and one
// with the computed results.
func WriteWorkbook(w io.Writer, session model.Session, results []types.ScenarioResult, summary types.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeConfigSheet(f, session); err != nil {
		return err
	}
	if err := writeResultsSheet(f, results, summary); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the config sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteExport, err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteExport, err)
	}
	return nil
}

func writeConfigSheet(f *excelize.File, session model.Session) error {
	if _, err := f.NewSheet(sheetConfig); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteExport, err)
	}

	rows := [][]any{
		{"basis_eur_pro_punkt", session.BaseRate.String()},
		{"tier_policy", string(session.TierPolicy)},
		{"bonus_policy", string(session.BonusPolicy)},
		{},
		{"Stufen"},
		{"von_platz", "bis_platz", "eur_pro_punkt"},
	}
	for _, t := range session.Tiers {
		rows = append(rows, []any{t.From, t.To, t.Value.String()})
	}
	rows = append(rows, []any{}, []any{"Aufstiegsbonus"}, []any{"von_platz", "bis_platz", "bonus_eur"})
	for _, b := range session.Bonuses {
		rows = append(rows, []any{b.From, b.To, b.Value.String()})
	}
	return writeRows(f, sheetConfig, rows)
}

func writeResultsSheet(f *excelize.File, results []types.ScenarioResult, summary types.Summary) error {
	if _, err := f.NewSheet(sheetResults); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteExport, err)
	}

	rows := [][]any{{"platz", "punkte", "eur_pro_punkt", "bonus_eur", "gesamt_eur"}}
	for _, r := range results {
		rows = append(rows, []any{r.Rank, r.Points.String(), r.Rate.String(), r.Bonus.String(), r.Total.String()})
	}
	rows = append(rows, []any{}, []any{"durchschnitt_eur_pro_punkt", summary.AverageRate.String()})
	return writeRows(f, sheetResults, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteExport, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteExport, err)
		}
	}
	return nil
}
