// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/premia/internal/adapters/export"
	"github.com/okian/premia/pkg/metrics"
)

// ExportHandler serves downloadable renderings of the result batch.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExportCSV handles GET /results/export requests: the result
// batch as semicolon-separated text with a UTF-8 BOM.
func (h *ExportHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	results, _ := h.deps.Results(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="praemien_ergebnisse.csv"`)
	if err := export.WriteResultsCSV(w, results); err != nil {
		// Headers are gone; all we can do is log-level accounting.
		metrics.RecordHTTPError("results_export", r.Method, "write_failed")
		return
	}
	metrics.RecordExport("csv")
}

// HandleExportXLSX handles GET /results/export.xlsx requests: the
// printable workbook with configuration and results sheets.
func (h *ExportHandler) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	session := h.deps.Session(r.Context())
	results, summary := h.deps.Results(r.Context())

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="praemien_uebersicht.xlsx"`)
	if err := export.WriteWorkbook(w, session, results, summary); err != nil {
		metrics.RecordHTTPError("results_export_xlsx", r.Method, "write_failed")
		return
	}
	metrics.RecordExport("xlsx")
}
