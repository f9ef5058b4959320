// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/model"
	"github.com/okian/premia/internal/domain/rules"
	"github.com/okian/premia/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Session returns a snapshot of the current operator session.
	Session(ctx context.Context) model.Session

	// ApplyConfig replaces base rate and overlap policies.
	ApplyConfig(ctx context.Context, baseRate decimal.Decimal, tierPolicy rules.TierPolicy, bonusPolicy rules.BonusPolicy) error

	// Table edits; each returns the normalized table plus non-blocking
	// editor advisories.
	ReplaceTiers(ctx context.Context, raw tabular.Table) (rules.Table, []string, error)
	ReplaceBonuses(ctx context.Context, raw tabular.Table) (rules.Table, []string, error)

	// ReplaceScenarios stores a raw scenario batch.
	ReplaceScenarios(ctx context.Context, raw tabular.Table) error

	// LoadDefaults resets the session to the seed defaults.
	LoadDefaults(ctx context.Context)

	// Results recomputes the full result batch.
	Results(ctx context.Context) ([]types.ScenarioResult, types.Summary)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	sessionHandler   *SessionHandler
	configHandler    *ConfigHandler
	tiersHandler     *RuleTableHandler
	bonusesHandler   *RuleTableHandler
	scenariosHandler *ScenariosHandler
	resultsHandler   *ResultsHandler
	exportHandler    *ExportHandler
	defaultsHandler  *DefaultsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxUploadBytes int64) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		sessionHandler:   NewSessionHandler(deps),
		configHandler:    NewConfigHandler(deps),
		tiersHandler:     NewTiersHandler(deps),
		bonusesHandler:   NewBonusesHandler(deps),
		scenariosHandler: NewScenariosHandler(deps, maxUploadBytes),
		resultsHandler:   NewResultsHandler(deps),
		exportHandler:    NewExportHandler(deps),
		defaultsHandler:  NewDefaultsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/session", MetricsMiddleware(s.sessionHandler.HandleGetSession, "session"))
	mux.HandleFunc("/config", MetricsMiddleware(s.configHandler.HandlePutConfig, "config"))
	mux.HandleFunc("/tiers", MetricsMiddleware(s.tiersHandler.HandlePutTable, "tiers"))
	mux.HandleFunc("/bonuses", MetricsMiddleware(s.bonusesHandler.HandlePutTable, "bonuses"))
	mux.HandleFunc("/scenarios", MetricsMiddleware(s.scenariosHandler.HandlePutScenarios, "scenarios"))
	mux.HandleFunc("/scenarios/upload", MetricsMiddleware(s.scenariosHandler.HandleUpload, "scenarios_upload"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandleGetResults, "results"))
	mux.HandleFunc("/results/export", MetricsMiddleware(s.exportHandler.HandleExportCSV, "results_export"))
	mux.HandleFunc("/results/export.xlsx", MetricsMiddleware(s.exportHandler.HandleExportXLSX, "results_export_xlsx"))
	mux.HandleFunc("/defaults", MetricsMiddleware(s.defaultsHandler.HandleLoadDefaults, "defaults"))
}

// rowsRequest is the envelope for table edits: loosely-typed rows keyed
// by whatever column names the editor currently shows.
type rowsRequest struct {
	Rows []map[string]any `json:"rows"`
}

// tableResponse carries a normalized rule table back to the editor.
type tableResponse struct {
	Rows     rules.Table `json:"rows"`
	Warnings []string    `json:"warnings,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeJSON decodes a request body with numbers kept exact.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

// toTable converts decoded row objects into the tabular shape.
func toTable(rows []map[string]any) tabular.Table {
	out := make(tabular.Table, 0, len(rows))
	for _, r := range rows {
		out = append(out, tabular.Row(r))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
