// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/premia/internal/domain/types"
)

// resultsResponse carries the recomputed batch and its summary.
type resultsResponse struct {
	Rows    []types.ScenarioResult `json:"rows"`
	Summary types.Summary          `json:"summary"`
}

// ResultsHandler serves recomputed payout results.
type ResultsHandler struct {
	deps Dependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps Dependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleGetResults handles GET /results requests. Every call is a full
// recomputation over the current session.
func (h *ResultsHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	results, summary := h.deps.Results(r.Context())
	if results == nil {
		results = []types.ScenarioResult{}
	}
	writeJSON(w, http.StatusOK, resultsResponse{Rows: results, Summary: summary})
}
