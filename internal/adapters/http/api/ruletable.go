// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/rules"
)

// replaceFunc is the service operation behind a rule-table edit.
type replaceFunc func(ctx context.Context, raw tabular.Table) (rules.Table, []string, error)

// RuleTableHandler handles edits of one rank-range table. The tiers and
// bonuses endpoints share this handler; only the backing operation
// differs.
type RuleTableHandler struct {
	op      string
	replace replaceFunc
}

// NewTiersHandler creates the handler behind PUT /tiers.
func NewTiersHandler(deps Dependencies) *RuleTableHandler {
	return &RuleTableHandler{op: "api.put_tiers", replace: deps.ReplaceTiers}
}

// NewBonusesHandler creates the handler behind PUT /bonuses.
func NewBonusesHandler(deps Dependencies) *RuleTableHandler {
	return &RuleTableHandler{op: "api.put_bonuses", replace: deps.ReplaceBonuses}
}

// HandlePutTable handles a rule-table replacement. Malformed rows never
// fail the request; the normalized table plus advisories come back so
// the editor can show what survived.
func (h *RuleTableHandler) HandlePutTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req rowsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(h.op, ErrBadRequest, err))
		return
	}
	normalized, warnings, err := h.replace(r.Context(), toTable(req.Rows))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(h.op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{Rows: normalized, Warnings: warnings})
}
