// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/rules"
)

// configRequest mirrors the operator configuration surface: base rate
// plus the two overlap policies. base_rate may arrive as a number or a
// numeric string.
type configRequest struct {
	BaseRate    any    `json:"base_rate"`
	TierPolicy  string `json:"tier_policy"`
	BonusPolicy string `json:"bonus_policy"`
}

// ConfigHandler handles configuration updates.
type ConfigHandler struct {
	deps Dependencies
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(deps Dependencies) *ConfigHandler {
	return &ConfigHandler{deps: deps}
}

// HandlePutConfig handles PUT /config requests. Unlike table edits,
// configuration is validated strictly: a bad policy or a negative base
// rate is an operator mistake worth rejecting.
func (h *ConfigHandler) HandlePutConfig(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_config"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req configRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	baseRate, ok := tabular.Decimal(req.BaseRate)
	if !ok || baseRate.IsNegative() {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	tierPolicy, err := rules.ParseTierPolicy(req.TierPolicy)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	bonusPolicy, err := rules.ParseBonusPolicy(req.BonusPolicy)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.ApplyConfig(r.Context(), baseRate, tierPolicy, bonusPolicy); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Session(r.Context()))
}
