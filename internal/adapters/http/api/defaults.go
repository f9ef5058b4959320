// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// DefaultsHandler resets the session to the seed defaults.
type DefaultsHandler struct {
	deps Dependencies
}

// NewDefaultsHandler creates a new defaults handler.
func NewDefaultsHandler(deps Dependencies) *DefaultsHandler {
	return &DefaultsHandler{deps: deps}
}

// HandleLoadDefaults handles POST /defaults requests.
func (h *DefaultsHandler) HandleLoadDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.LoadDefaults(r.Context())
	writeJSON(w, http.StatusOK, h.deps.Session(r.Context()))
}
