// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/pkg/metrics"
)

// scenariosResponse acknowledges a batch replacement.
type scenariosResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// ScenariosHandler handles scenario batch edits and file uploads.
type ScenariosHandler struct {
	deps           Dependencies
	maxUploadBytes int64
}

// NewScenariosHandler creates a new scenarios handler.
func NewScenariosHandler(deps Dependencies, maxUploadBytes int64) *ScenariosHandler {
	return &ScenariosHandler{deps: deps, maxUploadBytes: maxUploadBytes}
}

// HandlePutScenarios handles PUT /scenarios requests: the edited batch
// as loosely-typed rows. The batch is stored as sent; cleaning happens
// on evaluation.
func (h *ScenariosHandler) HandlePutScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_scenarios"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req rowsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.ReplaceScenarios(r.Context(), toTable(req.Rows)); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, scenariosResponse{Status: "ok", Rows: len(req.Rows)})
}

// HandleUpload handles POST /scenarios/upload requests. The body is a
// delimited text file (delimiter sniffed) or an XLSX workbook, selected
// by Content-Type. A file that cannot be parsed at all is the uploader's
// error; the core never sees it.
func (h *ScenariosHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload_scenarios"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	format := uploadFormat(r.Header.Get("Content-Type"))

	var (
		table tabular.Table
		err   error
	)
	switch format {
	case "xlsx":
		table, err = tabular.ReadXLSX(body, 0)
	default:
		table, err = tabular.ReadCSV(body, 0)
	}
	if err != nil {
		metrics.RecordUpload(format, "error")
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload_too_large", NewKind(op, ErrUploadSize))
			return
		}
		writeError(w, http.StatusBadRequest, "upload_unparseable", WrapKind(op, ErrUploadParse, err))
		return
	}

	if err := h.deps.ReplaceScenarios(r.Context(), table); err != nil {
		metrics.RecordUpload(format, "error")
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	metrics.RecordUpload(format, "ok")
	writeJSON(w, http.StatusOK, scenariosResponse{Status: "ok", Rows: len(table)})
}

// uploadFormat picks the parser from the Content-Type header.
func uploadFormat(contentType string) string {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "spreadsheetml") || strings.Contains(ct, "ms-excel") {
		return "xlsx"
	}
	return "csv"
}
