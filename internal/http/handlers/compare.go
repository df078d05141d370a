package handlers

import (
	"net/http"
)

type modeRequest struct {
	Active *bool `json:"active"`
}

// CompareState returns the compare mode, the selection and, with two selected, the result.
func (h *Handler) CompareState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.compare.State(), h.logger)
}

// CompareMode sets compare mode, or flips it when "active" is omitted.
func (h *Handler) CompareMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, r, err, h.logger)
			return
		}
	}
	if req.Active == nil {
		writeJSON(w, http.StatusOK, h.compare.ToggleMode(), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.compare.SetMode(*req.Active), h.logger)
}

// CompareSelect toggles a record in the selection.
func (h *Handler) CompareSelect(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	record, err := h.catalog.Record(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.compare.Select(record), h.logger)
}

// CompareClear drops the selection and keeps compare mode.
func (h *Handler) CompareClear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.compare.Clear(), h.logger)
}
