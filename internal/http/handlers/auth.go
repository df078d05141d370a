package handlers

import (
	"net/http"
)

type nameRequest struct {
	Name string `json:"name"`
}

type trainerResponse struct {
	Name string `json:"name"`
}

// Register adds a trainer name to the registry.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	name, err := h.identity.Register(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, trainerResponse{Name: name}, h.logger)
}

// Login makes a registered trainer current.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	name, err := h.identity.Login(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, trainerResponse{Name: name}, h.logger)
}

// Logout clears the current trainer.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Logout(r.Context()); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current trainer or 401.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	name, ok := h.requireTrainer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trainerResponse{Name: name}, h.logger)
}

// Trainers lists the registered trainer names.
func (h *Handler) Trainers(w http.ResponseWriter, r *http.Request) {
	names, err := h.identity.Registered(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"trainers": names}, h.logger)
}

// requireTrainer writes 401 and reports false when nobody is logged in.
func (h *Handler) requireTrainer(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, ok, err := h.identity.Current(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return "", false
	}
	if !ok {
		writeErrorKind(w, r, http.StatusUnauthorized, "login required", kindUnauthorized, h.logger)
		return "", false
	}
	return name, true
}
