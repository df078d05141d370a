package handlers

import (
	"net/http"

	"pokedex-service/internal/app/team"
	"pokedex-service/internal/domain/pokemon"
)

type idRequest struct {
	ID int `json:"id"`
}

type teamResponse struct {
	Trainer string                 `json:"trainer"`
	Members []pokemon.EntityRecord `json:"members"`
	Max     int                    `json:"max"`
	Added   *bool                  `json:"added,omitempty"`
}

// Team returns the current trainer's team.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.requireTrainer(w, r)
	if !ok {
		return
	}
	members, err := h.teams.Team(r.Context(), trainer)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, teamResponse{Trainer: trainer, Members: members, Max: team.MaxSize}, h.logger)
}

// ToggleTeam adds the record with the given id or removes it when already a member.
// A full team answers 409 and is left unchanged.
func (h *Handler) ToggleTeam(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.requireTrainer(w, r)
	if !ok {
		return
	}
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
	members, added, err := h.teams.Toggle(r.Context(), trainer, record)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, teamResponse{Trainer: trainer, Members: members, Max: team.MaxSize, Added: &added}, h.logger)
}

// RemoveFromTeam drops the record with the path id.
func (h *Handler) RemoveFromTeam(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.requireTrainer(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	members, err := h.teams.Remove(r.Context(), trainer, id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, teamResponse{Trainer: trainer, Members: members, Max: team.MaxSize}, h.logger)
}
