package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/logging"
)

type filterRequest struct {
	Generation string `json:"generation"`
	Category   string `json:"category"`
}

type searchRequest struct {
	Term      string `json:"term"`
	Immediate bool   `json:"immediate"`
}

type optionsResponse struct {
	Generations []pokemon.Generation `json:"generations"`
	Categories  []string             `json:"categories"`
}

// CatalogView returns the current catalog snapshot.
func (h *Handler) CatalogView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.View(), h.logger)
}

// CatalogOptions lists the selectable generation ranges and type tags.
func (h *Handler) CatalogOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Generations: pokemon.Generations(),
		Categories:  pokemon.Categories(),
	}, h.logger)
}

// ApplyFilter narrows the catalog by type tag and generation range.
func (h *Handler) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	gen, err := pokemon.ParseGenerationRange(req.Generation)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	view, err := h.catalog.ApplyFilter(r.Context(), gen, req.Category)
	writeView(w, r, view, err, h.logger)
}

// Search records the term and schedules the debounced match, answering 202 with the
// current view. With "immediate" set it matches at once and answers with the result.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	if req.Immediate {
		view, err := h.catalog.SearchNow(r.Context(), req.Term)
		writeView(w, r, view, err, h.logger)
		return
	}
	h.catalog.Search(req.Term)
	logging.Debug(loggerFromContext(r, h.logger), "search scheduled", logging.FieldTerm, req.Term)
	writeJSON(w, http.StatusAccepted, h.catalog.View(), h.logger)
}

// LoadMore appends the next page.
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.LoadMore(r.Context())
	writeView(w, r, view, err, h.logger)
}

// Reset clears every filter and the term.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.ResetToHome(r.Context())
	writeView(w, r, view, err, h.logger)
}

// PokemonDetails returns the expanded view of one record.
func (h *Handler) PokemonDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	d, err := h.details.Details(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, d, h.logger)
}

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}
