package handlers

import (
	"log/slog"
	"net/http"

	"pokedex-service/internal/app/compare"
	"pokedex-service/internal/app/details"
	"pokedex-service/internal/app/identity"
	"pokedex-service/internal/app/team"
	"pokedex-service/internal/catalog"
	"pokedex-service/internal/chat"
	"pokedex-service/internal/poller"
)

// Deps lists the services the HTTP handlers drive.
type Deps struct {
	Catalog  *catalog.Controller
	Details  *details.Service
	Identity *identity.Gate
	Teams    *team.Manager
	Compare  *compare.Session
	Chat     *chat.Service
	Logger   *slog.Logger
	// Status reports the index refresher's health; nil means always ready.
	Status func() poller.Status
}

// Handler wires HTTP routes to the domain services.
type Handler struct {
	catalog  *catalog.Controller
	details  *details.Service
	identity *identity.Gate
	teams    *team.Manager
	compare  *compare.Session
	chat     *chat.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		catalog:  d.Catalog,
		details:  d.Details,
		identity: d.Identity,
		teams:    d.Teams,
		compare:  d.Compare,
		chat:     d.Chat,
		logger:   d.Logger,
		statusFn: d.Status,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic once the master index has loaded.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "indexSize": status.IndexSize}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// NotFound answers unknown routes with the JSON error body.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorKind(w, r, http.StatusNotFound, "not found", "not_found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}
