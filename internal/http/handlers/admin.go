package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"pokedex-service/internal/http/requestutil"
	"pokedex-service/internal/logging"
	"pokedex-service/internal/poller"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresh func(context.Context) poller.Status
	token   string
	logger  *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. refresh runs one index refresh cycle.
func NewAdminHandler(refresh func(context.Context) poller.Status, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresh: refresh,
		token:   token,
		logger:  logger,
	}
}

// RefreshIndex refetches the master index now and writes its snapshot.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) RefreshIndex(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeErrorKind(w, r, http.StatusUnauthorized, "unauthorized", kindUnauthorized, h.logger)
		return
	}
	if h.refresh == nil {
		writeError(w, r, http.StatusServiceUnavailable, "index refresher not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	status := h.refresh(r.Context())
	if status.ConsecutiveFailures > 0 {
		logging.Warn(logger, "admin index refresh failed", slog.String("error", status.LastError))
		writeErrorKind(w, r, http.StatusBadGateway, status.LastError, "network", logger)
		return
	}
	logging.Info(logger, "admin index refreshed", slog.Int(logging.FieldCount, status.IndexSize))
	writeJSON(w, http.StatusOK, status, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
