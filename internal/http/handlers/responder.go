package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"pokedex-service/internal/catalog"
	"pokedex-service/internal/domain"
	"pokedex-service/internal/http/middleware"
	"pokedex-service/internal/http/requestutil"
	"pokedex-service/internal/logging"
)

const (
	maxBodyBytes     = 1 << 20
	kindUnauthorized = "unauthorized"
	kindInternal     = "internal"
)

type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorKind(w, r, status, message, "", logger)
}

func writeErrorKind(w http.ResponseWriter, r *http.Request, status int, message, kind string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message, Kind: kind, RequestID: requestID(r)}, logger)
}

// writeDomainError maps a typed error to its HTTP status and writes {error, kind, requestId}.
// Unclassified errors are logged and reported without their message.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, kind := statusFor(err)
	msg := err.Error()
	if kind == kindInternal {
		logging.Error(loggerFromContext(r, logger), "request failed", err)
		msg = "internal error"
	}
	writeErrorKind(w, r, status, msg, kind, logger)
}

func statusFor(err error) (int, string) {
	if errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, "canceled"
	}
	kind := domain.Kind(err)
	switch kind {
	case "validation":
		return http.StatusBadRequest, kind
	case "not_found":
		return http.StatusNotFound, kind
	case "conflict", "capacity":
		return http.StatusConflict, kind
	case "configuration":
		return http.StatusServiceUnavailable, kind
	case "network":
		return http.StatusBadGateway, kind
	default:
		return http.StatusInternalServerError, kindInternal
	}
}

// writeView reports a catalog operation. A superseded operation is not a failure: the
// caller gets 202 and the state the newer operation produced.
func writeView(w http.ResponseWriter, r *http.Request, view catalog.View, err error, logger *slog.Logger) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view, logger)
	case errors.Is(err, catalog.ErrSuperseded):
		writeJSON(w, http.StatusAccepted, view, logger)
	default:
		writeDomainError(w, r, err, logger)
	}
}

// decodeJSON reads a JSON body into dest. Malformed input is a ValidationError.
func decodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return &domain.ValidationError{Field: "body", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(requestutil.HeaderRequestID)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
