package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// NetworkError describes a failed or non-successful interaction with an upstream HTTP API.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	msg := e.Op
	if msg == "" {
		msg = "request"
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s: unexpected status %d", msg, e.StatusCode)
	} else {
		msg += " failed"
	}
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the request could reasonably succeed.
// Transport failures, timeouts, 429 and 5xx responses are retryable.
func (e *NetworkError) Retryable() bool {
	if errors.Is(e.Err, context.Canceled) {
		return false
	}
	switch {
	case e.StatusCode == 0:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// ValidationError reports malformed user input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports an attempt to create something that already exists.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.Key)
}

// NotFoundError reports a lookup against something that does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// CapacityError reports that a bounded collection is already full.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("team is full (max %d)", e.Limit)
}

// ConfigurationError reports a missing or unusable setting.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return e.Setting + " is not configured"
}

// Kind returns a short, stable label for a typed error ("network", "validation", ...).
// Unknown errors map to "internal".
func Kind(err error) string {
	var (
		netErr      *NetworkError
		validation  *ValidationError
		conflict    *ConflictError
		notFound    *NotFoundError
		capacity    *CapacityError
		configError *ConfigurationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &conflict):
		return "conflict"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &capacity):
		return "capacity"
	case errors.As(err, &configError):
		return "configuration"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "internal"
	}
}
