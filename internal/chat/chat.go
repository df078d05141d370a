// Package chat keeps the assistant transcript and relays user messages to a Completer.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/logging"
	"pokedex-service/internal/metrics"
)

// Roles of transcript messages.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Greeting opens every transcript.
const Greeting = "¡Hola! Soy el Profesor Oak AI."

// Substituted replies shown in place of a model answer when the call fails.
const (
	ReplyBadKey      = "Error: La clave API no es válida."
	ReplyNoModel     = "Error: Modelo no disponible. Verifica tu clave API."
	ReplyUnreachable = "Error al conectar con el servidor."
)

const defaultTimeout = 30 * time.Second

// Message is one transcript entry.
type Message struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Options configures a Service.
type Options struct {
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Service owns one transcript. A nil Completer means chat is not configured.
type Service struct {
	completer Completer
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	mu         sync.Mutex
	transcript []Message
}

// NewService returns a Service whose transcript holds the greeting.
func NewService(completer Completer, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	s := &Service{
		completer: completer,
		timeout:   opts.Timeout,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		now:       time.Now,
	}
	s.transcript = []Message{s.message(RoleModel, Greeting)}
	return s
}

// Transcript returns a copy of every message so far.
func (s *Service) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.transcript...)
}

// Reset drops everything but the greeting.
func (s *Service) Reset() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = []Message{s.message(RoleModel, Greeting)}
	return append([]Message(nil), s.transcript...)
}

// Send appends text as a user message and the model's reply. Blank text is rejected
// with a ValidationError and leaves the transcript alone. When the completion fails,
// a substituted reply is appended and the typed error is returned with it.
func (s *Service) Send(ctx context.Context, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, &domain.ValidationError{Field: "message", Reason: "must not be blank"}
	}
	s.append(s.message(RoleUser, text))

	start := time.Now()
	reply, err := s.complete(ctx, text)
	s.metrics.RecordChatMessage(time.Since(start), err)
	if err != nil {
		logging.Error(s.logger, "chat completion failed", err, "kind", domain.Kind(err))
		msg := s.message(RoleModel, substitute(err))
		s.append(msg)
		return msg, err
	}
	msg := s.message(RoleModel, reply)
	s.append(msg)
	return msg, nil
}

func (s *Service) complete(ctx context.Context, text string) (string, error) {
	if s.completer == nil {
		return "", &domain.ConfigurationError{Setting: "GEMINI_API_KEY"}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	reply, err := s.completer.Complete(ctx, text)
	if err != nil && domain.Kind(err) == "internal" {
		err = &domain.NetworkError{Op: "generate content", Err: err}
	}
	return reply, err
}

func (s *Service) append(m Message) {
	s.mu.Lock()
	s.transcript = append(s.transcript, m)
	s.mu.Unlock()
}

func (s *Service) message(role, text string) Message {
	return Message{Role: role, Text: text, At: s.now().UTC()}
}

func substitute(err error) string {
	var (
		cfgErr *domain.ConfigurationError
		netErr *domain.NetworkError
	)
	switch {
	case errors.As(err, &cfgErr):
		return ReplyBadKey
	case errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound:
		return ReplyNoModel
	case errors.As(err, &netErr) && (netErr.StatusCode == http.StatusUnauthorized ||
		netErr.StatusCode == http.StatusForbidden || netErr.StatusCode == http.StatusBadRequest):
		return ReplyBadKey
	default:
		return ReplyUnreachable
	}
}
