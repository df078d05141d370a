package chat

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"pokedex-service/internal/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Completer turns one prompt into one model reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenAICompleter calls the Gemini API.
type GenAICompleter struct {
	client *genai.Client
	model  string
}

// NewGenAICompleter builds a Gemini-backed Completer. An empty apiKey is a ConfigurationError.
func NewGenAICompleter(ctx context.Context, apiKey, model string) (*GenAICompleter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &domain.ConfigurationError{Setting: "GEMINI_API_KEY"}
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &domain.ConfigurationError{Setting: "GEMINI_API_KEY: " + err.Error()}
	}
	return &GenAICompleter{client: client, model: model}, nil
}

// Complete sends prompt as a single user turn. Upstream failures are NetworkErrors
// carrying the API status code when one is known.
func (c *GenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		netErr := &domain.NetworkError{Op: "generate content", Err: err}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			netErr.StatusCode = apiErr.Code
		}
		return "", netErr
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &domain.NetworkError{Op: "generate content", Err: errors.New("empty response")}
	}
	return text, nil
}
