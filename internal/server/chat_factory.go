package server

import (
	"context"
	"log/slog"
	"strings"

	"pokedex-service/internal/chat"
	"pokedex-service/internal/config"
	"pokedex-service/internal/logging"
)

// newCompleter remains a var for tests to override.
var newCompleter = func(ctx context.Context, apiKey, model string) (chat.Completer, error) {
	c, err := chat.NewGenAICompleter(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// buildCompleter returns nil when chat is not configured; the chat service then
// answers every message with the invalid-key reply.
func buildCompleter(cfg config.Config, logger *slog.Logger) chat.Completer {
	if strings.TrimSpace(cfg.Chat.APIKey) == "" {
		logging.Info(logger, "chat disabled, GEMINI_API_KEY not set")
		return nil
	}
	c, err := newCompleter(context.Background(), cfg.Chat.APIKey, cfg.Chat.Model)
	if err != nil {
		logging.Warn(logger, "chat client setup failed", "error", err)
		return nil
	}
	return c
}
