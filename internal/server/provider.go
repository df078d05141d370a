package server

import (
	"log/slog"

	"pokedex-service/internal/config"
	"pokedex-service/internal/providers"
	"pokedex-service/internal/providers/fixture"
	"pokedex-service/internal/providers/pokeapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "pokeapi":
		return pokeapi.NewClient(pokeapi.Config{
			BaseURL: cfg.PokeAPI.BaseURL,
			Timeout: cfg.PokeAPI.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
