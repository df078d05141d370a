package config

import "time"

// PokeAPIConfig controls how we talk to the PokeAPI.
type PokeAPIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MinInterval time.Duration
	IndexLimit  int
}

func loadPokeAPI() PokeAPIConfig {
	return PokeAPIConfig{
		BaseURL:     envOrDefault(envPokeAPIBaseURL, defaultPokeAPIURL),
		Timeout:     durationEnvOrDefault(envPokeAPITimeout, defaultPokeAPITimeout),
		MinInterval: durationEnvOrDefault(envPokeAPIInterval, defaultPokeAPIInterval),
		IndexLimit:  intEnvOrDefault(envPokeAPIIndex, defaultIndexLimit),
	}
}
