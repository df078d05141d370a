package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Provider    string
	CORSOrigins []string
	PokeAPI     PokeAPIConfig
	Catalog     CatalogConfig
	Storage     StorageConfig
	Chat        ChatConfig
	Details     DetailsConfig
	Metrics     MetricsConfig
	// AdminToken guards the admin endpoints; empty disables them.
	AdminToken  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		Provider:    envOrDefault(envProvider, defaultProvider),
		CORSOrigins: listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		PokeAPI:     loadPokeAPI(),
		Catalog:     loadCatalog(),
		Storage:     loadStorage(),
		Chat:        loadChat(),
		Details:     loadDetails(),
		Metrics:     loadMetrics(),
		AdminToken:  envOrDefault(envAdminToken, ""),
	}
}
