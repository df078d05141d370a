package config

import "time"

const (
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envCORSOrigins      = "CORS_ALLOWED_ORIGINS"
	envPokeAPIBaseURL   = "POKEAPI_BASE_URL"
	envPokeAPITimeout   = "POKEAPI_API_TIMEOUT"
	envPokeAPIInterval  = "POKEAPI_MIN_INTERVAL"
	envPokeAPIIndex     = "POKEAPI_INDEX_LIMIT"
	envPageSize         = "CATALOG_PAGE_SIZE"
	envSearchDebounce   = "SEARCH_DEBOUNCE"
	envHydrateTimeout   = "HYDRATE_TIMEOUT"
	envHydrateWorkers   = "HYDRATE_CONCURRENCY"
	envIndexRefresh     = "INDEX_REFRESH_INTERVAL"
	envStoragePath      = "STORAGE_PATH"
	envSnapshotDir      = "SNAPSHOT_DIR"
	envGeminiAPIKey     = "GEMINI_API_KEY"
	envChatModel        = "CHAT_MODEL"
	envFlavorLanguages  = "FLAVOR_LANGUAGES"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken       = "ADMIN_TOKEN"
	defaultPort         = "4000"
	defaultProvider     = "pokeapi"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "pokedex-service"
	defaultPokeAPIURL   = "https://pokeapi.co/api/v2"
	defaultIndexLimit   = 10000
	defaultPageSize     = 20
	defaultHydrateLimit = 20
	defaultChatModel    = "gemini-2.5-flash"
	defaultStoragePath  = "data/pokedex.db"
	defaultSnapshotDir  = "data/snapshots"

	defaultPokeAPITimeout = 10 * Duration(time.Second)
	// PokeAPI asks clients to be gentle; 25ms keeps a 20-record page well under a second.
	defaultPokeAPIInterval = 25 * Duration(time.Millisecond)
	defaultSearchDebounce  = 500 * Duration(time.Millisecond)
	defaultHydrateTimeout  = 15 * Duration(time.Second)
	// The index changes only when new species ship, so refresh rarely.
	defaultIndexRefresh = 6 * Duration(time.Hour)
)

var (
	defaultCORSOrigins     = []string{"http://localhost:*"}
	defaultFlavorLanguages = []string{"es", "en"}
)
