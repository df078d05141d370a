package config

import "time"

// CatalogConfig tunes the catalog controller and the index refresher.
type CatalogConfig struct {
	PageSize           int
	SearchDebounce     time.Duration
	HydrateTimeout     time.Duration
	HydrateConcurrency int
	IndexRefresh       time.Duration
}

func loadCatalog() CatalogConfig {
	return CatalogConfig{
		PageSize:           intEnvOrDefault(envPageSize, defaultPageSize),
		SearchDebounce:     durationEnvOrDefault(envSearchDebounce, defaultSearchDebounce),
		HydrateTimeout:     durationEnvOrDefault(envHydrateTimeout, defaultHydrateTimeout),
		HydrateConcurrency: intEnvOrDefault(envHydrateWorkers, defaultHydrateLimit),
		IndexRefresh:       durationEnvOrDefault(envIndexRefresh, defaultIndexRefresh),
	}
}
