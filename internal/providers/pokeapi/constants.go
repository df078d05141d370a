package pokeapi

import "time"

const (
	providerName       = "pokeapi"
	defaultBaseURL     = "https://pokeapi.co/api/v2"
	defaultIndexLimit  = 10000
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
