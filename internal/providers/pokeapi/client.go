package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/providers"
)

// Config controls how the PokeAPI client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches catalog resources from PokeAPI and maps them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a PokeAPI client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// FetchIndex lists the master index in a single request.
func (c *Client) FetchIndex(ctx context.Context, limit int) ([]pokemon.EntityRef, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(resolveIndexLimit(limit)))
	q.Set("offset", "0")

	var payload indexResponse
	if err := c.getJSON(ctx, "fetch index", c.baseURL+"/pokemon?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	return mapRefs(payload.Results), nil
}

// FetchByType lists the members of one type tag.
func (c *Client) FetchByType(ctx context.Context, category string) ([]pokemon.EntityRef, error) {
	payload, err := c.fetchType(ctx, "fetch type members", category)
	if err != nil {
		return nil, err
	}
	return mapTypeMembers(payload.Pokemon), nil
}

// FetchPokemon hydrates a reference through its lookup address.
func (c *Client) FetchPokemon(ctx context.Context, ref pokemon.EntityRef) (pokemon.EntityRecord, error) {
	target := ref.URL
	if target == "" {
		if ref.Name == "" {
			return pokemon.EntityRecord{}, &domain.ValidationError{Field: "ref", Reason: "missing url and name"}
		}
		target = c.baseURL + "/pokemon/" + url.PathEscape(strings.ToLower(ref.Name)) + "/"
	}
	var payload pokemonResponse
	if err := c.getJSON(ctx, "fetch pokemon", target, &payload); err != nil {
		return pokemon.EntityRecord{}, err
	}
	return mapPokemon(payload), nil
}

// FetchPokemonByID hydrates a record by its national dex number.
func (c *Client) FetchPokemonByID(ctx context.Context, id int) (pokemon.EntityRecord, error) {
	if id <= 0 {
		return pokemon.EntityRecord{}, &domain.ValidationError{Field: "id", Reason: "must be positive"}
	}
	var payload pokemonResponse
	if err := c.getJSON(ctx, "fetch pokemon", fmt.Sprintf("%s/pokemon/%d/", c.baseURL, id), &payload); err != nil {
		return pokemon.EntityRecord{}, err
	}
	return mapPokemon(payload), nil
}

// FetchSpecies loads the species resource behind a record.
func (c *Client) FetchSpecies(ctx context.Context, speciesURL string) (pokemon.Species, error) {
	var payload speciesResponse
	if err := c.getJSON(ctx, "fetch species", speciesURL, &payload); err != nil {
		return pokemon.Species{}, err
	}
	return mapSpecies(payload), nil
}

// FetchEvolutionChain loads an evolution chain and flattens its first branch.
func (c *Client) FetchEvolutionChain(ctx context.Context, chainURL string) ([]pokemon.EvolutionStage, error) {
	var payload evolutionChainResponse
	if err := c.getJSON(ctx, "fetch evolution chain", chainURL, &payload); err != nil {
		return nil, err
	}
	return mapEvolution(payload), nil
}

// FetchTypeDetail loads the damage relations of one type.
func (c *Client) FetchTypeDetail(ctx context.Context, name string) (pokemon.TypeDetail, error) {
	payload, err := c.fetchType(ctx, "fetch type detail", name)
	if err != nil {
		return pokemon.TypeDetail{}, err
	}
	return mapTypeDetail(payload), nil
}

func (c *Client) fetchType(ctx context.Context, op, name string) (typeResponse, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return typeResponse{}, &domain.ValidationError{Field: "type", Reason: "must not be empty"}
	}
	var payload typeResponse
	err := c.getJSON(ctx, op, c.baseURL+"/type/"+url.PathEscape(name), &payload)
	return payload, err
}

func (c *Client) getJSON(ctx context.Context, op, target string, dest any) error {
	if target == "" {
		return &domain.ValidationError{Field: "url", Reason: "must not be empty"}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &domain.NetworkError{Op: op, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(op, target, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &domain.NetworkError{Op: op, URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func (c *Client) statusError(op, target string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))

	var inner error
	if resp.StatusCode == http.StatusTooManyRequests {
		inner = &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    msg,
		}
	} else if msg != "" {
		inner = errors.New(msg)
	}
	return &domain.NetworkError{Op: op, URL: target, StatusCode: resp.StatusCode, Err: inner}
}
