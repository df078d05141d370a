// Package details assembles the expanded view of one record: description, evolution
// line, weaknesses and power analysis.
package details

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
	"pokedex-service/internal/logging"
	"pokedex-service/internal/providers"
)

// NoDescription is shown when a species has no flavor text in any preferred language.
const NoDescription = "No description available."

const defaultTimeout = 15 * time.Second

var defaultLanguages = []string{"es", "en"}

var flavorWhitespace = strings.NewReplacer("\f", " ", "\n", " ", "\r", " ")

// RecordSource resolves a record by id.
type RecordSource interface {
	Record(ctx context.Context, id int) (pokemon.EntityRecord, error)
}

// Options configures a Service.
type Options struct {
	Languages []string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Service builds Details from a RecordSource and the upstream detail endpoints.
type Service struct {
	records   RecordSource
	upstream  providers.DetailProvider
	languages []string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(records RecordSource, upstream providers.DetailProvider, opts Options) *Service {
	if len(opts.Languages) == 0 {
		opts.Languages = defaultLanguages
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Service{
		records:   records,
		upstream:  upstream,
		languages: opts.Languages,
		timeout:   opts.Timeout,
		logger:    opts.Logger,
	}
}

// Details fetches the record with id and its secondary resources. Species, evolution
// chain and type lookups run concurrently; a missing description or chain degrades to
// the placeholder and an empty line, any other failure is returned.
func (s *Service) Details(ctx context.Context, id int) (pokemon.Details, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.records.Record(ctx, id)
	if err != nil {
		return pokemon.Details{}, err
	}
	out := pokemon.Details{
		Record:      record,
		Description: NoDescription,
		Evolution:   []pokemon.EvolutionStage{},
		Weaknesses:  []string{},
		Power:       pokemon.AnalyzePower(record),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		desc, evolution, err := s.speciesInfo(gctx, record)
		if err != nil {
			return err
		}
		out.Description = desc
		out.Evolution = evolution
		return nil
	})
	g.Go(func() error {
		weaknesses, err := s.Weaknesses(gctx, record.Types)
		if err != nil {
			return err
		}
		out.Weaknesses = weaknesses
		return nil
	})
	if err := g.Wait(); err != nil {
		logging.Error(s.logger, "details lookup failed", err, logging.FieldPokemonID, id)
		return pokemon.Details{}, err
	}
	return out, nil
}

func (s *Service) speciesInfo(ctx context.Context, record pokemon.EntityRecord) (string, []pokemon.EvolutionStage, error) {
	evolution := []pokemon.EvolutionStage{}
	if record.SpeciesURL == "" {
		return NoDescription, evolution, nil
	}
	species, err := s.upstream.FetchSpecies(ctx, record.SpeciesURL)
	if isNotFound(err) {
		logging.Debug(s.logger, "species missing", logging.FieldPokemonID, record.ID)
		return NoDescription, evolution, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("species: %w", err)
	}

	desc, err := Description(species.FlavorTexts, s.languages)
	if err != nil {
		desc = NoDescription
	}
	if species.EvolutionChainURL == "" {
		return desc, evolution, nil
	}
	chain, err := s.upstream.FetchEvolutionChain(ctx, species.EvolutionChainURL)
	switch {
	case isNotFound(err):
		logging.Debug(s.logger, "evolution chain missing", logging.FieldPokemonID, record.ID)
	case err != nil:
		return "", nil, fmt.Errorf("evolution chain: %w", err)
	default:
		evolution = chain
	}
	return desc, evolution, nil
}

// Weaknesses is the union of the types dealing double damage to any of types, in
// first-seen order. Type details are fetched concurrently.
func (s *Service) Weaknesses(ctx context.Context, types []string) ([]string, error) {
	relations := make([][]string, len(types))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range types {
		g.Go(func() error {
			detail, err := s.upstream.FetchTypeDetail(gctx, name)
			if err != nil {
				return fmt.Errorf("type %s: %w", name, err)
			}
			relations[i] = detail.DoubleDamageFrom
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return union(relations), nil
}

// Description picks the first flavor text in the first preferred language that has one
// and collapses its form feeds and newlines into spaces.
func Description(texts []pokemon.FlavorText, languages []string) (string, error) {
	for _, lang := range languages {
		for _, ft := range texts {
			if ft.Language == lang && strings.TrimSpace(ft.Text) != "" {
				return flavorWhitespace.Replace(ft.Text), nil
			}
		}
	}
	return "", &domain.NotFoundError{Resource: "description"}
}

func union(lists [][]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// isNotFound matches both a typed NotFoundError and an upstream 404.
func isNotFound(err error) bool {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var netErr *domain.NetworkError
	return errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound
}
