package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pokedex-service/internal/domain"
	"pokedex-service/internal/domain/pokemon"
)

// hydrate resolves refs into records concurrently. The batch is all-or-nothing:
// the first failing fetch cancels its siblings and no records are returned.
func (c *Controller) hydrate(ctx context.Context, refs []pokemon.EntityRef) ([]pokemon.EntityRecord, error) {
	if len(refs) == 0 {
		return []pokemon.EntityRecord{}, nil
	}
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.opts.HydrateTimeout)
	defer cancel()

	records := make([]pokemon.EntityRecord, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.HydrateConcurrency)
	for i, ref := range refs {
		g.Go(func() error {
			rec, err := c.src.FetchPokemon(gctx, ref)
			if err != nil {
				return fmt.Errorf("hydrate %s: %w", ref.Name, err)
			}
			records[i] = rec
			return nil
		})
	}
	err := g.Wait()
	if errors.Is(err, context.DeadlineExceeded) && domain.Kind(err) != "network" {
		err = &domain.NetworkError{Op: "hydrate", Err: err}
	}
	c.metrics.RecordHydration(len(refs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Controller) firstPage(refs []pokemon.EntityRef) []pokemon.EntityRef {
	return pageAt(refs, 0, c.opts.PageSize)
}

func pageAt(refs []pokemon.EntityRef, offset, size int) []pokemon.EntityRef {
	if offset >= len(refs) {
		return nil
	}
	end := min(offset+size, len(refs))
	return refs[offset:end]
}

// windowShows reports whether window holds exactly the records for refs, in order.
func windowShows(window []pokemon.EntityRecord, refs []pokemon.EntityRef) bool {
	if len(window) != len(refs) {
		return false
	}
	for i, ref := range refs {
		if window[i].ID != ref.ID() {
			return false
		}
	}
	return true
}
