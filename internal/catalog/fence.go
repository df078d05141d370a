package catalog

import (
	"context"
	"errors"
	"time"

	"pokedex-service/internal/logging"
)

// begin issues a new generation for a window-writing operation and cancels the one it supersedes.
func (c *Controller) begin(parent context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked(parent)
}

// beginSearch is begin for a search scheduled under epoch. It refuses, without
// touching the current operation, once a later search, filter or reset has moved
// the epoch on.
func (c *Controller) beginSearch(parent context.Context, epoch uint64) (context.Context, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.searchEpoch != epoch {
		return nil, 0, false
	}
	ctx, gen := c.beginLocked(parent)
	return ctx, gen, true
}

func (c *Controller) beginLocked(parent context.Context) (context.Context, uint64) {
	if c.state.cancel != nil {
		c.state.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	if c.state.closed {
		cancel()
	}
	c.state.gen++
	c.state.cancel = cancel
	c.state.loading = true
	return ctx, c.state.gen
}

// commit applies fn to the state when gen is still the latest issued generation.
// A stale completion is dropped, counted, and reported as ErrSuperseded.
func (c *Controller) commit(op string, gen uint64, started time.Time, fn func(s *state)) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.state.gen {
		c.metrics.RecordStaleDiscard(op)
		logging.Debug(c.logger, "discarding stale completion",
			logging.FieldOp, op,
			logging.FieldGeneration, gen,
			"latest", c.state.gen,
		)
		return c.viewLocked(), ErrSuperseded
	}
	c.settleLocked()
	c.state.lastErr = nil
	fn(&c.state)
	logging.Debug(c.logger, "catalog updated",
		logging.FieldOp, op,
		logging.FieldGeneration, gen,
		logging.FieldCount, len(c.state.window),
		logging.FieldDurationMS, time.Since(started).Milliseconds(),
	)
	return c.viewLocked(), nil
}

// fail records err for the latest generation and leaves the previous window intact.
func (c *Controller) fail(op string, gen uint64, err error) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.state.gen {
		c.metrics.RecordStaleDiscard(op)
		return c.viewLocked(), ErrSuperseded
	}
	c.settleLocked()
	if errors.Is(err, context.Canceled) {
		return c.viewLocked(), err
	}
	c.state.lastErr = err
	logging.Error(c.logger, "catalog operation failed", err,
		logging.FieldOp, op,
		logging.FieldGeneration, gen,
	)
	return c.viewLocked(), err
}

func (c *Controller) settleLocked() {
	c.state.loading = false
	if c.state.cancel != nil {
		c.state.cancel()
		c.state.cancel = nil
	}
}
