package server

import (
	"context"

	"pokedex-service/internal/poller"
)

// Poller defines the index refresher behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	Refresh(ctx context.Context) poller.Status
	MarkWarm(size int)
}
