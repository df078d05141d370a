package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"pokedex-service/internal/app/compare"
	"pokedex-service/internal/app/details"
	"pokedex-service/internal/app/identity"
	"pokedex-service/internal/app/team"
	"pokedex-service/internal/catalog"
	"pokedex-service/internal/chat"
	"pokedex-service/internal/config"
	httpserver "pokedex-service/internal/http"
	"pokedex-service/internal/http/handlers"
	"pokedex-service/internal/kvstore"
	"pokedex-service/internal/logging"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/poller"
	"pokedex-service/internal/providers"
	"pokedex-service/internal/snapshots"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         kvstore.Store
	catalog       *catalog.Controller
	snapshots     snapshots.Store
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	store := buildStore(cfg, logger)
	ctrl := catalog.New(provider, catalog.Options{
		PageSize:           cfg.Catalog.PageSize,
		SearchDebounce:     cfg.Catalog.SearchDebounce,
		HydrateTimeout:     cfg.Catalog.HydrateTimeout,
		HydrateConcurrency: cfg.Catalog.HydrateConcurrency,
		IndexLimit:         cfg.PokeAPI.IndexLimit,
		Logger:             logger,
		Metrics:            recorder,
	})
	snaps := buildSnapshots(cfg)
	plr := poller.New(provider, ctrl, snaps.writer, logger, recorder, poller.Config{
		Interval:   cfg.Catalog.IndexRefresh,
		IndexLimit: cfg.PokeAPI.IndexLimit,
	})

	handler := handlers.NewHandler(handlers.Deps{
		Catalog:  ctrl,
		Details:  details.NewService(ctrl, provider, details.Options{Languages: cfg.Details.Languages, Logger: logger}),
		Identity: identity.NewGate(store, logger),
		Teams:    team.NewManager(store, logger),
		Compare:  compare.NewSession(),
		Chat:     chat.NewService(buildCompleter(cfg, logger), chat.Options{Logger: logger, Metrics: recorder}),
		Logger:   logger,
		Status:   plr.Status,
	})
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(plr.Refresh, cfg.AdminToken, logger)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         store,
		catalog:       ctrl,
		snapshots:     snaps.store,
		httpServer:    buildHTTPServer(cfg, handler, admin, logger, recorder),
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, handler *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler:     handler,
		Admin:       admin,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Metrics:     recorder,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP server, warms the catalog from the last index snapshot and starts
// the index refresher, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.warmStart(ctx)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

// warmStart installs the snapshotted index so the catalog serves before the first
// upstream index fetch completes.
func (s *Server) warmStart(ctx context.Context) {
	if s.snapshots == nil || s.catalog == nil {
		return
	}
	refs, err := s.snapshots.LoadIndex()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn(s.logger, "index snapshot unreadable", "error", err)
		}
		return
	}
	if _, err := s.catalog.ReplaceIndex(ctx, refs); err != nil {
		logging.Warn(s.logger, "warm start from snapshot failed", "error", err)
		return
	}
	s.poller.MarkWarm(len(refs))
	logging.Info(s.logger, "catalog warmed from snapshot", logging.FieldCount, len(refs))
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// In-flight hydrations and pending debounced searches end with the controller.
	if s.catalog != nil {
		s.catalog.Close()
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil && s.logger != nil {
			s.logger.Warn("store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
