package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/handler"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/workers"
	"golang.org/x/sync/errgroup"
)

type server struct {
	transports      []transport
	workers         *workers.Workers
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer builds a transport for every handler present in handlers. The
// workers are started with the transports and stopped after them, so that
// requests finishing during shutdown can still hand work to them.
func NewServer(handlers *handler.Handlers, bgWorkers *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{
		workers:         bgWorkers,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		s.transports = append(s.transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		s.transports = append(s.transports, newGRPCServer(handlers.GRPC, cfg, logger))
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

// Run blocks until ctx is cancelled, a termination signal arrives or a
// transport fails. It returns the first transport or worker error.
func (s *server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	workersCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWorkers()

	if s.workers != nil {
		g.Go(func() error {
			return s.workers.Run(workersCtx)
		})
	}

	for _, t := range s.transports {
		g.Go(t.RunServer)
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("shutting down servers...")

		shutdownCtx, cancel := s.shutdownContext()
		defer cancel()

		var errs []error
		for _, t := range s.transports {
			errs = append(errs, t.Shutdown(shutdownCtx))
		}
		stopWorkers()

		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		s.logger.Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *server) shutdownContext() (context.Context, context.CancelFunc) {
	if s.shutdownTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.shutdownTimeout)
}
