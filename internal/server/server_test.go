package server

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/notes-keeper/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/notes-keeper/internal/handler/http"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stopRecorder is a worker that blocks until its context is cancelled.
type stopRecorder struct {
	stopped atomic.Bool
}

func (w *stopRecorder) Run(ctx context.Context) error {
	<-ctx.Done()
	w.stopped.Store(true)
	return nil
}

type failingWorker struct{}

func (failingWorker) Run(context.Context) error {
	return errors.New("worker failed")
}

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:     "127.0.0.1:0",
		GRPCAddress:     "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	}
}

func testHandlers(cfg config.Server) *handler.Handlers {
	return &handler.Handlers{
		HTTP: myHTTP.NewHandler(&service.Services{}, cfg, logger.Nop()),
		GRPC: myGRPC.NewHandler(logger.Nop()),
	}
}

func TestNewServer_NoTransports(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	cfg := testServerConfig()
	worker := &stopRecorder{}

	s, err := NewServer(testHandlers(cfg), workers.NewWorkers(worker), cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, worker.stopped.Load(), "workers must be stopped after the transports")
}

func TestServer_RunReturnsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := config.Server{HTTPAddress: busy.Addr().String(), ShutdownTimeout: time.Second}
	s, err := NewServer(testHandlers(cfg), nil, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ListenAndServe")
}

func TestServer_RunReturnsWorkerError(t *testing.T) {
	cfg := testServerConfig()
	s, err := NewServer(testHandlers(cfg), workers.NewWorkers(failingWorker{}), cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.Run(ctx)
	require.EqualError(t, err, "worker failed")
}
