// Package grpc implements the gRPC transport of notes-keeper. It exposes the
// standard grpc.health.v1 service so that orchestrators can probe readiness
// on a port separate from the REST API.
package grpc

import (
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service name besides the overall "" one.
const ServiceName = "notes-keeper"

// Handler is the root gRPC transport handler.
//
// A handler instance is created once at startup and registered on the gRPC
// server via [Handler.Register].
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] whose services report NOT_SERVING until
// the handler is registered.
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.SetServing(false)

	return h
}

// Register installs the health service on server and marks it serving.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
	h.SetServing(true)
}

// SetServing flips the reported status of both the overall server and
// [ServiceName].
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	h.logger.Info().Str("status", status.String()).Msg("gRPC health status changed")
}

// Shutdown reports NOT_SERVING to every watcher and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
