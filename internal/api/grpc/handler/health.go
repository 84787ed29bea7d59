package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/authkeeper/internal/logger"
)

// DefaultCheckInterval is how often the database is pinged.
const DefaultCheckInterval = 10 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health keeps the standard gRPC health service in sync with database
// reachability.
type Health struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewHealth creates a new Health handler. A non-positive interval falls back
// to DefaultCheckInterval.
func NewHealth(pinger Pinger, interval time.Duration, logger *logger.Logger) *Health {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Health{
		server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
}

// Server returns the health server to register on a gRPC server.
func (h *Health) Server() *health.Server {
	return h.server
}

// Check pings the database once and updates the overall serving status.
func (h *Health) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: database ping failed",
			"error", err.Error())
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.server.SetServingStatus("", status)
	return status
}

// Run checks health on every tick until ctx is done, then marks the server
// as shutting down.
func (h *Health) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}
