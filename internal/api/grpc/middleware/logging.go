package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authkeeper/internal/logger"
)

// Logging holds unary and stream interceptors that log gRPC calls and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary request.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	l.logger.Debug("gRPC request started",
		"method", info.FullMethod,
		"peer", peerAddr(ctx))

	resp, err := handler(ctx, req)
	l.finish(info.FullMethod, start, err)

	return resp, err
}

// HandleGRPCStream logs method name, duration and status for each stream.
func (l *Logging) HandleGRPCStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	l.logger.Debug("gRPC stream started",
		"method", info.FullMethod,
		"peer", peerAddr(ss.Context()))

	err := handler(srv, ss)
	l.finish(info.FullMethod, start, err)

	return err
}

func (l *Logging) finish(method string, start time.Time, err error) {
	code := statusCode(err)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("gRPC request failed",
			"method", method,
			"duration_ms", duration.Milliseconds(),
			"status", code.String(),
			"error", err.Error())
		return
	}

	l.logger.Info("gRPC request completed",
		"method", method,
		"duration_ms", duration.Milliseconds(),
		"status", code.String())
}

func statusCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Internal
}

func peerAddr(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return ""
}
