package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/observability"
)

// LoggingInterceptor logs every call and counts it by status code.
func LoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		elapsed := time.Since(start)

		observability.GRPCRequests.WithLabelValues(info.FullMethod, code.String()).Inc()
		if err != nil {
			log.Warn("grpc call failed", "method", info.FullMethod, "code", code.String(), "error", err)
		} else {
			log.Debug("grpc call served", "method", info.FullMethod, "duration_ms", elapsed.Milliseconds())
		}
		return resp, err
	}
}
