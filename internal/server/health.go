package server

import (
	"context"
	"fmt"
	"net"
	"pairing-hub/internal/config"
	"pairing-hub/internal/utils/grpczap"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const serviceName = "pairing-hub"

func newHealthServer(logger *zap.SugaredLogger, development bool) (*grpc.Server, *health.Server) {
	opts := []logging.Option{
		logging.WithLogOnEvents(logging.StartCall, logging.FinishCall),
	}

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		logging.UnaryServerInterceptor(grpczap.InterceptorLogger(logger.Desugar()), opts...),
	))

	if development {
		reflection.Register(s)
	}

	checker := health.NewServer()
	checker.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	checker.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, checker)

	return s, checker
}

// RunHealthServer serves the gRPC health protocol for orchestrators.
func RunHealthServer(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.Config) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HealthPort))
	if err != nil {
		logger.Fatalw("failed to listen", "error", err)
	}

	s, checker := newHealthServer(logger, cfg.Development)
	logger.Infow("listening for health checks", "port", cfg.HealthPort)

	go func() {
		if err := s.Serve(lis); err != nil {
			logger.Fatalw("failed to serve", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		checker.Shutdown()
		s.GracefulStop()
	}()
}
