package rpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/khaledhikmat/visiongrid/internal/lgr"
	"github.com/khaledhikmat/visiongrid/internal/rpc/visionpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server wraps a grpc.Server bound to a single listener, registering the
// VisionService, the standard gRPC health service and reflection.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
}

// NewServer builds a gRPC server exposing svc on host:port.
func NewServer(host string, port int, svc *Service) (*Server, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	gs := grpc.NewServer()
	visionpb.RegisterVisionServiceServer(gs, svc)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus(visionpb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(gs)

	return &Server{grpcServer: gs, health: hs, listener: lis}, nil
}

// Serve blocks accepting connections until the server is stopped.
func (s *Server) Serve() error {
	lgr.Logger.Info("grpc server listening", slog.String("addr", s.listener.Addr().String()))
	return s.grpcServer.Serve(s.listener)
}

// Stop performs a graceful shutdown, marking the service NOT_SERVING first
// so load balancers stop routing new requests before in-flight RPCs drain.
func (s *Server) Stop(ctx context.Context) {
	s.health.SetServingStatus(visionpb.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		lgr.Logger.Warn("grace period exceeded, forcing grpc server stop")
		s.grpcServer.Stop()
	}
}
