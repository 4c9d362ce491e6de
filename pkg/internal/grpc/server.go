package grpc

import (
	"context"
	"net"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"gorm.io/gorm"
)

type App struct {
	bind   string
	db     *gorm.DB
	srv    *grpc.Server
	health *health.Server
}

func NewGrpc(bind string, db *gorm.DB) *App {
	server := &App{
		bind:   bind,
		db:     db,
		srv:    grpc.NewServer(),
		health: health.NewServer(),
	}

	healthpb.RegisterHealthServer(server.srv, server.health)
	reflection.Register(server.srv)

	return server
}

// Probe reports the service as serving only while the database answers.
func (v *App) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if sqlDB, err := v.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	v.health.SetServingStatus("", status)
	return status
}

func (v *App) Listen() error {
	listener, err := net.Listen("tcp", v.bind)
	if err != nil {
		return err
	}

	v.Probe(context.Background())
	log.Info().Str("bind", v.bind).Msg("gRPC server is listening...")
	return v.srv.Serve(listener)
}

func (v *App) Stop() {
	v.health.Shutdown()
	v.srv.GracefulStop()
}
