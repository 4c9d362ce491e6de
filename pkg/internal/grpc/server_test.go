package grpc

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alpixn/site/pkg/internal/config"
	"github.com/alpixn/site/pkg/internal/database"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestProbeFollowsDatabase(t *testing.T) {
	db, err := database.NewGorm(config.Database{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "grpc.db"),
	}, false)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	server := NewGrpc("127.0.0.1:0", db)
	ctx := context.Background()
	if status := server.Probe(ctx); status != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", status)
	}

	sqlDB, _ := db.DB()
	sqlDB.Close()
	if status := server.Probe(ctx); status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status = %v, want NOT_SERVING", status)
	}

	resp, err := server.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil || resp.Status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("check = %v, %v", resp, err)
	}
}
