package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/config"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/database"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/email"
	grpcServer "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/grpc"
	httpServer "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/http"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/messaging"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db, &cfg.Service.Supabase, zapLogger)

	// Outbound infrastructure
	mailer := email.NewSMTPMailer(cfg.Email)
	revalidator, err := messaging.NewRedisRevalidator(cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := revalidator.Close(); err != nil {
			zapLogger.Error("Failed to close revalidator", zap.Error(err))
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize servers
	grpcSrv := grpcServer.NewServer(cfg, zapLogger)
	httpSrv := httpServer.NewServer(cfg, zapLogger, repos, mailer, revalidator)

	// Start servers
	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")

	// Shutdown servers
	if err := grpcSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
