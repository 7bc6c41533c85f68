package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/presenceops/presence-cloud/internal/agenthealth"
	internalhttp "github.com/presenceops/presence-cloud/internal/api/http"
	"github.com/presenceops/presence-cloud/internal/auth"
	"github.com/presenceops/presence-cloud/internal/db"
	"github.com/presenceops/presence-cloud/internal/downtime"
	"github.com/presenceops/presence-cloud/internal/presence"
	"github.com/presenceops/presence-cloud/internal/report"
	"github.com/presenceops/presence-cloud/internal/status"
)

var AppVersion string

func main() {
	InitConfig()

	slog.Info("Presence Cloud Server", "version", AppVersion)

	if err := db.RunMigrations(config.Db.Url, config.Db.Schema); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.InitDB(ctx, config.Db.Url, config.Db.Schema)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	statusSvc := status.NewService(status.NewPGStore(pool))
	presenceSvc := presence.NewService(presence.NewPGStore(pool))
	agentHealthSvc := agenthealth.NewService(agenthealth.NewPGStore(pool))
	downtimeSvc := downtime.NewService(downtime.NewPGStore(pool))
	reportSvc := report.NewService(presenceSvc, statusSvc)

	guard := auth.NewLockoutGuard(auth.DefaultMaxAttempts, auth.DefaultLockoutDuration)
	authSvc := auth.NewService(auth.Config{
		JWTSecret:         config.Auth.JwtSecret,
		TokenTTL:          config.Auth.TokenTTL,
		AdminUsername:     config.Auth.AdminUsername,
		AdminPasswordHash: config.Auth.AdminPasswordHash,
	}, guard)

	go statusSvc.RunSweeper(ctx, config.Presence.SweepInterval, config.Presence.StaleAfter)

	services := &internalhttp.Services{
		Auth:        authSvc,
		Status:      statusSvc,
		Presence:    presenceSvc,
		AgentHealth: agentHealthSvc,
		Downtime:    downtimeSvc,
		Report:      reportSvc,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "PATCH", "GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(gin.Recovery())
	internalhttp.SetupRoute(engine, services, config.Http)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Http.Port),
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		slog.Error("Server error", "error", err)
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	slog.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
