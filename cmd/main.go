package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ulticlub/roster-service/config"
	"github.com/ulticlub/roster-service/db"
	"github.com/ulticlub/roster-service/handlers"
	"github.com/ulticlub/roster-service/metrics"
	"github.com/ulticlub/roster-service/realtime"
	"github.com/ulticlub/roster-service/repositories"
	"github.com/ulticlub/roster-service/routes"
	"github.com/ulticlub/roster-service/services"
	"github.com/ulticlub/roster-service/storage"
)

type repositorySet struct {
	players     repositories.PlayerRepository
	tournaments repositories.TournamentRepository
	teams       repositories.TeamRepository
	roster      repositories.RosterRepository
	close       func() error
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.Bool("media_enabled", cfg.Media.Enabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	var uploader storage.FileUploader
	if cfg.Media.Enabled() {
		uploader, err = storage.NewS3Uploader(ctx, storage.S3UploaderConfig{
			Endpoint:        cfg.Media.Endpoint,
			Region:          cfg.Media.Region,
			AccessKeyID:     cfg.Media.AccessKeyID,
			SecretAccessKey: cfg.Media.SecretAccessKey,
			BucketName:      cfg.Media.Bucket,
			PublicBaseURL:   cfg.Media.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("initialize media uploader: %w", err)
		}
		logger.Info("media uploader initialized", slog.String("bucket", cfg.Media.Bucket))
	} else {
		logger.Warn("media storage not configured, player photo uploads are disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rosterMetrics, err := metrics.NewRosterMetrics(registry)
	if err != nil {
		return fmt.Errorf("register roster metrics: %w", err)
	}

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)
	logger.Info("websocket hub started")

	rosterService := services.NewRosterService(repos.roster, repos.players, repos.tournaments, repos.teams, hub, rosterMetrics, logger)
	playerService := services.NewPlayerService(repos.players, uploader, logger)
	tournamentService := services.NewTournamentService(repos.tournaments, repos.teams, logger)
	dashboardService := services.NewDashboardService(repos.players, repos.tournaments, repos.roster, logger)

	router := routes.SetupRoutes(
		routes.Options{
			JWTSecret:      cfg.JWTSecretKey,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Gatherer:       registry,
			Logger:         logger,
		},
		handlers.NewRosterHandler(rosterService),
		handlers.NewPlayerHandler(playerService),
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewWebSocketHandler(hub, tournamentService, cfg.CORSAllowedOrigins, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
	if err := server.Shutdown(shutdownCtx); err != nil {
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("failed to force close server", slog.Any("error", closeErr))
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositorySet, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := repositories.NewMemoryStore()
		logger.Warn("using in-memory storage, data is lost on restart")
		return &repositorySet{
			players:     store.Players(),
			tournaments: store.Tournaments(),
			teams:       store.Teams(),
			roster:      store.Roster(),
			close:       func() error { return nil },
		}, nil

	case config.StorageDriverPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		logger.Info("database connection established")

		if cfg.RunMigrations {
			if err := db.Migrate(ctx, dbConn); err != nil {
				dbConn.Close()
				return nil, fmt.Errorf("apply schema: %w", err)
			}
			logger.Info("database schema applied")
		}

		return &repositorySet{
			players:     repositories.NewPostgresPlayerRepository(dbConn),
			tournaments: repositories.NewPostgresTournamentRepository(dbConn),
			teams:       repositories.NewPostgresTeamRepository(dbConn),
			roster:      repositories.NewPostgresRosterRepository(dbConn),
			close:       dbConn.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
