package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/keybet/internal/catalog"
	"github.com/mauv0809/keybet/internal/config"
	"github.com/mauv0809/keybet/internal/database"
	server "github.com/mauv0809/keybet/internal/http"
	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/metrics"
	"github.com/mauv0809/keybet/internal/notifier/slack"
	"github.com/mauv0809/keybet/internal/predictor"
	"github.com/mauv0809/keybet/internal/processor"
	"github.com/mauv0809/keybet/internal/pubsub"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)

	cfg, err := config.Load(config.NewViper(), os.Getenv("KEYBET_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	cfg.Log.Format = "json"
	cfg.Log.ApplyLogging()

	db, dbTeardown, err := database.InitDB(cfg.DB.Path, cfg.DB.TursoURL, cfg.DB.TursoToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	historyStore := history.New(db)

	var client predictor.PredictionClient
	var remote catalog.RemoteSource
	if cfg.Server.URL != "" {
		apiClient, err := predictor.NewClientFromConfig(cfg, metricsSvc)
		if err != nil {
			log.Fatal("Failed to create prediction client", "error", err)
		}
		client, remote = apiClient, apiClient
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Timeout())
	teams, err := catalog.LoadSource(ctx, cfg.Catalog, catalog.NewStore(db), remote)
	cancel()
	if err != nil {
		log.Fatal("Failed to load team catalog", "error", err)
	}
	metricsSvc.SetCatalogTeams(teams.Len())

	var notifier processor.Notifier
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack not configured, notifications disabled")
	}

	var ps pubsub.PubSubClient
	if cfg.PubSub.ProjectID != "" {
		ps, err = pubsub.New(context.Background(), cfg.PubSub.ProjectID)
		if err != nil {
			log.Fatal("Failed to create Pub/Sub client", "error", err)
		}
		defer ps.Close()
	} else {
		log.Info("Pub/Sub not configured, prediction events disabled")
	}

	proc := processor.New(client, teams, historyStore, notifier, metricsSvc, ps)
	s := server.NewServer(teams, historyStore, proc, metricsSvc, metricsHandler, ps, cfg.HTTP)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.HTTP.Port, "catalog_source", cfg.Catalog.Source, "teams", teams.Len())
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
