package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	kinesisService "github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/gorilla/mux"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/chart"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/config"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/handlers"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/kinesis"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/logging"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/mapview"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/service"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured JSON logging
	slog.SetDefault(logging.New(logging.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
	}))

	ctx := context.Background()

	// AWS config is only needed for DynamoDB or Kinesis
	var awsCfg *aws.Config
	if cfg.StorageType == config.StorageDynamoDB || cfg.KinesisStream != "" {
		loaded, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			slog.Error("Failed to load AWS config", "error", err)
			os.Exit(1)
		}
		awsCfg = &loaded
	}

	// Initialize storage based on configuration
	var store storage.RecordStore
	switch cfg.StorageType {
	case config.StorageDynamoDB:
		source := storage.NewDynamoDBSnapshotSource(dynamodb.NewFromConfig(*awsCfg), cfg.DynamoTable)
		snapshot, err := source.Load(ctx)
		if err != nil {
			slog.Error("Failed to load fleet snapshot", "table", cfg.DynamoTable, "error", err)
			os.Exit(1)
		}
		memory, err := storage.NewMemoryRecordStore(*snapshot)
		if err != nil {
			slog.Error("Fleet snapshot is invalid", "table", cfg.DynamoTable, "error", err)
			os.Exit(1)
		}
		store = memory
		slog.Info("Using DynamoDB snapshot", "table", cfg.DynamoTable,
			"trucks", len(snapshot.Trucks), "drivers", len(snapshot.Drivers))
	default:
		store = storage.NewSeededMemoryRecordStore()
		slog.Info("Using in-memory seed data")
	}

	theme, err := chart.ParseTheme(cfg.DefaultTheme)
	if err != nil {
		slog.Warn("Invalid default theme, using light", "provided", cfg.DefaultTheme, "error", err)
		theme = chart.ThemeLight
	}
	notifier := chart.NewThemeNotifier(theme)

	projector := mapview.NewProjector(cfg.MapTileURL)
	if !cfg.MapEnabled() {
		slog.Warn("Map provider disabled, map projections will be skipped")
	}

	// Initialize services
	dashboard := service.NewDashboardService(store, projector, notifier, cfg.StrictLookup())
	widgets := service.NewWidgetService(dashboard, notifier)

	// Initialize Kinesis streamer if stream name is provided
	if cfg.KinesisStream != "" {
		dashboard.SetKinesisStreamer(kinesis.NewStreamer(kinesisService.NewFromConfig(*awsCfg), cfg.KinesisStream))
		slog.Info("Kinesis dashboard event streaming enabled", "stream", cfg.KinesisStream)
	}

	// Initialize HTTP handlers
	httpHandler := handlers.NewHTTPHandler(dashboard, widgets, cfg.CORSOrigin)

	// Setup routes
	router := mux.NewRouter()

	// Use path prefix if running behind load balancer
	if cfg.PathPrefix != "" {
		httpHandler.RegisterRoutes(router.PathPrefix(cfg.PathPrefix).Subrouter())
	} else {
		httpHandler.RegisterRoutes(router)
	}

	// Add CORS middleware for frontend
	router.Use(corsMiddleware(cfg.CORSOrigin))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Setup graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		slog.Info("Dashboard Service starting", "port", cfg.Port, "lookup_policy", cfg.LookupPolicy, "theme", theme)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Dashboard Service failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	<-c
	slog.Info("Dashboard Service shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// corsMiddleware adds CORS headers for frontend access
func corsMiddleware(allowedOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
