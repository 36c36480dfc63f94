package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/database"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/finance"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.SetupLogging(cfg.Log.Level)

	// Open database connection
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	schemaVersion, err := database.Migrate(context.Background(), db)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.WithFields(logrus.Fields{
		"path":           cfg.Database.Path,
		"schema_version": schemaVersion,
	}).Info("connected to database")

	// Create storage
	kv, err := repository.NewCachedKV(repository.NewKVRepository(db), cfg.Cache.MaxItems)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}
	defer kv.Close()

	keys, err := service.LoadSessionKeys(cfg.Session.Key)
	if err != nil {
		log.Fatalf("Failed to load session key: %v", err)
	}
	if cfg.Session.Key == "" {
		log.Warn("SESSION_KEY not set; sessions will not survive a restart")
	}

	// Create services
	registry := service.NewStoreRegistry(kv, cfg.Store.UpdateMissing)
	authenticator := service.NewMockAuthenticator(service.NewEmailRoles(cfg.Session.AdminEmails))
	sessionService := service.NewSessionService(
		kv,
		authenticator,
		registry,
		keys,
		cfg.Session.TTL,
		cfg.Store.Retention,
		log,
	)

	sweeper, err := service.NewSessionSweeper(kv, registry, cfg.Session.TTL, cfg.Session.SweepSchedule, log)
	if err != nil {
		log.Fatalf("Failed to schedule session sweep: %v", err)
	}
	sweeper.Start()

	// Create router
	router := api.NewRouter(api.Services{
		System:       service.NewSystemService(db),
		Sessions:     sessionService,
		Transactions: service.NewTransactionService(registry),
		Alerts:       service.NewAlertService(),
		Admin:        service.NewAdminService(kv),
		Calculator:   finance.LoanCalculator{ZeroRate: finance.ZeroRateMode(cfg.Loan.ZeroRate)},
	}, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"addr":      cfg.Server.Addr,
			"version":   version.Version,
			"retention": cfg.Store.Retention,
		}).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sweeper.Stop(ctx)

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}
