package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"akashic/api"
	"akashic/config"
	"akashic/database"
	"akashic/domain/interfaces"
	"akashic/domain/services"
	"akashic/infrastructure"
	"akashic/infrastructure/observability"
	"akashic/repository"

	"github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	logrus.Info("Starting the Akashic Archive...")

	cfg := config.Get()

	logrus.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logrus.Info("Running database migrations...")
	if err := database.MigrateUp(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("Failed to shut down metrics provider")
		}
	}()

	// Event publishing degrades to a no-op when NATS is not configured
	var eventPublisher interfaces.EventPublisher
	if cfg.NATSServers != "" {
		logrus.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()

		subjectMapper := infrastructure.NewEventSubjectMapper()
		if err := natsClient.EnsureArchiveStream(subjectMapper.GetAllSubjects()); err != nil {
			return fmt.Errorf("failed to ensure event stream: %w", err)
		}
		eventPublisher = infrastructure.NewNATSEventPublisher(natsClient, subjectMapper, metrics)
	} else {
		logrus.Info("NATS not configured, events will not be published")
		eventPublisher = infrastructure.NewNoopEventPublisher()
	}
	eventPublisher = infrastructure.NewMetricsEventPublisher(eventPublisher, metrics)

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(eventPublisher)
	})

	accounts := services.NewAccountService(uowFactory)
	ledger := services.NewLedgerService(uowFactory)
	unlocks := services.NewUnlockService(uowFactory)
	catalog := services.NewCatalogService(uowFactory)
	crafting := services.NewCraftingService(uowFactory)
	contact := services.NewContactService(uowFactory)

	oracleClient := infrastructure.NewOracleClient(infrastructure.OracleClientConfig{
		Endpoint: cfg.OracleEndpoint,
		APIKey:   cfg.OracleAPIKey,
		Model:    cfg.OracleModel,
	})
	oracle := services.NewOracleService(ledger, oracleClient)

	server := api.NewServer(accounts, ledger, unlocks, catalog, crafting, oracle, contact, metrics)

	// Periodic session sweep; expired sessions are also rejected at
	// authentication time, so the cadence is not load-bearing
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := accounts.SweepExpiredSessions(ctx)
				if err != nil {
					logrus.WithError(err).Warn("Session sweep failed")
					continue
				}
				if deleted > 0 {
					logrus.WithField("deleted", deleted).Info("Swept expired sessions")
				}
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.ListenAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	logrus.Info("Shutdown completed")
	return nil
}
