package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"akashic/cmd"
	"akashic/config"
	"akashic/database"
	"akashic/domain/interfaces"
	"akashic/domain/services"
	"akashic/infrastructure"
	"akashic/repository"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error:", err)
		}
		return
	}

	// Check for ledger reconciliation subcommand
	if len(os.Args) > 1 && os.Args[1] == "reconcile" {
		if err := handleReconcile(); err != nil {
			log.Fatal("Reconcile error:", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error:", err)
	}
}

// handleReconcile compares a user's maintained balance against the signed sum
// of their ledger entries. Admin tool for drift detection.
func handleReconcile() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: akashic reconcile <user-id>")
	}
	userID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", os.Args[2], err)
	}

	ctx := context.Background()
	cfg := config.Get()
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(infrastructure.NewNoopEventPublisher())
	})
	ledger := services.NewLedgerService(uowFactory)

	balance, sum, err := ledger.Reconcile(ctx, userID)
	if err != nil {
		return err
	}

	if balance != sum {
		return fmt.Errorf("drift detected for user %d: balance=%d sum=%d", userID, balance, sum)
	}
	log.Printf("User %d reconciled: balance=%d matches transaction sum", userID, balance)
	return nil
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: akashic migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}
