// File: cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"

	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/jobs"
	"studybuddy_backend/internal/platform/database"
	"studybuddy_backend/internal/platform/logger"
	"studybuddy_backend/internal/profile"
)

func main() {
	reportGapsCmd := flag.NewFlagSet("report-gaps", flag.ExitOnError)
	failOnOpen := reportGapsCmd.Bool("fail-on-open", false, "Exit with status 1 when accounts without profile exist")

	if len(os.Args) > 1 && os.Args[1] == "report-gaps" {
		if err := reportGapsCmd.Parse(os.Args[2:]); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		open, err := runGapReport()
		if err != nil {
			log.Fatalf("FATAL: Reconciliation report failed: %v", err)
		}
		fmt.Printf("open profile gaps: %d\n", open)
		if *failOnOpen && open > 0 {
			os.Exit(1)
		}
		return
	}

	startServer()
}

// runGapReport runs the reconciliation report once against the configured database.
func runGapReport() (int64, error) {
	cfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := database.NewGORM(cfg, appLogger)
	if err != nil {
		return 0, err
	}
	defer database.CloseGORMDB(db, appLogger)

	gaps, err := profile.NewGORMGapRepository(db)
	if err != nil {
		return 0, err
	}
	return jobs.NewReconciliationReportJob(gaps, appLogger, cfg).Run(context.Background())
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

