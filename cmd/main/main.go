package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trading-dashboard/src/broadcast"
	"trading-dashboard/src/config"
	"trading-dashboard/src/generator"
	"trading-dashboard/src/interfaces"
	"trading-dashboard/src/logger"
	"trading-dashboard/src/server"
	"trading-dashboard/src/state"
	"trading-dashboard/src/utils"
)

// -----------------------------------------------------------------------------

const shutdownTimeout = 5 * time.Second

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "", "path to config file (optional, defaults apply)")
	flag.Parse()

	// Load config from YAML file + env overrides
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)
	appLogger.Info("Starting %s (ws port %d, http port %d)", cfg.Name, cfg.WSPort, cfg.HTTPPort)

	// 2. Setup Components
	store := state.NewStore()
	scheduler := utils.NewMarketScheduler(cfg.Market.Symbol, appLogger)
	gen := generator.NewGenerator()

	var srv interfaces.IDataExchanger = server.NewDashboardServer(cfg.MConfig, appLogger, store, scheduler)

	loop := broadcast.NewLoop(
		gen,
		store,
		srv,
		appLogger,
		time.Duration(cfg.Broadcast.UpdateIntervalSeconds)*time.Second,
		time.Duration(cfg.Broadcast.InitialDelaySeconds)*time.Second,
	)

	// 3. Start Server
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// 4. Start Broadcast Loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	// 5. Wait for Shutdown Signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			// Startup failures (e.g. port already bound) abort with non-zero exit
			appLogger.Critical("Server failed: %v", err)
		}
	case <-quit:
		appLogger.Info("Shutting down...")
	}

	// Stop new ticks first, then close listeners and client channels
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		appLogger.Error("Shutdown error: %v", err)
	}

	appLogger.Info("Server stopped")
}
