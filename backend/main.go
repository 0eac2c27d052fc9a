package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/routes"
	"learnhub/backend/scheduler"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal("Error initializing database", "error", err)
	}

	svc := services.New(db, cfg, logger)
	if err := svc.Bootstrap(context.Background()); err != nil {
		logger.Fatal("Error seeding database", "error", err)
	}

	sched := scheduler.New(cfg, svc.Progress, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal("Error starting scheduler", "error", err)
	}

	app := routes.NewApp(cfg, logger)
	routes.SetupRoutes(app, db, cfg, logger, svc)

	go func() {
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Fatal("Server stopped", "error", err)
		}
	}()
	logger.Info("server listening", "port", cfg.ServerPort, "env", cfg.Env, "streak_mode", cfg.StreakMode)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	sched.Stop()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := utils.CloseDB(db); err != nil {
		logger.Error("database close failed", "error", err)
	}
}
