package main

import (
	"time"

	"go.uber.org/zap"

	"notes-service/internal/router"
	"notes-service/internal/store"
	"notes-service/pkg/config"
	"notes-service/pkg/database"
	"notes-service/pkg/jwtutil"
	"notes-service/pkg/logger"
)

func main() {
	// Load configuration from .env file and environment variables. A missing
	// JWT signing key is fatal here, before anything starts serving.
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting notes service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.Init(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Periodically sweep expired session records. Sessions only matter for
	// revocation bookkeeping, so a coarse interval is fine.
	go func() {
		ticker := time.NewTicker(cfg.Session.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			n, err := store.DeleteExpiredSessions(time.Now())
			if err != nil {
				log.Error("Session cleanup failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("Expired sessions removed", zap.Int64("count", n))
			}
		}
	}()

	e := router.New(log)

	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
