package main

import (
	"log"

	"tastycorner/internal/config"
	"tastycorner/internal/database"
	"tastycorner/internal/migrations"
	"tastycorner/internal/redis"
	"tastycorner/internal/server"
	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLog := logger.New("tastycorner", cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURI, cfg.DBLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Create missing tables; existing data is kept
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	if err := migrations.SeedDefaults(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Initialize session store
	var store session.Store
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient, cfg.SessionTTL)
	default:
		store = session.NewCookieStore(cfg.SecretKey, cfg.SessionTTL)
	}
	appLog.Info("", "startup", "Using "+cfg.SessionBackend+" session store")

	router, err := server.SetupRouter(cfg, db, store, appLog)
	if err != nil {
		log.Fatal("Failed to set up router:", err)
	}

	// Start server
	appLog.Info("", "startup", "Server starting on port "+cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
