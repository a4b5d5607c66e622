package main

import (
	"context"
	"delivery-rate-service/internal/adapters/repositories"
	"delivery-rate-service/internal/config"
	"delivery-rate-service/internal/platform/db"
	"delivery-rate-service/internal/platform/logger"
	stdlog "log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool creates the quote log schema. It is safe to run repeatedly.
func main() {
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found (using environment variables)")
	}

	log, err := logger.New(config.Get("APP_ENV", "production"))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer func() { _ = log.Sync() }()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatal("schema initialization failed", zap.Error(err))
	}
	log.Info("schema ready")
}
