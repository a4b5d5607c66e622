package main

import (
	"context"
	"database/sql"
	"delivery-rate-service/internal/adapters/cache"
	"delivery-rate-service/internal/adapters/catalog"
	"delivery-rate-service/internal/adapters/distance"
	"delivery-rate-service/internal/adapters/events"
	"delivery-rate-service/internal/adapters/repositories"
	"delivery-rate-service/internal/api"
	"delivery-rate-service/internal/config"
	"delivery-rate-service/internal/platform/db"
	"delivery-rate-service/internal/platform/logger"
	"delivery-rate-service/internal/ports"
	"delivery-rate-service/internal/services"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires the store catalog, the rate engine and the optional cache,
// quote log and event publisher behind ports, then serves HTTP.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		stdlog.Fatal(err)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found (using environment variables)")
	}

	storeCatalog, err := openCatalog(cfg, log)
	if err != nil {
		log.Fatal("store catalog", zap.Error(err))
	}

	engine, err := services.NewRateEngine(distance.NewHaversineCalculator(), services.TieredPricing{
		ThresholdMeters: cfg.Pricing.ThresholdMeters,
		IncludedKm:      cfg.Pricing.IncludedKm,
		MaxExtraKm:      cfg.Pricing.MaxExtraKm,
		RatePerKm:       cfg.Pricing.RatePerKm,
	})
	if err != nil {
		log.Fatal("rate engine", zap.Error(err))
	}

	opts := []services.QuoteServiceOption{services.WithRateLine(cfg.RateID, cfg.RateLabel)}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unavailable, quotes will not be cached until it recovers",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()

		opts = append(opts, services.WithQuoteCache(cache.NewRedisQuoteCache(rdb, cfg.QuoteCacheTTL)))
		log.Info("quote cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.QuoteCacheTTL))
	}

	var quoteLog ports.QuoteLog
	if cfg.DatabaseURL != "" {
		sqlDB, err := openQuoteDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("quote log", zap.Error(err))
		}
		defer sqlDB.Close()

		ql := repositories.NewSQLQuoteLog(sqlDB)
		quoteLog = ql
		opts = append(opts, services.WithRecorders(ql))
		log.Info("quote log enabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := events.NewKafkaQuotePublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatal("quote publisher", zap.Error(err))
		}
		defer func() {
			if err := pub.Close(); err != nil {
				log.Warn("close quote publisher", zap.Error(err))
			}
		}()

		opts = append(opts, services.WithRecorders(pub))
		log.Info("quote events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	svc, err := services.NewQuoteService(engine, storeCatalog, log, opts...)
	if err != nil {
		log.Fatal("quote service", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(svc, quoteLog, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server forced shutdown", zap.Error(err))
	}
}

// openCatalog prefers a remote catalog when STORES_URL is set and falls back
// to the local file.
func openCatalog(cfg config.Config, log *zap.Logger) (ports.StoreCatalog, error) {
	if cfg.StoresURL != "" {
		c, err := catalog.NewHTTPCatalog(cfg.StoresURL, cfg.StoresRefresh, log)
		if err != nil {
			return nil, err
		}
		log.Info("store catalog from url", zap.String("url", cfg.StoresURL), zap.Duration("refresh", cfg.StoresRefresh))
		return c, nil
	}

	c, err := catalog.LoadFile(cfg.StoresPath)
	if err != nil {
		return nil, err
	}
	log.Info("store catalog from file", zap.String("path", cfg.StoresPath))
	return c, nil
}

func openQuoteDB(databaseURL string) (*sql.DB, error) {
	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open quote db: %w", err)
	}
	return sqlDB, nil
}
