package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultPort            = "8080"
	defaultAppEnv          = "production"
	defaultStoresPath      = "data/stores.yaml"
	defaultStoresRefresh   = 5 * time.Minute
	defaultRateID          = "custom_shipping"
	defaultRateLabel       = "Home Delivery Charges"
	defaultThresholdMeters = 5000
	defaultIncludedKm      = 5
	defaultMaxExtraKm      = 5
	defaultRatePerKm       = "15"
	defaultQuoteCacheTTL   = 10 * time.Minute
	defaultKafkaTopic      = "shipping.quotes"
)

// PricingConfig holds the tiered pricing parameters.
type PricingConfig struct {
	ThresholdMeters float64
	IncludedKm      int64
	MaxExtraKm      int64
	RatePerKm       decimal.Decimal
}

// Config holds runtime configuration for the rate service.
// Postgres, Redis and Kafka are optional; empty values disable them.
type Config struct {
	Port          string
	AppEnv        string
	StoresPath    string
	StoresURL     string
	StoresRefresh time.Duration
	RateID        string
	RateLabel     string
	Pricing       PricingConfig
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	QuoteCacheTTL time.Duration
	KafkaBrokers  []string
	KafkaTopic    string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from environment variables and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", defaultPort),
		AppEnv:        Get("APP_ENV", defaultAppEnv),
		StoresPath:    Get("STORES_PATH", defaultStoresPath),
		StoresURL:     Get("STORES_URL", ""),
		StoresRefresh: defaultStoresRefresh,
		RateID:        Get("RATE_ID", defaultRateID),
		RateLabel:     Get("RATE_LABEL", defaultRateLabel),
		Pricing: PricingConfig{
			ThresholdMeters: defaultThresholdMeters,
			IncludedKm:      defaultIncludedKm,
			MaxExtraKm:      defaultMaxExtraKm,
		},
		DatabaseURL:   Get("DATABASE_URL", ""),
		RedisAddr:     Get("REDIS_ADDR", ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		QuoteCacheTTL: defaultQuoteCacheTTL,
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    Get("KAFKA_TOPIC", defaultKafkaTopic),
	}

	rate, err := decimal.NewFromString(Get("PRICING_RATE_PER_KM", defaultRatePerKm))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICING_RATE_PER_KM: %w", err)
	}
	cfg.Pricing.RatePerKm = rate

	if v := os.Getenv("PRICING_THRESHOLD_METERS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse PRICING_THRESHOLD_METERS: %w", err)
		}
		cfg.Pricing.ThresholdMeters = f
	}

	if v, err := readIntEnv("PRICING_INCLUDED_KM"); err != nil {
		return Config{}, fmt.Errorf("parse PRICING_INCLUDED_KM: %w", err)
	} else if v != nil {
		cfg.Pricing.IncludedKm = int64(*v)
	}

	if v, err := readIntEnv("PRICING_MAX_EXTRA_KM"); err != nil {
		return Config{}, fmt.Errorf("parse PRICING_MAX_EXTRA_KM: %w", err)
	} else if v != nil {
		cfg.Pricing.MaxExtraKm = int64(*v)
	}

	if v, err := readIntEnv("REDIS_DB"); err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	} else if v != nil {
		cfg.RedisDB = *v
	}

	if v, err := readIntEnv("STORES_REFRESH_SECONDS"); err != nil {
		return Config{}, fmt.Errorf("parse STORES_REFRESH_SECONDS: %w", err)
	} else if v != nil {
		if *v <= 0 {
			return Config{}, fmt.Errorf("STORES_REFRESH_SECONDS must be positive, got %d", *v)
		}
		cfg.StoresRefresh = time.Duration(*v) * time.Second
	}

	if v, err := readIntEnv("QUOTE_CACHE_TTL_SECONDS"); err != nil {
		return Config{}, fmt.Errorf("parse QUOTE_CACHE_TTL_SECONDS: %w", err)
	} else if v != nil {
		if *v <= 0 {
			return Config{}, fmt.Errorf("QUOTE_CACHE_TTL_SECONDS must be positive, got %d", *v)
		}
		cfg.QuoteCacheTTL = time.Duration(*v) * time.Second
	}

	return cfg, nil
}

func readIntEnv(key string) (*int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
