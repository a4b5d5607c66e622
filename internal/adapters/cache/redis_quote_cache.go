package cache

import (
	"context"
	"delivery-rate-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "quote:"

// RedisQuoteCache stores computed selections in Redis as JSON with a TTL.
// Keys must already identify the catalog and destination; see services.CacheKey.
type RedisQuoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisQuoteCache(rdb *redis.Client, ttl time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{rdb: rdb, ttl: ttl}
}

type cachedSelection struct {
	StoreName      string              `json:"store_name"`
	StoreLat       float64             `json:"store_lat"`
	StoreLon       float64             `json:"store_lon"`
	DistanceMeters float64             `json:"distance_meters"`
	Cost           decimal.NullDecimal `json:"cost"`
}

// Fetch a cached selection. A miss returns ok=false and no error.
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (domain.Selection, bool, error) {
	if c.rdb == nil {
		return domain.Selection{}, false, errors.New("quote cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return domain.Selection{}, false, errors.New("get quote cache: key must not be empty")
	}

	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Selection{}, false, nil
	}
	if err != nil {
		return domain.Selection{}, false, fmt.Errorf("get quote cache: %w", err)
	}

	var v cachedSelection
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.Selection{}, false, fmt.Errorf("get quote cache: decode %q: %w", key, err)
	}

	quote := domain.Suppressed()
	if v.Cost.Valid {
		quote, err = domain.Cost(v.Cost.Decimal)
		if err != nil {
			return domain.Selection{}, false, fmt.Errorf("get quote cache: %w", err)
		}
	}

	return domain.Selection{
		Store: domain.StoreLocation{
			Name:     v.StoreName,
			Location: domain.GeoPoint{Latitude: v.StoreLat, Longitude: v.StoreLon},
			Enabled:  true,
		},
		DistanceMeters: v.DistanceMeters,
		Quote:          quote,
	}, true, nil
}

// Store a selection under key with the configured TTL.
func (c *RedisQuoteCache) Put(ctx context.Context, key string, sel domain.Selection) error {
	if c.rdb == nil {
		return errors.New("quote cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert quote cache: key must not be empty")
	}

	v := cachedSelection{
		StoreName:      sel.Store.Name,
		StoreLat:       sel.Store.Location.Latitude,
		StoreLon:       sel.Store.Location.Longitude,
		DistanceMeters: sel.DistanceMeters,
	}
	if amount, ok := sel.Quote.Amount(); ok {
		v.Cost = decimal.NullDecimal{Decimal: amount, Valid: true}
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("insert quote cache: encode: %w", err)
	}

	if err := c.rdb.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert quote cache key=%q: %w", key, err)
	}
	return nil
}
