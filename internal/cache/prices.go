// Package cache keeps the latest market price per symbol in Redis so the
// valuation engine can read a snapshot without touching PostgreSQL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
)

const (
	latestKey  = "prices:latest"
	updatedKey = "prices:updated"
)

// ErrCacheMiss is returned when a symbol has no cached price
var ErrCacheMiss = errors.New("price not cached")

// PriceCache stores market prices in two Redis hashes keyed by symbol
type PriceCache struct {
	client *redis.Client
}

// Dial connects to Redis and verifies the connection
func Dial(ctx context.Context, addr, password string, db int) (*PriceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &PriceCache{client: client}, nil
}

// Close closes the Redis client
func (c *PriceCache) Close() error {
	return c.client.Close()
}

// SetMany stores several prices atomically
func (c *PriceCache) SetMany(ctx context.Context, prices []*models.MarketPrice) error {
	if len(prices) == 0 {
		return nil
	}

	latest := make(map[string]any, len(prices))
	updated := make(map[string]any, len(prices))
	for _, p := range prices {
		ts := p.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		symbol := models.NormalizeSymbol(p.Symbol)
		latest[symbol] = p.Price.String()
		updated[symbol] = ts.UTC().Format(time.RFC3339Nano)
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, latestKey, latest)
		pipe.HSet(ctx, updatedKey, updated)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache prices: %w", err)
	}
	return nil
}

// Get returns the cached price for symbol
func (c *PriceCache) Get(ctx context.Context, symbol string) (*models.MarketPrice, error) {
	symbol = models.NormalizeSymbol(symbol)

	var priceCmd, updatedCmd *redis.StringCmd
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		priceCmd = pipe.HGet(ctx, latestKey, symbol)
		updatedCmd = pipe.HGet(ctx, updatedKey, symbol)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read cached price: %w", err)
	}

	raw, err := priceCmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", symbol, ErrCacheMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached price: %w", err)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid cached price for %s: %w", symbol, err)
	}

	p := &models.MarketPrice{Symbol: symbol, Price: price}
	if ts, err := time.Parse(time.RFC3339Nano, updatedCmd.Val()); err == nil {
		p.Timestamp = ts
	}
	return p, nil
}

// Snapshot returns every cached price
func (c *PriceCache) Snapshot(ctx context.Context) (models.PriceSnapshot, error) {
	values, err := c.client.HGetAll(ctx, latestKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read price snapshot: %w", err)
	}

	snapshot := make(models.PriceSnapshot, len(values))
	for symbol, raw := range values {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid cached price for %s: %w", symbol, err)
		}
		snapshot[symbol] = price
	}
	return snapshot, nil
}
