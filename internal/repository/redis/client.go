package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/internal/service/bot"
)

// Connect opens a client and pings it. A failed ping closes the client and
// returns the error so callers can fall back to the in-memory cache.
func Connect(ctx context.Context, addr, password string, logger *zap.SugaredLogger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	logger.Infow("[REDIS] Connected successfully", "addr", addr)
	return client, nil
}

// SearchCache stores engine results in Redis as JSON with a TTL.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ bot.ResultCache = (*SearchCache)(nil)

func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

func (r *SearchCache) Load(ctx context.Context, key string) (bot.Result, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return bot.Result{}, false, nil
	}
	if err != nil {
		return bot.Result{}, false, err
	}

	var result bot.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		// a corrupt entry is a miss; it will be overwritten
		return bot.Result{}, false, nil
	}
	return result, true, nil
}

func (r *SearchCache) Store(ctx context.Context, key string, result bot.Result) error {
	result.Cached = false
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, payload, r.ttl).Err()
}

func (r *SearchCache) Close() error {
	return r.client.Close()
}
