package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/savelyev/oddsfeed/internal/pkg/config"
	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// latestSnapshotKey is the fixed cache key: consumers always read the most
// recent snapshot, never historical ones.
const latestSnapshotKey = "oddsfeed:snapshot:latest"

const defaultSnapshotTTL = time.Hour

// RedisClient caches the latest feed snapshot for fast consumer reads.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg *config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &RedisClient{client: client, ttl: ttl}, nil
}

// CacheSnapshot stores the snapshot as JSON under the fixed key with the
// configured TTL.
func (r *RedisClient) CacheSnapshot(ctx context.Context, snapshot *models.FeedSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return r.client.Set(ctx, latestSnapshotKey, data, r.ttl).Err()
}

// GetLatestSnapshot returns the cached snapshot, or nil when the key is
// missing or expired.
func (r *RedisClient) GetLatestSnapshot(ctx context.Context) (*models.FeedSnapshot, error) {
	data, err := r.client.Get(ctx, latestSnapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot from redis: %w", err)
	}

	var snapshot models.FeedSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached snapshot: %w", err)
	}
	return &snapshot, nil
}

// Close closes connection to Redis.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
