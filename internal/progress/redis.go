package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const statusTTL = 24 * time.Hour

// RedisSink writes the current stage of a search run under a
// per-search key, for an external status poller. Keys expire so
// abandoned runs do not accumulate.
type RedisSink struct {
	client *redis.Client
}

// NewRedisSink parses redisURL and verifies connectivity.
func NewRedisSink(ctx context.Context, redisURL string) (*RedisSink, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisSink{client: client}, nil
}

func (s *RedisSink) Publish(ctx context.Context, searchID string, update Update) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}

	key := statusKey(searchID)
	if err := s.client.Set(ctx, key, payload, statusTTL).Err(); err != nil {
		return fmt.Errorf("SET %s: %w", key, err)
	}
	return nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

func statusKey(searchID string) string {
	return "jobscout:search:" + searchID + ":status"
}
