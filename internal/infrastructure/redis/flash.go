package redisinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ec5/ec5-api/internal/config"
	"github.com/ec5/ec5-api/internal/pkg/id"
	"github.com/redis/go-redis/v9"
)

const flashKeyPrefix = "ec5:flash:" // ec5:flash:{flash_id} -> JSON error bag

// NewClient creates a redis client from configuration.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// FlashStore keeps redirect-scoped error bags that are read exactly once.
type FlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFlashStore(client *redis.Client, ttl time.Duration) *FlashStore {
	return &FlashStore{client: client, ttl: ttl}
}

// Put stores errs and returns the id the next request uses to read them.
func (s *FlashStore) Put(ctx context.Context, errs map[string][]string) (string, error) {
	data, err := json.Marshal(errs)
	if err != nil {
		return "", fmt.Errorf("marshal flash: %w", err)
	}
	flashID := id.New()
	if err := s.client.Set(ctx, flashKeyPrefix+flashID, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store flash: %w", err)
	}
	return flashID, nil
}

// Pull returns and removes the bag stored under flashID. A missing or
// expired bag yields nil without error.
func (s *FlashStore) Pull(ctx context.Context, flashID string) (map[string][]string, error) {
	data, err := s.client.GetDel(ctx, flashKeyPrefix+flashID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read flash: %w", err)
	}
	var errs map[string][]string
	if err := json.Unmarshal(data, &errs); err != nil {
		return nil, fmt.Errorf("unmarshal flash: %w", err)
	}
	return errs, nil
}
