package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/wallet"
)

const connectedFlagPrefix = "unifin:wallet:connected:"

// connectedFlagTTL bounds how long an abandoned client keeps its flag.
const connectedFlagTTL = 30 * 24 * time.Hour

// RedisFlagStore persists the wallet "was connected" flag in Redis.
type RedisFlagStore struct {
	client *redis.Client
}

var _ wallet.FlagStore = (*RedisFlagStore)(nil)

// NewRedisFlagStore wraps client.
func NewRedisFlagStore(client *redis.Client) *RedisFlagStore {
	return &RedisFlagStore{client: client}
}

func flagKey(clientID string) string {
	return connectedFlagPrefix + clientID
}

func (s *RedisFlagStore) IsSet(ctx context.Context, clientID string) (bool, error) {
	err := s.client.Get(ctx, flagKey(clientID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get connected flag: %w", err)
	}
	return true, nil
}

func (s *RedisFlagStore) Set(ctx context.Context, clientID string) error {
	return s.client.Set(ctx, flagKey(clientID), "true", connectedFlagTTL).Err()
}

func (s *RedisFlagStore) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, flagKey(clientID)).Err()
}

// NewFlagStore picks Redis when the client answers a ping and falls back to memory otherwise.
func NewFlagStore(ctx context.Context, client *redis.Client, logger *zap.Logger) wallet.FlagStore {
	if client == nil {
		return wallet.NewMemoryFlagStore()
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable; wallet flags kept in memory", zap.Error(err))
		return wallet.NewMemoryFlagStore()
	}
	return NewRedisFlagStore(client)
}
