package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "token_blacklist:"

// TokenBlacklist records revoked token ids until they would have expired anyway.
type TokenBlacklist interface {
	// Add reports false when the id was already blacklisted.
	Add(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
	Contains(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) TokenBlacklist {
	return &redisTokenBlacklist{client: client}
}

func (b *redisTokenBlacklist) Add(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl < time.Second {
		ttl = time.Second
	}
	return b.client.SetNX(ctx, blacklistPrefix+tokenID, "revoked", ttl).Result()
}

func (b *redisTokenBlacklist) Contains(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
