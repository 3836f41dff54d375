// Package token はTokenRepositoryのRedis実装を提供します。
package token

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chirusapo_backend/internal/feature/account/domain/entity"
	"chirusapo_backend/internal/feature/account/usecase"
)

// TokenRedis implements usecase.TokenRepository using Redis.
type TokenRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure TokenRedis implements TokenRepository.
var _ usecase.TokenRepository = (*TokenRedis)(nil)

// NewTokenRedis creates a new TokenRedis instance.
func NewTokenRedis(client *redis.Client, prefix string) *TokenRedis {
	if prefix == "" {
		prefix = "token"
	}
	return &TokenRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for a token.
func (r *TokenRedis) tokenKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Create persists a new token to Redis with a TTL matching its expiry.
func (r *TokenRedis) Create(ctx context.Context, token *entity.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token already expired")
	}

	return r.client.Set(ctx, r.tokenKey(token.ID), data, ttl).Err()
}

// FindByID retrieves a token by its value.
func (r *TokenRedis) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	data, err := r.client.Get(ctx, r.tokenKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}

	var token entity.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// DeleteByID removes a token from Redis.
// Deleting a token that does not exist is not an error.
func (r *TokenRedis) DeleteByID(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.tokenKey(id)).Err()
}
