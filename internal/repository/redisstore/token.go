package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
)

const (
	resetKeyPrefix   = "reset:"
	revokedKeyPrefix = "revoked:"
)

// TokenStore is the redis-backed token repository, used when multiple
// instances share reset tokens and session revocations. TTLs are
// enforced by redis itself.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(url string) (*TokenStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &TokenStore{client: client}, nil
}

func (t *TokenStore) StoreResetToken(ctx context.Context, token *model.ResetToken, ttl time.Duration) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode reset token: %w", err)
	}
	return t.client.Set(ctx, resetKeyPrefix+token.Token, data, ttl).Err()
}

func (t *TokenStore) GetResetToken(ctx context.Context, token string) (*model.ResetToken, error) {
	data, err := t.client.Get(ctx, resetKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	var rt model.ResetToken
	if err := json.Unmarshal(data, &rt); err != nil {
		return nil, fmt.Errorf("failed to decode reset token: %w", err)
	}
	return &rt, nil
}

func (t *TokenStore) DeleteResetToken(ctx context.Context, token string) error {
	return t.client.Del(ctx, resetKeyPrefix+token).Err()
}

func (t *TokenStore) RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return t.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (t *TokenStore) IsSessionRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := t.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying connection pool.
func (t *TokenStore) Close() error {
	return t.client.Close()
}
