package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
)

const tokenSweepInterval = 10 * time.Minute

// TokenStore holds reset tokens and revoked session ids in a TTL cache.
// The cache janitor sweeps expired entries, so unredeemed tokens never
// pile up.
type TokenStore struct {
	reset   *gocache.Cache
	revoked *gocache.Cache
}

func NewTokenStore(defaultTTL time.Duration) *TokenStore {
	return &TokenStore{
		reset:   gocache.New(defaultTTL, tokenSweepInterval),
		revoked: gocache.New(defaultTTL, tokenSweepInterval),
	}
}

func (t *TokenStore) StoreResetToken(ctx context.Context, token *model.ResetToken, ttl time.Duration) error {
	t.reset.Set(token.Token, token, ttl)
	return nil
}

func (t *TokenStore) GetResetToken(ctx context.Context, token string) (*model.ResetToken, error) {
	val, ok := t.reset.Get(token)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return val.(*model.ResetToken), nil
}

func (t *TokenStore) DeleteResetToken(ctx context.Context, token string) error {
	t.reset.Delete(token)
	return nil
}

func (t *TokenStore) RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	t.revoked.Set(jti, true, ttl)
	return nil
}

func (t *TokenStore) IsSessionRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok := t.revoked.Get(jti)
	return ok, nil
}
