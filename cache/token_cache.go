package cache

import (
	"context"
	"encoding/json"
	"time"

	"melodex/logger"
	"melodex/model"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "token:"

// TokenCache mirrors provider bearer tokens in Redis so a restarted process
// reuses a live token instead of burning a credentials grant. Cache trouble
// is never fatal; the provider client just re-authenticates.
type TokenCache struct {
	client   *redis.Client
	provider string
}

// NewTokenCache creates a token cache for the named provider.
func NewTokenCache(client *redis.Client, provider string) *TokenCache {
	return &TokenCache{client: client, provider: provider}
}

// Load fetches the mirrored token. A missing or unreadable record is a miss.
func (c *TokenCache) Load(ctx context.Context) (model.ProviderToken, bool) {
	data, err := c.client.Get(ctx, tokenKeyPrefix+c.provider).Bytes()
	if err == redis.Nil {
		return model.ProviderToken{}, false
	}
	if err != nil {
		logger.Warn("token cache read failed", logger.String("provider", c.provider), logger.ErrorField(err))
		return model.ProviderToken{}, false
	}

	var token model.ProviderToken
	if err := json.Unmarshal(data, &token); err != nil {
		logger.Warn("token cache record corrupt", logger.String("provider", c.provider), logger.ErrorField(err))
		return model.ProviderToken{}, false
	}
	return token, true
}

// Save mirrors the token with a TTL matching its expiry.
func (c *TokenCache) Save(ctx context.Context, token model.ProviderToken) {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(token)
	if err != nil {
		logger.Warn("token cache encode failed", logger.String("provider", c.provider), logger.ErrorField(err))
		return
	}
	if err := c.client.Set(ctx, tokenKeyPrefix+c.provider, data, ttl).Err(); err != nil {
		logger.Warn("token cache write failed", logger.String("provider", c.provider), logger.ErrorField(err))
	}
}
