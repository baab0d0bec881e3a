package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"userhub/internal/model"
)

// UserCache keeps sanitized user records keyed by email so the auth gate does
// not hit MySQL on every protected request. PasswordHash is excluded from the
// JSON encoding, so a digest never reaches Redis.
type UserCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewUserCache(client *redisv9.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UserCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *UserCache) Get(ctx context.Context, email string) (*model.User, bool, error) {
	raw, err := c.client.Get(ctx, c.key(email)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get user failed: %w", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached user failed: %w", err)
	}
	return &user, true, nil
}

func (c *UserCache) Set(ctx context.Context, user *model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(user.Email), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set user failed: %w", err)
	}
	return nil
}

func (c *UserCache) key(email string) string {
	return "auth:user:" + email
}
