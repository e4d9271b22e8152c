// Package redis provides a Redis-backed username registry oracle.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/regkit/usernamer/model"
)

const defaultKey = "usernames"

var _ model.Oracle = (*Registry)(nil)

// Registry keeps taken usernames in a Redis set.
type Registry struct {
	client *redis.Client
	key    string
}

// NewRegistry creates a registry over an existing client. The set key
// defaults to "usernames" when key is empty.
func NewRegistry(client *redis.Client, key string) *Registry {
	if key == "" {
		key = defaultKey
	}
	return &Registry{
		client: client,
		key:    key,
	}
}

// CheckUsername returns model.ErrUsernameInUse when the name is taken.
func (r *Registry) CheckUsername(ctx context.Context, username string) error {
	taken, err := r.client.SIsMember(ctx, r.key, username).Result()
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if taken {
		return model.ErrUsernameInUse
	}
	return nil
}

// Reserve atomically claims a username; SADD reports whether the member was
// new, so a lost race surfaces as model.ErrUsernameInUse.
func (r *Registry) Reserve(ctx context.Context, username string) error {
	added, err := r.client.SAdd(ctx, r.key, username).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve username: %w", err)
	}

	if added == 0 {
		return model.ErrUsernameInUse
	}
	return nil
}
