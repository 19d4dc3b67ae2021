// Package cache invalidates cached views of the dashboard.
//
// Each path has a version counter in Redis. Revalidating a path bumps the
// counter and announces the path on a pub/sub channel, so renderers holding
// a cached copy of that path know to rebuild it.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Channel carries the paths that were revalidated.
	Channel = "revalidate"

	keyPrefix = "revalidate:"
)

// InvoicesPath is the listing view every invoice mutation invalidates.
const InvoicesPath = "/dashboard/invoices"

type redisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisRevalidator tracks path versions in Redis.
type RedisRevalidator struct {
	client redisClient
}

func NewRedisRevalidator(client *redis.Client) *RedisRevalidator {
	return &RedisRevalidator{client: client}
}

func versionKey(path string) string {
	return keyPrefix + path
}

// RevalidatePath marks the cached view of path stale.
func (r *RedisRevalidator) RevalidatePath(ctx context.Context, path string) error {
	if err := r.client.Incr(ctx, versionKey(path)).Err(); err != nil {
		return fmt.Errorf("revalidate %s: %w", path, err)
	}
	if err := r.client.Publish(ctx, Channel, path).Err(); err != nil {
		return fmt.Errorf("publish revalidation of %s: %w", path, err)
	}
	return nil
}
