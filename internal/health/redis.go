package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPinger adapts the go-redis client to the Pinger interface.
type RedisPinger struct {
	Client *redis.Client
}

func (p *RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
