package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewClient connects to Redis. It returns nil, not an error, when the server
// is unreachable so callers can fall back to in-process state.
func NewClient(ctx context.Context, addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Str("component", "redis").Err(err).Str("addr", addr).
			Msg("could not connect to Redis, falling back to in-memory input gate")
		client.Close()
		return nil
	}

	log.Info().Str("component", "redis").Str("addr", addr).Msg("connected")
	return client
}

const gateKeyPrefix = "connect4:gate:"

// Gate is an input gate shared by every server process that talks to the
// same Redis. The key expires on its own, so a crashed holder never wedges
// the game.
type Gate struct {
	client *redis.Client
	pause  time.Duration
}

func NewGate(client *redis.Client, pause time.Duration) *Gate {
	return &Gate{client: client, pause: pause}
}

func (g *Gate) Acquire(ctx context.Context, key string) (bool, error) {
	if g.pause <= 0 {
		return true, nil
	}
	return g.client.SetNX(ctx, gateKeyPrefix+key, 1, g.pause).Result()
}
