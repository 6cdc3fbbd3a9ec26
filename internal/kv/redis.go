// Package kv holds the Redis-backed token denylist. Revoked tokens live under a
// short prefix with a TTL matching the token's remaining lifetime, so the set
// cleans itself up.
package kv

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:"

type RevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Dial connects to Redis and verifies the connection.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}
	return client, nil
}

func (s *RevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return errors.Wrap(s.client.Set(ctx, revokedPrefix+token, "1", ttl).Err(), "revoke token")
}

func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+token).Result()
	if err != nil {
		return false, errors.Wrap(err, "check revoked token")
	}
	return n > 0, nil
}
