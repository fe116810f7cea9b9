package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const revocationPrefix = "auth:revoked:"

// RevocationStore keeps revoked token IDs in Redis until their natural
// expiry. Implements the auth middleware's RevocationChecker.
type RevocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore creates a Redis-backed revocation store
func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

// Revoke marks a token ID revoked for ttl
func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revocationPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been revoked. Redis being down
// fails open: tokens still expire on their own.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) bool {
	n, err := s.rdb.Exists(ctx, revocationPrefix+jti).Result()
	if err != nil {
		log.Warn().Err(err).Msg("revocation check failed")
		return false
	}
	return n > 0
}
