package flash

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "flash:"

	// CookieName carries the flash token between the mutating request and
	// the next listing render.
	CookieName = "flash_token"

	// TTL bounds how long an unread notice survives.
	TTL = 10 * time.Minute
)

// Store keeps one-shot notices. A notice is visible exactly once: Pop
// deletes it as it reads.
type Store struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewStore(rdb *redis.Client, logger ...*zap.Logger) *Store {
	l := zap.L().Named("flash")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("flash")
	}
	return &Store{rdb: rdb, logger: l}
}

// Set records the notice for the token. Without a redis client it is a no-op;
// the message still reaches the caller in the mutation response body.
func (s *Store) Set(ctx context.Context, token, message string) {
	if s.rdb == nil || token == "" {
		return
	}
	if err := s.rdb.Set(ctx, keyPrefix+token, message, TTL).Err(); err != nil {
		s.logger.Warn("set flash failed", zap.Error(err))
	}
}

// Pop returns the pending notice for the token and removes it.
func (s *Store) Pop(ctx context.Context, token string) string {
	if s.rdb == nil || token == "" {
		return ""
	}
	msg, err := s.rdb.GetDel(ctx, keyPrefix+token).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("pop flash failed", zap.Error(err))
		}
		return ""
	}
	return msg
}
