package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LoginLimiter counts failed logins per email+IP in redis with a sliding
// TTL window. It fails open: with no redis client, or when redis is
// unreachable, logins proceed and only the password check stands between
// an attacker and the account.
type LoginLimiter struct {
	cache    *redis.Client
	attempts int
	window   time.Duration
	log      zerolog.Logger
}

func NewLoginLimiter(cache *redis.Client, attempts int, window time.Duration, log zerolog.Logger) *LoginLimiter {
	return &LoginLimiter{
		cache:    cache,
		attempts: attempts,
		window:   window,
		log:      log,
	}
}

func (l *LoginLimiter) key(email, ip string) string {
	return fmt.Sprintf("login:fail:%s:%s", email, ip)
}

func (l *LoginLimiter) Blocked(ctx context.Context, email, ip string) bool {
	if l == nil || l.cache == nil {
		return false
	}

	count, err := l.cache.Get(ctx, l.key(email, ip)).Int()
	if err != nil {
		if err != redis.Nil {
			l.log.Warn().Err(err).Msg("login limiter read failed")
		}
		return false
	}
	return count >= l.attempts
}

func (l *LoginLimiter) NoteFailure(ctx context.Context, email, ip string) {
	if l == nil || l.cache == nil {
		return
	}

	key := l.key(email, ip)
	count, err := l.cache.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Msg("login limiter incr failed")
		return
	}
	if count == 1 {
		if err := l.cache.Expire(ctx, key, l.window).Err(); err != nil {
			l.log.Warn().Err(err).Msg("login limiter expire failed")
		}
	}
}

func (l *LoginLimiter) Reset(ctx context.Context, email, ip string) {
	if l == nil || l.cache == nil {
		return
	}
	if err := l.cache.Del(ctx, l.key(email, ip)).Err(); err != nil {
		l.log.Warn().Err(err).Msg("login limiter reset failed")
	}
}
