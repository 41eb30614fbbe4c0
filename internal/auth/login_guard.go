package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// loginGuardStore is the slice of redis commands the guard needs.
// *redis.Client satisfies it; tests substitute an in-memory fake.
type loginGuardStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LoginGuard tracks failed login attempts per identifier in Redis and
// refuses further attempts once the threshold is hit inside the window.
// Redis is a soft dependency: when it is unreachable the guard fails
// open rather than locking everyone out.
type LoginGuard struct {
	store       loginGuardStore
	logger      *zap.Logger
	maxAttempts int
	window      time.Duration
}

// NewLoginGuard builds a guard over a redis client. A nil client
// disables it.
func NewLoginGuard(client *redis.Client, logger *zap.Logger, maxAttempts int, window time.Duration) *LoginGuard {
	guard := newLoginGuard(logger, maxAttempts, window)
	if client != nil {
		guard.store = client
	}
	return guard
}

func newLoginGuard(logger *zap.Logger, maxAttempts int, window time.Duration) *LoginGuard {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginGuard{logger: logger, maxAttempts: maxAttempts, window: window}
}

func (g *LoginGuard) key(identifier string) string {
	return "login_attempts:" + identifier
}

// Allowed reports whether the identifier may attempt a login.
func (g *LoginGuard) Allowed(ctx context.Context, identifier string) bool {
	if g == nil || g.store == nil || identifier == "" {
		return true
	}
	count, err := g.store.Get(ctx, g.key(identifier)).Int()
	if err != nil {
		if err != redis.Nil {
			g.logger.Warn("login guard unavailable", zap.Error(err))
		}
		return true
	}
	return count < g.maxAttempts
}

// RecordFailure increments the failure counter, starting the lockout
// window on the first failure.
func (g *LoginGuard) RecordFailure(ctx context.Context, identifier string) {
	if g == nil || g.store == nil || identifier == "" {
		return
	}
	key := g.key(identifier)
	count, err := g.store.Incr(ctx, key).Result()
	if err != nil {
		g.logger.Warn("login guard unavailable", zap.Error(err))
		return
	}
	if count == 1 {
		if err := g.store.Expire(ctx, key, g.window).Err(); err != nil {
			g.logger.Warn("login guard expire failed", zap.Error(err))
		}
	}
}

// RecordSuccess clears the failure counter after a successful login.
func (g *LoginGuard) RecordSuccess(ctx context.Context, identifier string) {
	if g == nil || g.store == nil || identifier == "" {
		return
	}
	if err := g.store.Del(ctx, g.key(identifier)).Err(); err != nil {
		g.logger.Warn("login guard reset failed", zap.Error(err))
	}
}
