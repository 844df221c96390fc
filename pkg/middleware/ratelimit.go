package middleware

import (
	"time"

	"github.com/tinyland-inc/carikbot/pkg/ratelimit"
)

// KeyPolicy selects the actor identity used to bucket rate-limit state.
type KeyPolicy string

const (
	// KeyByUser prefers the sender's user ID, falling back to the chat
	// ID when the message has no sender.
	KeyByUser KeyPolicy = "user"
	// KeyByChat always buckets by chat ID.
	KeyByChat KeyPolicy = "chat"
)

// RateLimitMiddleware rejects requests whose actor exceeded the
// sliding-window budget. A rejected request never reaches the rest of
// the chain.
type RateLimitMiddleware struct {
	limiter *ratelimit.Limiter
	policy  KeyPolicy
}

// NewRateLimitMiddleware creates a rate-limit middleware allowing
// maxRequests per actor within window.
func NewRateLimitMiddleware(maxRequests int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: ratelimit.New(maxRequests, window),
		policy:  KeyByUser,
	}
}

// WithKeyPolicy overrides the actor key selection policy.
func (m *RateLimitMiddleware) WithKeyPolicy(p KeyPolicy) *RateLimitMiddleware {
	m.policy = p
	return m
}

// ActorKey resolves the rate-limit bucket for a context.
func (m *RateLimitMiddleware) ActorKey(ctx *Context) string {
	if m.policy == KeyByChat {
		return ctx.ChatID
	}
	if ctx.UserID != "" {
		return ctx.UserID
	}
	return ctx.ChatID
}

func (m *RateLimitMiddleware) Process(ctx *Context, next *Next) (*Context, error) {
	key := m.ActorKey(ctx)

	ok, retryAfter := m.limiter.Allow(key)
	if !ok {
		return nil, &RateLimitedError{RetryAfter: retryAfter}
	}

	return next.Run(ctx)
}
