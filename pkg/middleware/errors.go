package middleware

import (
	"fmt"
	"time"
)

// The middleware error set is closed: every chain failure is one of
// BlockedError, RateLimitedError, PermissionDeniedError or
// InternalError. The dispatcher maps each to a specific outcome.

// BlockedError halts the chain with a reply that is returned to the
// user verbatim. Blocking is a business outcome, not a failure.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return "blocked: " + e.Reason
}

// RateLimitedError halts the chain because the actor exceeded its
// request budget.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// PermissionDeniedError halts the chain because the actor is not
// allowed to perform the request.
type PermissionDeniedError struct {
	Reason string
}

func (e *PermissionDeniedError) Error() string {
	return "permission denied: " + e.Reason
}

// InternalError reports a defect inside a middleware. Unlike the other
// variants it propagates as a hard error to the caller.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Reason
}
