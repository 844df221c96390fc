package middleware

// AccessMiddleware enforces a whitelist of actor IDs. An empty or
// disabled whitelist allows everyone.
type AccessMiddleware struct {
	enabled bool
	allowed map[string]struct{}
	policy  KeyPolicy
}

// NewAccessMiddleware creates an access-control middleware over the
// given allowed actor IDs.
func NewAccessMiddleware(enabled bool, users []string) *AccessMiddleware {
	allowed := make(map[string]struct{}, len(users))
	for _, u := range users {
		allowed[u] = struct{}{}
	}
	return &AccessMiddleware{
		enabled: enabled,
		allowed: allowed,
		policy:  KeyByUser,
	}
}

// WithKeyPolicy overrides which identity the whitelist is checked
// against. The Telegram surface traditionally checked chat IDs.
func (m *AccessMiddleware) WithKeyPolicy(p KeyPolicy) *AccessMiddleware {
	m.policy = p
	return m
}

func (m *AccessMiddleware) Process(ctx *Context, next *Next) (*Context, error) {
	if !m.enabled {
		return next.Run(ctx)
	}

	key := ctx.UserID
	if m.policy == KeyByChat || key == "" {
		key = ctx.ChatID
	}

	if _, ok := m.allowed[key]; !ok {
		return nil, &PermissionDeniedError{Reason: "user not whitelisted"}
	}

	return next.Run(ctx)
}
