// Package middleware implements the ordered, short-circuiting processor
// chain that every dispatched message passes through.
package middleware

import (
	"github.com/tinyland-inc/carikbot/pkg/message"
)

// ResponseKey is the context data key holding the final reply text.
const ResponseKey = "response"

// Context is the per-dispatch blackboard shared by the chain. It is
// created fresh for every message and never crosses dispatches, so no
// locking is needed.
type Context struct {
	Message message.Message
	ChatID  string
	UserID  string

	data map[string]string
}

// NewContext wraps a message, denormalizing chat and user IDs for fast
// middleware lookups.
func NewContext(msg message.Message) *Context {
	ctx := &Context{
		Message: msg,
		ChatID:  msg.ChatID,
		data:    make(map[string]string),
	}
	if msg.Sender != nil {
		ctx.UserID = msg.Sender.ID
	}
	return ctx
}

// Get returns the value stored under key, if any.
func (c *Context) Get(key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

// Set stores a value under key, replacing any previous value.
func (c *Context) Set(key, value string) {
	c.data[key] = value
}

// Middleware inspects or modifies the context and decides whether the
// rest of the chain runs. Returning without invoking next halts the
// chain with this middleware's result.
type Middleware interface {
	Process(ctx *Context, next *Next) (*Context, error)
}

// Func adapts a plain function to the Middleware interface.
type Func func(ctx *Context, next *Next) (*Context, error)

func (f Func) Process(ctx *Context, next *Next) (*Context, error) {
	return f(ctx, next)
}

// Next is the single-use continuation representing the remaining chain.
// Invoking it a second time is a programming error and yields an
// InternalError instead of re-running middleware.
type Next struct {
	remaining []Middleware
	used      bool
}

// NewNext creates a continuation over the given ordered middleware.
func NewNext(middlewares []Middleware) *Next {
	return &Next{remaining: middlewares}
}

// Run consumes the continuation and executes the remaining middleware
// in registration order. An exhausted chain completes with the context
// unchanged.
func (n *Next) Run(ctx *Context) (*Context, error) {
	if n.used {
		return nil, &InternalError{Reason: "continuation invoked twice"}
	}
	n.used = true

	if len(n.remaining) == 0 {
		return ctx, nil
	}

	head := n.remaining[0]
	return head.Process(ctx, &Next{remaining: n.remaining[1:]})
}

// Chain builds an ordered middleware list.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a middleware; execution order is registration order.
func (c *Chain) Add(m Middleware) *Chain {
	c.middlewares = append(c.middlewares, m)
	return c
}

// Build returns the ordered middleware list.
func (c *Chain) Build() []Middleware {
	return c.middlewares
}
