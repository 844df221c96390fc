// Package dispatcher orchestrates message handling: parse, run the
// middleware chain, resolve a command or fall back to the default
// conversational handler.
package dispatcher

import (
	"errors"
	"fmt"

	"github.com/tinyland-inc/carikbot/pkg/command"
	"github.com/tinyland-inc/carikbot/pkg/message"
	"github.com/tinyland-inc/carikbot/pkg/middleware"
	"github.com/tinyland-inc/carikbot/pkg/parser"
)

// RateLimitedReply is the fixed reply for rate-limited requests.
const RateLimitedReply = "Rate limited. Please try again later."

// Fallback produces the reply for non-command text when no command
// matched. The default implementation echoes the input; hosts replace
// it with a conversational backend.
type Fallback func(msg message.Message) (string, error)

// EchoFallback is the default text handler.
func EchoFallback(msg message.Message) (string, error) {
	text, _ := message.TextOf(msg.Content)
	return "Echo: " + text, nil
}

// Dispatcher routes messages through the middleware chain to command
// handlers. Middleware order is fixed at construction; an empty chain
// runs the handler directly.
type Dispatcher struct {
	parser     *parser.Parser
	middleware []middleware.Middleware
	registry   *command.Registry
	fallback   Fallback
}

// New creates a dispatcher with the given command prefix and registry.
func New(prefix string, registry *command.Registry) *Dispatcher {
	return &Dispatcher{
		parser:   parser.New(prefix),
		registry: registry,
		fallback: EchoFallback,
	}
}

// Use appends a middleware to the chain. Execution order is the order
// of Use calls.
func (d *Dispatcher) Use(m middleware.Middleware) *Dispatcher {
	d.middleware = append(d.middleware, m)
	return d
}

// SetFallback replaces the default text handler.
func (d *Dispatcher) SetFallback(f Fallback) {
	if f != nil {
		d.fallback = f
	}
}

// Registry returns the command registry, e.g. for late registration.
func (d *Dispatcher) Registry() *command.Registry {
	return d.registry
}

// ProcessText parses raw text and dispatches the resulting message.
func (d *Dispatcher) ProcessText(chatID, text string) (string, error) {
	return d.Process(d.parser.Parse(chatID, text, nil))
}

// ProcessTextFrom is ProcessText with a known sender.
func (d *Dispatcher) ProcessTextFrom(chatID, text string, sender *message.User) (string, error) {
	return d.Process(d.parser.Parse(chatID, text, sender))
}

// ProcessCallback dispatches an inline-button callback event.
func (d *Dispatcher) ProcessCallback(chatID, data string, user message.User) (string, error) {
	return d.Process(d.parser.ParseCallback(chatID, data, user))
}

// Process runs a message through the middleware chain and the handler
// resolution. The returned string is the bot's reply; an empty string
// means the message produced no reply by design.
func (d *Dispatcher) Process(msg message.Message) (string, error) {
	ctx := middleware.NewContext(msg)

	next := middleware.NewNext(d.middleware)
	result, err := next.Run(ctx)
	if err != nil {
		return d.mapChainError(err)
	}

	if err := d.resolve(result); err != nil {
		return "", err
	}

	response, _ := result.Get(middleware.ResponseKey)
	return response, nil
}

// mapChainError converts a middleware outcome into the caller-visible
// result. Business outcomes become reply text; only internal defects
// propagate as errors.
func (d *Dispatcher) mapChainError(err error) (string, error) {
	var blocked *middleware.BlockedError
	if errors.As(err, &blocked) {
		return blocked.Reason, nil
	}

	var rateLimited *middleware.RateLimitedError
	if errors.As(err, &rateLimited) {
		return RateLimitedReply, nil
	}

	var denied *middleware.PermissionDeniedError
	if errors.As(err, &denied) {
		return fmt.Sprintf("Permission denied: %s", denied.Reason), nil
	}

	return "", &BotError{Kind: KindInternal, Err: err}
}

// resolve runs the command handler or the fallback and stores the
// reply in the context. Callback and empty content produce no reply.
func (d *Dispatcher) resolve(ctx *middleware.Context) error {
	switch content := ctx.Message.Content.(type) {
	case message.Command:
		reply, err := d.runCommand(content.Name, ctx.Message)
		if err != nil {
			return &BotError{Kind: KindCommand, Err: err}
		}
		ctx.Set(middleware.ResponseKey, reply)

	case message.Text:
		reply, err := d.fallback(ctx.Message)
		if err != nil {
			return &BotError{Kind: KindInternal, Err: err}
		}
		ctx.Set(middleware.ResponseKey, reply)

	default:
		// CallbackData and Empty are handled out of band.
	}
	return nil
}

func (d *Dispatcher) runCommand(name string, msg message.Message) (string, error) {
	cmd, ok := d.registry.Find(name)
	if !ok {
		return fmt.Sprintf("Unknown command: /%s", name), nil
	}
	if cmd.Handler == nil {
		return fmt.Sprintf("Command %s not implemented", cmd.Name), nil
	}

	reply, err := cmd.Handler(msg)
	if err != nil {
		return "", &command.Error{Name: cmd.Name, Err: err}
	}
	return reply, nil
}
