package dispatcher

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tinyland-inc/carikbot/pkg/command"
	"github.com/tinyland-inc/carikbot/pkg/message"
	"github.com/tinyland-inc/carikbot/pkg/middleware"
)

func newTestDispatcher() *Dispatcher {
	registry := command.NewRegistry()
	command.RegisterDefaults(registry, "carikbot", "0.0.1")
	return New("", registry)
}

func TestProcessText_Command(t *testing.T) {
	d := newTestDispatcher()

	reply, err := d.ProcessText("chat1", "/help")
	if err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if !strings.Contains(reply, "/help") {
		t.Errorf("reply = %q, want help listing", reply)
	}
}

func TestProcessText_CaseInsensitiveCommand(t *testing.T) {
	d := newTestDispatcher()

	reply, err := d.ProcessText("chat1", "/HELP")
	if err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if !strings.Contains(reply, "Available commands") {
		t.Errorf("reply = %q, want help listing", reply)
	}
}

func TestProcessText_CommandArgs(t *testing.T) {
	d := newTestDispatcher()
	d.Registry().Register(command.New("greet").
		WithHandler(func(msg message.Message) (string, error) {
			cmd := msg.Content.(message.Command)
			return "Hello, " + strings.Join(cmd.Args, " "), nil
		}))

	reply, err := d.ProcessText("chat1", "/greet Ada Lovelace")
	if err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if reply != "Hello, Ada Lovelace" {
		t.Errorf("reply = %q, want %q", reply, "Hello, Ada Lovelace")
	}
}

func TestProcessText_UnknownCommand(t *testing.T) {
	d := newTestDispatcher()

	reply, err := d.ProcessText("chat1", "/frobnicate")
	if err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if reply != "Unknown command: /frobnicate" {
		t.Errorf("reply = %q", reply)
	}
}

func TestProcessText_EchoFallback(t *testing.T) {
	d := newTestDispatcher()

	reply, err := d.ProcessText("chat1", "plain words")
	if err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if reply != "Echo: plain words" {
		t.Errorf("reply = %q, want %q", reply, "Echo: plain words")
	}
}

func TestProcessText_CustomFallback(t *testing.T) {
	d := newTestDispatcher()
	d.SetFallback(func(msg message.Message) (string, error) {
		text, _ := message.TextOf(msg.Content)
		return strings.ToUpper(text), nil
	})

	reply, err := d.ProcessText("chat1", "shout")
	if err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if reply != "SHOUT" {
		t.Errorf("reply = %q, want %q", reply, "SHOUT")
	}
}

func TestProcessCallback_NoReply(t *testing.T) {
	d := newTestDispatcher()

	reply, err := d.ProcessCallback("chat1", "btn:confirm", message.NewUser("u42"))
	if err != nil {
		t.Fatalf("ProcessCallback() error: %v", err)
	}
	if reply != "" {
		t.Errorf("reply = %q, want empty", reply)
	}
}

func TestProcess_BlockedBecomesReply(t *testing.T) {
	d := newTestDispatcher()
	d.Use(middleware.Func(func(_ *middleware.Context, _ *middleware.Next) (*middleware.Context, error) {
		return nil, &middleware.BlockedError{Reason: "chat is muted"}
	}))

	reply, err := d.ProcessText("chat1", "/help")
	if err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if reply != "chat is muted" {
		t.Errorf("reply = %q, want block reason verbatim", reply)
	}
}

func TestProcess_RateLimitedBecomesFixedReply(t *testing.T) {
	d := newTestDispatcher()
	d.Use(middleware.NewRateLimitMiddleware(1, time.Minute))

	sender := message.NewUser("u42")
	if _, err := d.ProcessTextFrom("chat1", "/help", &sender); err != nil {
		t.Fatalf("first request error: %v", err)
	}

	reply, err := d.ProcessTextFrom("chat1", "/help", &sender)
	if err != nil {
		t.Fatalf("second request error: %v", err)
	}
	if reply != RateLimitedReply {
		t.Errorf("reply = %q, want %q", reply, RateLimitedReply)
	}
}

func TestProcess_PermissionDeniedFormatted(t *testing.T) {
	d := newTestDispatcher()
	d.Use(middleware.NewAccessMiddleware(true, []string{"u1"}))

	sender := message.NewUser("stranger")
	reply, err := d.ProcessTextFrom("chat1", "/help", &sender)
	if err != nil {
		t.Fatalf("ProcessTextFrom() error: %v", err)
	}
	if reply != "Permission denied: user not whitelisted" {
		t.Errorf("reply = %q", reply)
	}
}

func TestProcess_InternalErrorPropagates(t *testing.T) {
	d := newTestDispatcher()
	d.Use(middleware.Func(func(_ *middleware.Context, _ *middleware.Next) (*middleware.Context, error) {
		return nil, &middleware.InternalError{Reason: "store unavailable"}
	}))

	_, err := d.ProcessText("chat1", "/help")
	var botErr *BotError
	if !errors.As(err, &botErr) {
		t.Fatalf("error = %v, want *BotError", err)
	}
	if botErr.Kind != KindInternal {
		t.Errorf("Kind = %q, want %q", botErr.Kind, KindInternal)
	}
}

func TestProcess_HandlerErrorWrapped(t *testing.T) {
	d := newTestDispatcher()
	boom := errors.New("backend down")
	d.Registry().Register(command.New("crash").
		WithHandler(func(message.Message) (string, error) {
			return "", boom
		}))

	_, err := d.ProcessText("chat1", "/crash")
	var botErr *BotError
	if !errors.As(err, &botErr) {
		t.Fatalf("error = %v, want *BotError", err)
	}
	if botErr.Kind != KindCommand {
		t.Errorf("Kind = %q, want %q", botErr.Kind, KindCommand)
	}

	var cmdErr *command.Error
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error chain missing *command.Error: %v", err)
	}
	if cmdErr.Name != "crash" {
		t.Errorf("command.Error.Name = %q, want %q", cmdErr.Name, "crash")
	}
	if !errors.Is(err, boom) {
		t.Error("error chain lost the handler error")
	}
}

func TestProcess_NilHandler(t *testing.T) {
	d := newTestDispatcher()
	d.Registry().Register(command.New("stub"))

	reply, err := d.ProcessText("chat1", "/stub")
	if err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if reply != "Command stub not implemented" {
		t.Errorf("reply = %q", reply)
	}
}

func TestProcess_MiddlewareOrderIsUseOrder(t *testing.T) {
	var order []string
	trace := func(tag string) middleware.Middleware {
		return middleware.Func(func(ctx *middleware.Context, next *middleware.Next) (*middleware.Context, error) {
			order = append(order, tag)
			return next.Run(ctx)
		})
	}

	d := newTestDispatcher()
	d.Use(trace("first")).Use(trace("second"))

	if _, err := d.ProcessText("chat1", "/help"); err != nil {
		t.Fatalf("ProcessText() error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}
