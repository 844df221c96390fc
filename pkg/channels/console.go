package channels

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"github.com/tinyland-inc/carikbot/pkg/bus"
	"github.com/tinyland-inc/carikbot/pkg/logger"
)

// ConsoleChatID is the chat identifier used for the local console
// session.
const ConsoleChatID = "console"

// ConsoleChannel is a stdin/stdout adapter for local development.
type ConsoleChannel struct {
	*BaseChannel

	rl     *readline.Instance
	cancel context.CancelFunc
}

func NewConsoleChannel(b *bus.MessageBus) *ConsoleChannel {
	return &ConsoleChannel{
		BaseChannel: NewBaseChannel("console", b, nil),
	}
}

func (c *ConsoleChannel) Start(ctx context.Context) error {
	rl, err := readline.New("you> ")
	if err != nil {
		return fmt.Errorf("creating readline: %w", err)
	}
	c.rl = rl

	readCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.SetRunning(true)
	logger.InfoC("console", "Console channel started (dev mode)")

	go c.readLoop(readCtx)
	return nil
}

func (c *ConsoleChannel) readLoop(ctx context.Context) {
	defer c.SetRunning(false)

	for {
		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return
			}
			logger.ErrorCF("console", "Read error", map[string]any{"error": err.Error()})
			return
		}

		if ctx.Err() != nil {
			return
		}
		if line == "" {
			continue
		}

		c.HandleMessage("", ConsoleChatID, "console", ConsoleChatID, line)
	}
}

func (c *ConsoleChannel) Stop(_ context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	c.SetRunning(false)
	if c.rl != nil {
		return c.rl.Close()
	}
	return nil
}

func (c *ConsoleChannel) Send(_ context.Context, msg bus.OutboundMessage) error {
	fmt.Printf("bot> %s\n", msg.Content)
	return nil
}
