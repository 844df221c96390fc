package channels

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/tinyland-inc/carikbot/pkg/bus"
	"github.com/tinyland-inc/carikbot/pkg/config"
	"github.com/tinyland-inc/carikbot/pkg/logger"
)

// TelegramChannel receives updates via long polling and publishes them
// onto the message bus.
type TelegramChannel struct {
	*BaseChannel

	token  string
	bot    *telego.Bot
	cancel context.CancelFunc
}

func NewTelegramChannel(cfg config.TelegramConfig, b *bus.MessageBus) (*TelegramChannel, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	return &TelegramChannel{
		BaseChannel: NewBaseChannel("telegram", b, cfg.AllowFrom),
		token:       cfg.Token,
	}, nil
}

func (c *TelegramChannel) Start(ctx context.Context) error {
	bot, err := telego.NewBot(c.token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return fmt.Errorf("creating telegram bot: %w", err)
	}
	c.bot = bot

	pollCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	updates, err := bot.UpdatesViaLongPolling(pollCtx, nil)
	if err != nil {
		cancel()
		return fmt.Errorf("starting telegram long polling: %w", err)
	}

	c.SetRunning(true)
	logger.InfoC("telegram", "Telegram channel started")

	go func() {
		for update := range updates {
			c.handleUpdate(update)
		}
		c.SetRunning(false)
	}()

	return nil
}

func (c *TelegramChannel) handleUpdate(update telego.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	msg := update.Message
	chatID := strconv.FormatInt(msg.Chat.ID, 10)

	senderID := ""
	senderName := ""
	if msg.From != nil {
		senderID = strconv.FormatInt(msg.From.ID, 10)
		senderName = msg.From.Username
		if senderName == "" {
			senderName = msg.From.FirstName
		}
	}

	c.HandleMessage(strconv.Itoa(msg.MessageID), senderID, senderName, chatID, msg.Text)
}

func (c *TelegramChannel) Stop(_ context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	c.SetRunning(false)
	return nil
}

func (c *TelegramChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	if c.bot == nil {
		return fmt.Errorf("telegram channel not started")
	}

	chatID, err := strconv.ParseInt(msg.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat ID %q: %w", msg.ChatID, err)
	}

	_, err = c.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), msg.Content))
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
