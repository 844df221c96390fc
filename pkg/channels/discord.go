package channels

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/tinyland-inc/carikbot/pkg/bus"
	"github.com/tinyland-inc/carikbot/pkg/config"
	"github.com/tinyland-inc/carikbot/pkg/logger"
)

// DiscordChannel bridges Discord gateway events onto the message bus.
type DiscordChannel struct {
	*BaseChannel

	token   string
	session *discordgo.Session
}

func NewDiscordChannel(cfg config.DiscordConfig, b *bus.MessageBus) (*DiscordChannel, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("discord token is required")
	}

	return &DiscordChannel{
		BaseChannel: NewBaseChannel("discord", b, cfg.AllowFrom),
		token:       cfg.Token,
	}, nil
}

func (c *DiscordChannel) Start(_ context.Context) error {
	session, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return fmt.Errorf("creating discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		// Never react to our own or other bots' messages.
		if m.Author == nil || m.Author.Bot {
			return
		}
		c.HandleMessage(m.ID, m.Author.ID, m.Author.Username, m.ChannelID, m.Content)
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("opening discord gateway: %w", err)
	}

	c.session = session
	c.SetRunning(true)
	logger.InfoC("discord", "Discord channel started")
	return nil
}

func (c *DiscordChannel) Stop(_ context.Context) error {
	c.SetRunning(false)
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func (c *DiscordChannel) Send(_ context.Context, msg bus.OutboundMessage) error {
	if c.session == nil {
		return fmt.Errorf("discord channel not started")
	}

	_, err := c.session.ChannelMessageSend(msg.ChatID, msg.Content)
	if err != nil {
		return fmt.Errorf("sending discord message: %w", err)
	}
	return nil
}
