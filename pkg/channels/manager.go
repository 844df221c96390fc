package channels

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tinyland-inc/carikbot/pkg/bus"
	"github.com/tinyland-inc/carikbot/pkg/config"
	"github.com/tinyland-inc/carikbot/pkg/logger"
)

// Manager owns the enabled channel adapters and routes outbound
// messages back to the channel they came from.
type Manager struct {
	mu       sync.RWMutex
	channels map[string]Channel
}

// NewManager builds the enabled channels from config.
func NewManager(cfg *config.Config, b *bus.MessageBus) (*Manager, error) {
	m := &Manager{
		channels: make(map[string]Channel),
	}

	if cfg.Channels.Telegram.Enabled {
		ch, err := NewTelegramChannel(cfg.Channels.Telegram, b)
		if err != nil {
			return nil, fmt.Errorf("telegram channel: %w", err)
		}
		m.channels["telegram"] = ch
	}

	if cfg.Channels.Discord.Enabled {
		ch, err := NewDiscordChannel(cfg.Channels.Discord, b)
		if err != nil {
			return nil, fmt.Errorf("discord channel: %w", err)
		}
		m.channels["discord"] = ch
	}

	if cfg.Channels.Console.Enabled {
		m.channels["console"] = NewConsoleChannel(b)
	}

	return m, nil
}

// GetChannel returns the channel registered under name.
func (m *Manager) GetChannel(name string) (Channel, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.channels[name]
	return ch, ok
}

// GetEnabledChannels returns a comma-separated list of channel names.
func (m *Manager) GetEnabledChannels() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.channels))
	for name := range m.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// StartAll starts every channel; the first failure aborts.
func (m *Manager) StartAll(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for name, ch := range m.channels {
		if err := ch.Start(ctx); err != nil {
			return fmt.Errorf("starting channel %s: %w", name, err)
		}
	}
	return nil
}

// StopAll stops every channel, logging failures instead of aborting.
func (m *Manager) StopAll(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for name, ch := range m.channels {
		if err := ch.Stop(ctx); err != nil {
			logger.WarnCF("channels", "Error stopping channel", map[string]any{
				"channel": name,
				"error":   err.Error(),
			})
		}
	}
}

// Send routes an outbound message to its originating channel.
func (m *Manager) Send(ctx context.Context, msg bus.OutboundMessage) error {
	ch, ok := m.GetChannel(msg.Channel)
	if !ok {
		return fmt.Errorf("unknown channel %q", msg.Channel)
	}
	return ch.Send(ctx, msg)
}
