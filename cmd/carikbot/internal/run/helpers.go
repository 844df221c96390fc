package run

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/tinyland-inc/carikbot/cmd/carikbot/internal"
	"github.com/tinyland-inc/carikbot/pkg/bus"
	"github.com/tinyland-inc/carikbot/pkg/channels"
	"github.com/tinyland-inc/carikbot/pkg/command"
	"github.com/tinyland-inc/carikbot/pkg/config"
	"github.com/tinyland-inc/carikbot/pkg/dispatcher"
	"github.com/tinyland-inc/carikbot/pkg/logger"
	"github.com/tinyland-inc/carikbot/pkg/message"
	"github.com/tinyland-inc/carikbot/pkg/middleware"
	"github.com/tinyland-inc/carikbot/pkg/providers"
	anthropicprovider "github.com/tinyland-inc/carikbot/pkg/providers/anthropic"
)

func runCmd(debug bool) error {
	if debug {
		logger.SetLevel(logger.DEBUG)
		fmt.Println("🔍 Debug mode enabled")
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	disp := buildDispatcher(cfg)

	msgBus := bus.NewMessageBus()
	channelManager, err := channels.NewManager(cfg, msgBus)
	if err != nil {
		return fmt.Errorf("error creating channel manager: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enabledChannels := channelManager.GetEnabledChannels()
	if len(enabledChannels) > 0 {
		fmt.Printf("✓ Channels enabled: %s\n", enabledChannels)
	} else {
		fmt.Println("⚠ Warning: No channels enabled")
	}

	if err := channelManager.StartAll(ctx); err != nil {
		return fmt.Errorf("error starting channels: %w", err)
	}

	fmt.Printf("✓ %s v%s started\n", cfg.Bot.Name, internal.GetVersion())
	fmt.Println("Press Ctrl+C to stop")

	go dispatchLoop(ctx, msgBus, disp)
	go deliverLoop(ctx, msgBus, channelManager)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	<-sigChan

	fmt.Println("\nShutting down...")
	cancel()
	msgBus.Close()
	channelManager.StopAll(context.Background())
	fmt.Println("✓ Gateway stopped")

	return nil
}

// buildDispatcher assembles the registry, middleware chain and fallback
// from config. Chain order is logging, whitelist, rate limit.
func buildDispatcher(cfg *config.Config) *dispatcher.Dispatcher {
	registry := command.NewRegistry()
	command.RegisterDefaults(registry, cfg.Bot.Name, internal.GetVersion())

	policy := middleware.KeyByUser
	if cfg.Security.RateLimit.KeyPolicy == "chat" {
		policy = middleware.KeyByChat
	}

	disp := dispatcher.New(cfg.Bot.Prefix, registry)
	disp.Use(middleware.NewLoggingMiddleware())
	disp.Use(middleware.NewAccessMiddleware(
		cfg.Security.Whitelist.Enabled,
		cfg.Security.Whitelist.Users,
	).WithKeyPolicy(policy))
	disp.Use(middleware.NewRateLimitMiddleware(
		cfg.Security.RateLimit.MaxRequests,
		time.Duration(cfg.Security.RateLimit.WindowSeconds)*time.Second,
	).WithKeyPolicy(policy))

	if cfg.Providers.Anthropic.APIKey != "" {
		var provider providers.ChatProvider = anthropicprovider.NewProviderWithBaseURL(
			cfg.Providers.Anthropic.APIKey,
			cfg.Providers.Anthropic.APIBase,
		).WithModel(cfg.Providers.Anthropic.Model).
			WithMaxTokens(cfg.Providers.Anthropic.MaxTokens)

		disp.SetFallback(func(msg message.Message) (string, error) {
			text, _ := message.TextOf(msg.Content)
			return provider.Reply(context.Background(), msg.ChatID, text)
		})
		logger.InfoC("run", "Anthropic provider enabled for conversational replies")
	}

	return disp
}

// dispatchLoop consumes inbound messages, runs them through the
// dispatcher and publishes non-empty replies.
func dispatchLoop(ctx context.Context, msgBus *bus.MessageBus, disp *dispatcher.Dispatcher) {
	for {
		in, ok := msgBus.ConsumeInbound(ctx)
		if !ok {
			return
		}

		sender := message.NewUser(in.SenderID)
		sender.Username = in.SenderName

		reply, err := disp.ProcessTextFrom(in.ChatID, in.Content, &sender)
		if err != nil {
			logger.ErrorCF("run", "Dispatch failed", map[string]any{
				"channel": in.Channel,
				"chat_id": in.ChatID,
				"error":   err.Error(),
			})
			continue
		}
		if reply == "" {
			continue
		}

		out := bus.OutboundMessage{
			Channel: in.Channel,
			ChatID:  in.ChatID,
			Content: reply,
		}
		if err := msgBus.PublishOutbound(ctx, out); err != nil {
			logger.ErrorCF("run", "Publish outbound failed", map[string]any{
				"channel": in.Channel,
				"error":   err.Error(),
			})
		}
	}
}

// deliverLoop drains the outbound queue into the channel adapters.
func deliverLoop(ctx context.Context, msgBus *bus.MessageBus, manager *channels.Manager) {
	for {
		out, ok := msgBus.SubscribeOutbound(ctx)
		if !ok {
			return
		}

		if err := manager.Send(ctx, out); err != nil {
			logger.ErrorCF("run", "Send failed", map[string]any{
				"channel": out.Channel,
				"chat_id": out.ChatID,
				"error":   err.Error(),
			})
		}
	}
}
