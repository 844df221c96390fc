package middleware

import (
	"github.com/tinyland-inc/carikbot/pkg/logger"
	"github.com/tinyland-inc/carikbot/pkg/message"
)

const previewLimit = 50

// LoggingMiddleware records a preview of each message before running
// the rest of the chain and the outcome after it returns. It never
// alters the result.
type LoggingMiddleware struct{}

// NewLoggingMiddleware creates a logging middleware.
func NewLoggingMiddleware() *LoggingMiddleware {
	return &LoggingMiddleware{}
}

func (m *LoggingMiddleware) Process(ctx *Context, next *Next) (*Context, error) {
	logger.DebugCF("dispatch", "Processing message", map[string]any{
		"chat_id": ctx.ChatID,
		"preview": preview(ctx.Message.Content),
	})

	result, err := next.Run(ctx)

	if err != nil {
		logger.WarnCF("dispatch", "Chain error", map[string]any{
			"chat_id": ctx.ChatID,
			"error":   err.Error(),
		})
	} else {
		logger.DebugCF("dispatch", "Processed OK", map[string]any{
			"chat_id": ctx.ChatID,
		})
	}

	return result, err
}

// preview truncates text content to previewLimit runes; non-text
// content gets a placeholder.
func preview(c message.Content) string {
	text, ok := message.TextOf(c)
	if !ok {
		switch c.(type) {
		case message.Command:
			return "[command]"
		case message.CallbackData:
			return "[callback]"
		default:
			return "[empty]"
		}
	}

	runes := []rune(text)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit])
	}
	return text
}
