// Package parser converts raw inbound text into structured messages.
package parser

import (
	"strings"

	"github.com/tinyland-inc/carikbot/pkg/message"
)

// Parser turns raw text events into typed messages. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	prefix string
}

// New creates a parser that recognizes "/" plus the given custom prefix
// as command markers. An empty prefix leaves "/" as the only marker.
func New(prefix string) *Parser {
	return &Parser{prefix: prefix}
}

// Prefix returns the configured custom command prefix.
func (p *Parser) Prefix() string {
	return p.prefix
}

// Parse builds a message from a raw text event. Text starting with a
// command prefix becomes a Command; everything else is passed through
// untouched as Text.
func (p *Parser) Parse(chatID, text string, sender *message.User) message.Message {
	if strings.HasPrefix(text, "/") || (p.prefix != "" && strings.HasPrefix(text, p.prefix)) {
		return p.parseCommand(chatID, text, sender)
	}

	msg := message.New(chatID, message.Text{Body: text})
	if sender != nil {
		msg = msg.WithSender(*sender)
	}
	return msg
}

// parseCommand strips exactly one leading prefix occurrence and splits
// the remainder on whitespace. A bare prefix degrades to an empty
// command name; the dispatcher reports it as unknown.
func (p *Parser) parseCommand(chatID, text string, sender *message.User) message.Message {
	var cmdText string
	if strings.HasPrefix(text, "/") {
		cmdText = strings.TrimPrefix(text, "/")
	} else {
		cmdText = strings.TrimPrefix(text, p.prefix)
	}

	parts := strings.Fields(cmdText)
	name := ""
	var args []string
	if len(parts) > 0 {
		name = parts[0]
		args = parts[1:]
	}

	msg := message.New(chatID, message.Command{Name: name, Args: args})
	msg = msg.WithType(message.TypeCommand)
	if sender != nil {
		msg = msg.WithSender(*sender)
	}
	return msg
}

// ParseCallback builds a callback message from an inline-button press.
// Callback events always carry a sender.
func (p *Parser) ParseCallback(chatID, data string, user message.User) message.Message {
	msg := message.New(chatID, message.CallbackData{Data: data})
	return msg.WithType(message.TypeCallback).WithSender(user)
}
