// Package message defines the structured message model shared by the
// parser, middleware chain and dispatcher.
package message

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type tags a message for display purposes. It parallels the active
// Content variant but also covers media kinds carried by adapters.
type Type string

const (
	TypeText     Type = "text"
	TypeCommand  Type = "command"
	TypeCallback Type = "callback"
	TypePhoto    Type = "photo"
	TypeDocument Type = "document"
	TypeAudio    Type = "audio"
	TypeVideo    Type = "video"
	TypeSticker  Type = "sticker"
	TypeLocation Type = "location"
)

// Content is the closed set of message payload variants. Exactly one
// variant is active per message; the parser decides which.
type Content interface {
	isContent()
}

// Text is plain conversational text.
type Text struct {
	Body string
}

// Command is a parsed bot command with its arguments in original order.
type Command struct {
	Name string
	Args []string
}

// CallbackData carries the payload of an inline-button press.
type CallbackData struct {
	Data string
}

// Empty is a message without usable content.
type Empty struct{}

func (Text) isContent()         {}
func (Command) isContent()      {}
func (CallbackData) isContent() {}
func (Empty) isContent()        {}

// TextOf returns the body of a Text content, or "" and false for any
// other variant.
func TextOf(c Content) (string, bool) {
	if t, ok := c.(Text); ok {
		return t.Body, true
	}
	return "", false
}

// IsCommand reports whether the content is a Command variant.
func IsCommand(c Content) bool {
	_, ok := c.(Command)
	return ok
}

// Message is one inbound (or synthesized) chat event. It is created
// once by the parser or an adapter and never mutated afterwards.
type Message struct {
	ID        string
	ChatID    string
	Sender    *User
	Content   Content
	Type      Type
	Timestamp time.Time
	Platform  string
	Raw       json.RawMessage
}

// New creates a message with a generated ID and current timestamp.
func New(chatID string, content Content) Message {
	return Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		Content:   content,
		Type:      TypeText,
		Timestamp: time.Now().UTC(),
		Platform:  "unknown",
	}
}

// FromText creates a plain text message.
func FromText(chatID, text string) Message {
	return New(chatID, Text{Body: text})
}

// FromCommand creates a command message.
func FromCommand(chatID, name string, args []string) Message {
	msg := New(chatID, Command{Name: name, Args: args})
	msg.Type = TypeCommand
	return msg
}

// WithSender returns a copy of the message with the sender set.
func (m Message) WithSender(u User) Message {
	m.Sender = &u
	return m
}

// WithType returns a copy of the message with the display type set.
func (m Message) WithType(t Type) Message {
	m.Type = t
	return m
}

// WithPlatform returns a copy of the message tagged with the platform
// it arrived from.
func (m Message) WithPlatform(platform string) Message {
	m.Platform = platform
	return m
}

// WithRaw returns a copy of the message carrying the adapter-specific
// raw payload.
func (m Message) WithRaw(raw json.RawMessage) Message {
	m.Raw = raw
	return m
}
