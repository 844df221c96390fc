package bus

// InboundMessage is a raw event received from a channel, before
// parsing.
type InboundMessage struct {
	Channel    string `json:"channel"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name,omitempty"`
	ChatID     string `json:"chat_id"`
	Content    string `json:"content"`
	MessageID  string `json:"message_id,omitempty"` // platform message ID
}

// OutboundMessage is a reply to be delivered by a channel.
type OutboundMessage struct {
	Channel string `json:"channel"`
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}
