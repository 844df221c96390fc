// Package providers defines the narrow interface behind which
// conversational AI backends sit. The dispatch core only ever sees the
// ChatProvider contract.
package providers

import "context"

// ChatProvider generates a reply for plain conversational text.
type ChatProvider interface {
	Reply(ctx context.Context, chatID, text string) (string, error)
}
