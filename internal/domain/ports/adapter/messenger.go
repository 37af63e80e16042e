package adapter

import "context"

// MessengerAdapter is the narrow slice of the messaging transport the core
// needs: deliver one text message to a destination identifier.
type MessengerAdapter interface {
	SendMessage(ctx context.Context, recipient string, text string) error
}
