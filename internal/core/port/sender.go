package port

import "context"

type TextSender interface {
	// SendMessage sends a text message to the given chat.
	SendMessage(ctx context.Context, chatID int64, text string) error
	// SendPrivateMessage sends a text message to the given user's private chat.
	SendPrivateMessage(ctx context.Context, userID int64, text string) error
}
