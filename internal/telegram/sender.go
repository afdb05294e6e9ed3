package telegram

import "context"

// Sender delivers notifications to the configured chat.
type Sender struct {
	client *Client
	chatID string
}

// NewSender creates a notifier for chatID.
func NewSender(client *Client, chatID string) *Sender {
	return &Sender{client: client, chatID: chatID}
}

// Notify sends text to the configured chat.
func (s *Sender) Notify(ctx context.Context, text string) error {
	return s.client.SendMessage(ctx, s.chatID, text, nil)
}
