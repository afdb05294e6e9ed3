package telegram

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/notexe/remind-bot/internal/bot"
)

// retryDelay is the pause after a failed getUpdates call.
const retryDelay = 5 * time.Second

// Handler answers one message from the authorized chat.
type Handler interface {
	Handle(ctx context.Context, text string) bot.Reply
}

// Bot long-polls Telegram and feeds messages from the authorized chat to a
// Handler, one at a time.
type Bot struct {
	client      *Client
	handler     Handler
	chatID      string
	pollTimeout int
	retryDelay  time.Duration
}

// NewBot creates a bot that only answers chatID. Messages from any other
// chat are dropped without a reply.
func NewBot(client *Client, handler Handler, chatID string, pollTimeout int) *Bot {
	return &Bot{
		client:      client,
		handler:     handler,
		chatID:      chatID,
		pollTimeout: pollTimeout,
		retryDelay:  retryDelay,
	}
}

// Run polls until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	log.Printf("[telegram] Polling for updates (timeout %ds)", b.pollTimeout)

	var offset int64
	for {
		updates, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("[telegram] Shutting down...")
				return nil
			}
			log.Printf("[telegram] Error: %v", err)

			select {
			case <-ctx.Done():
				log.Println("[telegram] Shutting down...")
				return nil
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			b.HandleUpdate(ctx, u)
		}
	}
}

// HandleUpdate routes one update and sends the reply, if any.
func (b *Bot) HandleUpdate(ctx context.Context, u Update) {
	msg := u.Message
	if msg == nil || msg.Text == "" {
		return
	}
	if strconv.FormatInt(msg.Chat.ID, 10) != b.chatID {
		log.Printf("[telegram] Ignoring message from unauthorized chat %d", msg.Chat.ID)
		return
	}

	reply := b.handler.Handle(ctx, msg.Text)
	if reply.Text == "" {
		return
	}

	if reply.RegisterMenu {
		if err := b.client.SetMyCommands(ctx, menuCommands()); err != nil {
			log.Printf("[telegram] Error: failed to register command menu: %v", err)
		}
	}

	if err := b.client.SendMessage(ctx, b.chatID, reply.Text, NewReplyKeyboard(reply.Keyboard)); err != nil {
		log.Printf("[telegram] Error: failed to send reply: %v", err)
	}
}

func menuCommands() []BotCommand {
	commands := make([]BotCommand, len(bot.Commands))
	for i, c := range bot.Commands {
		commands[i] = BotCommand{Command: c.Name, Description: c.Description}
	}
	return commands
}
