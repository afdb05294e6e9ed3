// Package bot turns chat text into reminder operations. It knows nothing
// about the transport; Telegram and the console both feed it plain text.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/notexe/remind-bot/internal/reminder"
)

// Quick-action button labels. Pressing one sends its label as text.
const (
	ButtonList     = "📝 List"
	ButtonQuickAdd = "➕ Quick add"
	ButtonDone     = "✅ Done (/done)"
	ButtonStatus   = "⚙️ Status"
)

// MainKeyboard is the reply keyboard shown by /start.
var MainKeyboard = [][]string{
	{ButtonList, ButtonQuickAdd},
	{ButtonDone, ButtonStatus},
}

// Command is an entry of the bot's command menu.
type Command struct {
	Name        string
	Description string
}

// Commands is the menu registered when the user sends /start.
var Commands = []Command{
	{"start", "Show the quick-action keyboard"},
	{"add", "Add a reminder: /add HH:MM - HH:MM | description"},
	{"list", "List pending reminders"},
	{"done", "Complete a reminder: /done or /done N"},
}

// Reply is what the transport should send back. An empty Text means the
// input is ignored.
type Reply struct {
	Text         string
	Keyboard     [][]string
	RegisterMenu bool
}

// Router dispatches commands and button presses to the reminder service.
type Router struct {
	service *reminder.Service
}

func NewRouter(service *reminder.Service) *Router {
	return &Router{service: service}
}

// Handle processes one message from the authorized user.
func (r *Router) Handle(ctx context.Context, text string) Reply {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "/") {
		command, args := splitCommand(text)
		switch command {
		case "start":
			return r.start()
		case "add":
			return r.add(ctx, args)
		case "list":
			return r.list(ctx)
		case "done":
			return r.done(ctx, args)
		}
		return Reply{}
	}

	switch text {
	case ButtonList:
		return r.list(ctx)
	case ButtonQuickAdd:
		return Reply{Text: MsgAddTemplate}
	case ButtonDone:
		return r.done(ctx, "")
	case ButtonStatus:
		return r.status()
	}
	return Reply{}
}

func (r *Router) start() Reply {
	return Reply{
		Text:         MsgGreeting,
		Keyboard:     MainKeyboard,
		RegisterMenu: true,
	}
}

func (r *Router) add(ctx context.Context, args string) Reply {
	start, end, description, err := ParseAdd(args)
	if err != nil {
		return Reply{Text: MsgAddFormat}
	}

	added, err := r.service.Create(ctx, start, end, description)
	if err != nil {
		return errorReply("add", err)
	}

	return Reply{Text: fmt.Sprintf("✅ Added: %s %s", added.Window(), added.Description)}
}

func (r *Router) list(ctx context.Context) Reply {
	pending, err := r.service.ListPending(ctx)
	if err != nil {
		return errorReply("list", err)
	}
	if len(pending) == 0 {
		return Reply{Text: MsgEmpty}
	}

	lines := make([]string, len(pending))
	for i, p := range pending {
		lines[i] = "📅 " + p.String()
	}
	return Reply{Text: "📝 TO DO:\n\n" + strings.Join(lines, "\n")}
}

func (r *Router) done(ctx context.Context, args string) Reply {
	if args == "" {
		return r.doneMenu(ctx)
	}

	ordinal, err := strconv.Atoi(strings.Fields(args)[0])
	if err != nil {
		return Reply{Text: MsgInvalidNumber}
	}

	completed, err := r.service.Complete(ctx, ordinal)
	if err != nil {
		if errors.Is(err, reminder.ErrIndex) {
			return Reply{Text: MsgInvalidNumber}
		}
		return errorReply("done", err)
	}

	return Reply{Text: fmt.Sprintf("✅ Finished #%d: %s", ordinal, completed.Description)}
}

func (r *Router) doneMenu(ctx context.Context) Reply {
	pending, err := r.service.ListPending(ctx)
	if err != nil {
		return errorReply("done", err)
	}
	if len(pending) == 0 {
		return Reply{Text: MsgEmpty}
	}

	var b strings.Builder
	b.WriteString("📝 Pick a number to complete:\n")
	for i, p := range pending {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	b.WriteString("\nExample: /done 1")
	return Reply{Text: b.String()}
}

func (r *Router) status() Reply {
	now := r.service.Now()
	return Reply{Text: fmt.Sprintf("🤖 Bot online.\n⏰ Local time: %s", now.Format("15:04:05"))}
}

func errorReply(command string, err error) Reply {
	if errors.Is(err, reminder.ErrValidation) {
		return Reply{Text: "❌ " + err.Error()}
	}
	log.Printf("[bot] Error: /%s failed: %v", command, err)
	return Reply{Text: "❌ Error: " + err.Error()}
}

// splitCommand turns "/add@MyBot 08:00 - 09:00 | x" into ("add", "08:00 - 09:00 | x").
func splitCommand(text string) (string, string) {
	parts := strings.SplitN(text, " ", 2)
	command := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	if i := strings.Index(command, "@"); i >= 0 {
		command = command[:i]
	}

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}
	return command, args
}
