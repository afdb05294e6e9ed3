// Package console is a terminal transport for the command router, handy
// for running the bot locally without Telegram.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/notexe/remind-bot/internal/bot"
)

// Console reads commands from the terminal and prints router replies.
// It also implements reminder.Notifier so the scheduler can print into it.
type Console struct {
	router    *bot.Router
	rl        *readline.Instance
	formatter *Formatter
	colored   bool

	mu  sync.Mutex
	out io.Writer
}

func New(router *bot.Router, colored bool, historyFile string) (*Console, error) {
	rl, err := setupReadline(historyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	return &Console{
		router:    router,
		rl:        rl,
		formatter: NewFormatter(colored),
		colored:   colored,
		out:       rl.Stdout(),
	}, nil
}

// Start runs the read loop until EOF, /quit or ctx cancellation.
func (c *Console) Start(ctx context.Context) error {
	defer c.rl.Close()

	go func() {
		<-ctx.Done()
		c.rl.Close()
	}()

	c.println(c.formatter.FormatDim("Type /help for commands."))

	for {
		input, err := c.readInput()
		if err != nil {
			return c.stopOnReadError(ctx, err)
		}

		if input == "" {
			continue
		}

		if quit := c.handleLine(ctx, input); quit {
			c.println("Goodbye!")
			return nil
		}
	}
}

// stopOnReadError ends the read loop. EOF, Ctrl-C and cancellation are a
// normal exit; anything else is printed and returned.
func (c *Console) stopOnReadError(ctx context.Context, err error) error {
	if isEOF(err) || ctx.Err() != nil {
		c.println("Goodbye!")
		return nil
	}
	c.println(c.formatter.FormatError(err))
	return fmt.Errorf("failed to read input: %w", err)
}

// handleLine processes one input line and reports whether to quit.
func (c *Console) handleLine(ctx context.Context, input string) bool {
	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q":
		return true
	case "/help", "/h":
		c.println(renderHelp(c.colored))
		return false
	}

	reply := c.router.Handle(ctx, input)
	if reply.Text == "" {
		c.println(c.formatter.FormatDim("(ignored; type /help for commands)"))
		return false
	}

	c.println(c.formatter.FormatReply(reply.Text))
	if len(reply.Keyboard) > 0 {
		c.println(c.formatter.FormatKeyboard(reply.Keyboard))
	}
	c.println("")
	return false
}

// Notify prints a scheduler notification above the prompt.
func (c *Console) Notify(_ context.Context, text string) error {
	c.println(c.formatter.FormatNotification(text))
	return nil
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}
