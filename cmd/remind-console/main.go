// Command remind-console runs the reminder bot in the terminal instead of
// Telegram. Notifications from the scheduler are printed inline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/notexe/remind-bot/internal/app"
	"github.com/notexe/remind-bot/internal/bot"
	"github.com/notexe/remind-bot/internal/config"
	"github.com/notexe/remind-bot/internal/console"
	"github.com/notexe/remind-bot/internal/scheduler"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	if err := run(*configPath, !*noColor); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, colored bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	engine, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".remind-bot", "console_history")
	}

	c, err := console.New(bot.NewRouter(engine.Service), colored, historyFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(engine.Service, c, engine.Clock, app.SchedulerConfig(cfg))
	go func() {
		if err := sched.Run(ctx); err != nil {
			log.Printf("[scheduler] Error: %v", err)
		}
	}()

	err = c.Start(ctx)
	stop()
	return err
}
