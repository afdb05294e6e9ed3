package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"github.com/notexe/remind-bot/internal/app"
	"github.com/notexe/remind-bot/internal/bot"
	"github.com/notexe/remind-bot/internal/health"
	"github.com/notexe/remind-bot/internal/scheduler"
	"github.com/notexe/remind-bot/internal/telegram"
)

const shutdownTimeout = 20 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot",
	Long:  "Starts Telegram polling, the reminder scheduler and the health endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateTelegram(); err != nil {
			return err
		}

		engine, err := app.NewEngine(cfg)
		if err != nil {
			return err
		}

		httpTimeout := time.Duration(cfg.Telegram.PollTimeout+10) * time.Second
		client := telegram.NewClient(cfg.Telegram.APIURL, cfg.Telegram.BotToken, httpTimeout)

		sched := scheduler.New(engine.Service, telegram.NewSender(client, cfg.Telegram.ChatID), engine.Clock, app.SchedulerConfig(cfg))
		tgBot := telegram.NewBot(client, bot.NewRouter(engine.Service), cfg.Telegram.ChatID, cfg.Telegram.PollTimeout)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := sched.Run(ctx); err != nil {
				log.Printf("[scheduler] Error: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := tgBot.Run(ctx); err != nil {
				log.Printf("[telegram] Error: %v", err)
			}
		}()

		operations := map[string]gfshutdown.Operation{
			"reminders": func(ctx context.Context) error {
				cancel()
				drained := make(chan struct{})
				go func() {
					wg.Wait()
					close(drained)
				}()
				select {
				case <-drained:
				case <-ctx.Done():
					log.Println("Timed out waiting for in-flight jobs")
				}
				return engine.Close()
			},
		}

		if cfg.Health.Enabled {
			healthServer := health.NewServer(cfg.Health.Port, engine.Clock.Now)
			go func() {
				if err := healthServer.Start(); err != nil {
					log.Printf("[health] Error: %v", err)
				}
			}()
			operations["health"] = healthServer.Shutdown
		}

		log.Printf("Reminder bot started (store: %s, zone: %s)", cfg.Store.Driver, cfg.Clock.Timezone)

		wait := gfshutdown.GracefulShutdown(context.Background(), shutdownTimeout, operations)
		exitCode := <-wait
		if exitCode != 0 {
			return fmt.Errorf("shutdown finished with exit code %d", exitCode)
		}

		log.Println("Reminder bot shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
