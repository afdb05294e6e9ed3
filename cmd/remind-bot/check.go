package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notexe/remind-bot/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking reminder bot configuration...")
		fmt.Println()

		cfg, err := loadConfig()
		if err != nil {
			fmt.Printf("❌ Config: %v\n", err)
			return err
		}

		if cfg.Telegram.BotToken == "" {
			fmt.Println("❌ TELEGRAM_TOKEN: NOT SET")
		} else {
			fmt.Printf("✓ TELEGRAM_TOKEN: %s\n", mask(cfg.Telegram.BotToken))
		}

		if cfg.Telegram.ChatID == "" {
			fmt.Println("❌ MY_CHAT_ID: NOT SET")
		} else {
			fmt.Printf("✓ MY_CHAT_ID: %s\n", cfg.Telegram.ChatID)
		}

		engine, err := app.NewEngine(cfg)
		if err != nil {
			fmt.Printf("❌ Store (%s): %v\n", cfg.Store.Driver, err)
			return err
		}
		defer engine.Close()

		all, err := engine.Store.ListAll(context.Background())
		if err != nil {
			fmt.Printf("❌ Store (%s): %v\n", cfg.Store.Driver, err)
			return err
		}
		fmt.Printf("✓ Store: %s %s (%d reminders)\n", cfg.Store.Driver, cfg.Store.Path, len(all))
		fmt.Printf("✓ Zone: %s (now %s)\n", cfg.Clock.Timezone, engine.Clock.Now().Format("15:04:05 02/01/2006"))
		fmt.Printf("✓ Poll every %s, reset at %q\n", cfg.Scheduler.Interval(), cfg.Scheduler.ResetSpec)

		fmt.Println()
		if err := cfg.ValidateTelegram(); err != nil {
			fmt.Println("Configuration incomplete. Please set the required environment variables.")
			return err
		}

		fmt.Println("Configuration complete! Bot is ready to run.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// mask hides all but the ends of a secret.
func mask(secret string) string {
	if len(secret) <= 10 {
		return "***"
	}
	return secret[:6] + "..." + secret[len(secret)-4:]
}
