// Command remind-bot runs the personal reminder bot on Telegram.
//
// Usage:
//
//	remind-bot serve [--config path]   # Run the bot, scheduler and health endpoint
//	remind-bot check [--config path]   # Validate configuration and exit
//
// Environment:
//
//	TELEGRAM_TOKEN  Bot token from @BotFather
//	MY_CHAT_ID      The only chat allowed to use the bot
//	PORT            Health endpoint port (default: 8000)
//	REMIND_*        Any config key, e.g. REMIND_SCHEDULER__POLL_INTERVAL=30
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
