// Command mcp-reminder exposes the reminder service as an MCP server.
//
// Tools operate on the same store the Telegram bot uses, so an MCP client
// can add, list and complete today's reminders.
//
// Usage:
//
//	./mcp-reminder                  # Start MCP server (stdio)
//	./mcp-reminder --config <path>  # Use a specific config file
//	./mcp-reminder --help           # Show help
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/notexe/remind-bot/internal/app"
	"github.com/notexe/remind-bot/internal/config"
	"github.com/notexe/remind-bot/internal/reminder"
)

func main() {
	configPath := config.GetDefaultConfigPath()

	for i := 1; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--help", "-h":
			printHelp()
			return
		case "--config":
			if i+1 >= len(os.Args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(1)
			}
			i++
			configPath = os.Args[i]
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	engine, err := app.NewEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	s := reminder.NewServer(engine.Service)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminder Server - Daily reminders via MCP protocol

USAGE:
    mcp-reminder                  Start MCP server (communicates via stdio)
    mcp-reminder --config <path>  Use a specific config file
    mcp-reminder --help           Show this help

CONFIGURATION:
    Reads ~/.remind-bot/config.yaml and REMIND_* environment variables.
    REMIND_STORE__PATH   Path to SQLite database
                         Default: ~/.remind-bot/reminders.db
    TZ_NAME              Timezone for reminder times
                         Default: Asia/Ho_Chi_Minh

TOOLS:
    add_reminder       Add a reminder for today (start, end, description)
    list_reminders     List pending reminders with their 1-based index
    complete_reminder  Mark the pending reminder at an index as done
    check_due          Show reminders starting or ending at a given minute
    reset_day          Delete every reminder

CLIENT SETUP:
    {
      "mcpServers": {
        "reminder": {
          "command": "/path/to/mcp-reminder",
          "args": []
        }
      }
    }`)
}
