package console

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Reminder console

| Command | What it does |
|---|---|
| ` + "`/add HH:MM - HH:MM \\| text`" + ` | add a reminder for today |
| ` + "`/list`" + ` | show pending reminders |
| ` + "`/done`" + ` | numbered list to pick from |
| ` + "`/done N`" + ` | complete reminder N |
| ` + "`/start`" + ` | show the quick-action buttons |
| ` + "`/help`" + ` | this help |
| ` + "`/quit`" + ` | leave |

Button labels (for example *📝 List*) can be typed as-is.
Start and end notifications appear inline while the console is open.`

// renderHelp renders the help table for the terminal, falling back to the
// raw markdown when rendering fails.
func renderHelp(colored bool) string {
	if !colored {
		return helpMarkdown
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return helpMarkdown
	}

	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	return strings.TrimSpace(rendered)
}
