package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ReplyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")) // Soft green

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	NotifyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")). // Warm yellow
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")). // Light purple
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

// FormatReply styles a router reply; replies starting with ❌ are errors.
func (f *Formatter) FormatReply(text string) string {
	if !f.colored {
		return text
	}
	if strings.HasPrefix(text, "❌") {
		return ErrorStyle.Render(text)
	}
	return ReplyStyle.Render(text)
}

// FormatKeyboard draws the quick-action buttons, one row per line.
func (f *Formatter) FormatKeyboard(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if !f.colored {
			lines = append(lines, "["+strings.Join(row, "] [")+"]")
			continue
		}
		buttons := make([]string, len(row))
		for i, label := range row {
			buttons[i] = ButtonStyle.Render(label)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) FormatNotification(text string) string {
	if f.colored {
		return NotifyStyle.Render("🔔 " + text)
	}
	return "🔔 " + text
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatDim(msg string) string {
	if f.colored {
		return DimStyle.Render(msg)
	}
	return msg
}
