package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	incompleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5bc5d"))
	completedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#61c2cd"))
	doneTitleStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244"))
	labelStyle      = lipgloss.NewStyle().Bold(true)
)

// ansiEnabled reports whether stdout should receive escape sequences.
// Tests replace it.
var ansiEnabled = func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, value string) string {
	if !ansiEnabled() {
		return value
	}
	return style.Render(value)
}

// Label renders a field label.
func Label(value string) string {
	return render(labelStyle, value)
}

// TaskTitle renders a task title, struck through when completed.
func TaskTitle(title string, completed bool) string {
	if !completed {
		return title
	}
	return render(doneTitleStyle, title)
}
