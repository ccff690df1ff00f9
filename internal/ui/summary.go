package ui

import "fmt"

// Checkbox returns the list marker for a completion state.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// FormatSummary renders the incomplete and completed counts.
func FormatSummary(incomplete, completed int) string {
	return fmt.Sprintf("%s, %s",
		render(incompleteStyle, fmt.Sprintf("%d incomplete", incomplete)),
		render(completedStyle, fmt.Sprintf("%d completed", completed)),
	)
}
