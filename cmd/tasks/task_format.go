package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/tasklist/internal/markdown"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/task"
)

const taskDetailLineWidth = 80

func formatTaskTable(tasks []task.Task) string {
	builder := ui.NewTableBuilder([]string{"ID", "DONE", "TITLE", "CONTENT"}, len(tasks))
	for _, t := range tasks {
		builder.AddRow([]string{
			strconv.FormatInt(t.ID, 10),
			ui.Checkbox(t.Completed),
			ui.TaskTitle(ui.TruncateTableCell(t.Title), t.Completed),
			ui.TruncateTableCell(t.Content),
		})
	}
	return builder.String()
}

func formatTaskDetail(t task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s      %d\n", ui.Label("ID:"), t.ID)
	fmt.Fprintf(&b, "%s   %s\n", ui.Label("Title:"), ui.TaskTitle(t.Title, t.Completed))
	fmt.Fprintf(&b, "%s    %s\n", ui.Label("Done:"), ui.Checkbox(t.Completed))
	if rendered := markdown.Render(taskDetailLineWidth, 2, []byte(t.Content)); len(rendered) > 0 {
		fmt.Fprintf(&b, "\n%s\n%s\n", ui.Label("Content:"), rendered)
	}
	return b.String()
}
