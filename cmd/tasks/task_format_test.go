package main

import (
	"strings"
	"testing"

	"github.com/amonks/tasklist/task"
)

func TestFormatTaskTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	output := formatTaskTable([]task.Task{
		{ID: 1, Title: "Buy milk", Content: "two\nlitres"},
		{ID: 12, Title: "Walk dog", Completed: true},
	})

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", output)
	}
	if !strings.HasPrefix(lines[0], "ID  DONE  TITLE     CONTENT") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "1   [ ]   Buy milk  two litres" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "12  [x]   Walk dog") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestFormatTaskDetail(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	output := formatTaskDetail(task.Task{ID: 3, Title: "Plan trip", Content: "- book flights\n- pack"})
	for _, want := range []string{"ID:      3", "Title:   Plan trip", "Done:    [ ]", "Content:", "book flights"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in detail, got %q", want, output)
		}
	}

	bare := formatTaskDetail(task.Task{ID: 4, Title: "No body"})
	if strings.Contains(bare, "Content:") {
		t.Fatalf("expected no content section, got %q", bare)
	}
}
