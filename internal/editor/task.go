package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/task"
)

// Draft is a task being written in the editor.
type Draft struct {
	// ID is set when editing an existing task; zero for a new one.
	ID int64
	// Title is the task title.
	Title string
	// Content is the free-form body below the separator.
	Content string
	// Completed is shown for reference only; the editor does not change it.
	Completed bool
}

// IsUpdate reports whether the draft edits an existing task.
func (d Draft) IsUpdate() bool {
	return d.ID != 0
}

// DraftFromTask creates a draft from an existing task.
func DraftFromTask(t *task.Task) Draft {
	return Draft{
		ID:        t.ID,
		Title:     t.Title,
		Content:   t.Content,
		Completed: t.Completed,
	}
}

var draftTemplate = template.Must(template.New("task").Parse(`{{- if .IsUpdate -}}
# task {{ .ID }}{{ if .Completed }} (completed){{ end }}
{{ end -}}
title = {{ printf "%q" .Title }}
---
{{ .Content }}
`))

// RenderDraft renders the draft as TOML frontmatter followed by the content.
func RenderDraft(d Draft) (string, error) {
	var buf bytes.Buffer
	if err := draftTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

type frontmatter struct {
	Title string `toml:"title"`
}

// ParseDraft parses editor output back into a draft.
// New tasks must have a non-blank title; edits may clear it.
func ParseDraft(base Draft, content string) (*Draft, error) {
	head, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed frontmatter
	if _, err := toml.Decode(head, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if !base.IsUpdate() {
		if err := task.ValidateTitle(parsed.Title); err != nil {
			return nil, err
		}
	}

	draft := base
	draft.Title = parsed.Title
	draft.Content = internalstrings.TrimTrailingNewlines(internalstrings.TrimLeadingNewlines(body))
	return &draft, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}

// EditTask opens the editor for a task and returns the edited draft.
// Pass nil to write a new task.
func EditTask(existing *task.Task) (*Draft, error) {
	var draft Draft
	if existing != nil {
		draft = DraftFromTask(existing)
	}
	return EditDraft(draft)
}

// EditDraft opens the editor with a pre-populated draft.
func EditDraft(draft Draft) (*Draft, error) {
	content, err := RenderDraft(draft)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "tasks-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseDraft(draft, string(edited))
}
