package tui

import (
	"github.com/amonks/tasklist/task"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type editField int

const (
	editTitle editField = iota
	editContent
)

// editState is the task open in the edit modal.
type editState struct {
	id      int64
	title   textinput.Model
	content textarea.Model
	focus   editField
}

func newEditState(t task.Task, width int) *editState {
	title := textinput.New()
	title.Prompt = ""
	title.SetValue(t.Title)

	content := textarea.New()
	content.ShowLineNumbers = false
	content.Prompt = ""
	content.SetValue(t.Content)

	state := &editState{id: t.ID, title: title, content: content}
	state.setWidth(width)
	state.setFocus(editTitle)
	return state
}

func (e *editState) setWidth(width int) {
	inner := width - 8
	if inner < 20 {
		inner = 20
	}
	e.title.Width = inner
	e.content.SetWidth(inner)
	e.content.SetHeight(6)
}

func (e *editState) setFocus(field editField) tea.Cmd {
	e.focus = field
	if field == editTitle {
		e.content.Blur()
		return e.title.Focus()
	}
	e.title.Blur()
	return e.content.Focus()
}

func (e *editState) toggleFocus() tea.Cmd {
	if e.focus == editTitle {
		return e.setFocus(editContent)
	}
	return e.setFocus(editTitle)
}

func (e *editState) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.focus == editTitle {
		e.title, cmd = e.title.Update(msg)
		return cmd
	}
	e.content, cmd = e.content.Update(msg)
	return cmd
}

func (e *editState) values() (string, string) {
	return e.title.Value(), e.content.Value()
}
