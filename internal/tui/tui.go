// Package tui implements the terminal front end for the task list.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/tasklist/internal/markdown"
	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/task"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TaskStore is the part of the task store the terminal UI uses.
type TaskStore interface {
	List() []task.Task
	Create(title string) (*task.Task, error)
	Update(id int64, title, content string) (*task.Task, error)
	ToggleComplete(id int64) (*task.Task, error)
	Delete(id int64) bool
	CountIncomplete() int
	CountCompleted() int
	PersistErr() error
}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusWarn
	statusError
)

type model struct {
	store       TaskStore
	width       int
	height      int
	list        list.Model
	newInput    textinput.Model
	creating    bool
	edit        *editState
	status      string
	statusLevel statusLevel
}

// Run shows the terminal UI until the user quits.
func Run(store TaskStore) error {
	if store == nil {
		return fmt.Errorf("task store is required")
	}
	program := tea.NewProgram(newModel(store), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newModel(store TaskStore) model {
	taskList := list.New(nil, newTaskItemDelegate(), 0, 0)
	taskList.Title = "Tasks"
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetFilteringEnabled(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)

	input := textinput.New()
	input.Prompt = "New task: "
	input.Placeholder = "title"

	m := model{
		store:    store,
		list:     taskList,
		newInput: input,
	}
	m.reload(0)
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch {
		case m.edit != nil:
			return m.handleEditKey(msg)
		case m.creating:
			return m.handleNewKey(msg)
		default:
			return m.handleListKey(msg)
		}
	}
	return m, nil
}

func (m model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "n":
		m.creating = true
		m.newInput.SetValue("")
		m.setStatus("", statusNone)
		return m, m.newInput.Focus()
	case " ", "space", "x":
		return m.toggleSelected()
	case "e", "enter":
		selected, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.edit = newEditState(selected, m.modalWidth())
		m.setStatus("", statusNone)
		return m, nil
	case "d":
		return m.deleteSelected()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) handleNewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.creating = false
		m.newInput.Blur()
		m.setStatus("", statusNone)
		return m, nil
	case "enter":
		created, err := m.store.Create(m.newInput.Value())
		if err != nil {
			m.setStatus(errorMessage(err), statusError)
			return m, nil
		}
		m.creating = false
		m.newInput.Blur()
		m.newInput.SetValue("")
		m.reload(created.ID)
		m.reportSaved(fmt.Sprintf("Created task %d", created.ID))
		return m, nil
	}

	var cmd tea.Cmd
	m.newInput, cmd = m.newInput.Update(msg)
	return m, cmd
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.edit = nil
		m.setStatus("Edit cancelled", statusInfo)
		return m, nil
	case "tab", "shift+tab":
		return m, m.edit.toggleFocus()
	case "ctrl+s":
		title, content := m.edit.values()
		id := m.edit.id
		if _, err := m.store.Update(id, title, content); err != nil {
			m.edit = nil
			m.reload(0)
			m.setStatus(errorMessage(err), statusError)
			return m, nil
		}
		m.edit = nil
		m.reload(id)
		m.reportSaved(fmt.Sprintf("Updated task %d", id))
		return m, nil
	}
	return m, m.edit.update(msg)
}

func (m model) toggleSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	toggled, err := m.store.ToggleComplete(selected.ID)
	if err != nil {
		m.reload(0)
		m.setStatus(errorMessage(err), statusError)
		return m, nil
	}
	m.reload(toggled.ID)
	verb := "Reopened"
	if toggled.Completed {
		verb = "Completed"
	}
	m.reportSaved(fmt.Sprintf("%s task %d", verb, toggled.ID))
	return m, nil
}

func (m model) deleteSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	index := m.list.Index()
	m.store.Delete(selected.ID)
	m.reload(0)
	if count := len(m.list.Items()); count > 0 {
		if index >= count {
			index = count - 1
		}
		m.list.Select(index)
	}
	m.reportSaved(fmt.Sprintf("Deleted task %d", selected.ID))
	return m, nil
}

// reload refreshes the list from the store, selecting the task with the
// given ID when it exists and keeping the current selection otherwise.
func (m *model) reload(selectID int64) {
	if selectID == 0 {
		if current, ok := m.selectedTask(); ok {
			selectID = current.ID
		}
	}
	index := m.list.Index()
	tasks := m.store.List()
	m.list.SetItems(taskItems(tasks))
	for i, t := range tasks {
		if t.ID == selectID {
			index = i
			break
		}
	}
	if index >= len(tasks) {
		index = len(tasks) - 1
	}
	if index >= 0 {
		m.list.Select(index)
	}
}

func (m *model) reportSaved(message string) {
	if err := m.store.PersistErr(); err != nil {
		m.setStatus(fmt.Sprintf("%s (not saved: %v)", message, err), statusWarn)
		return
	}
	m.setStatus(message, statusInfo)
}

func (m model) selectedTask() (task.Task, bool) {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return task.Task{}, false
	}
	return item.task, true
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m *model) resize() {
	leftWidth, _ := splitWidths(m.width)
	listHeight := m.contentHeight() - 2
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(leftWidth-4, listHeight)
	m.newInput.Width = m.width - len(m.newInput.Prompt) - 2
	if m.edit != nil {
		m.edit.setWidth(m.modalWidth())
	}
}

func (m model) contentHeight() int {
	height := m.height - 4
	if height < 1 {
		height = 1
	}
	return height
}

func (m model) modalWidth() int {
	width := m.width * 2 / 3
	if width < 40 {
		width = 40
	}
	return width
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading tasks..."
	}
	if m.edit != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.editView())
	}
	leftWidth, rightWidth := splitWidths(m.width)
	height := m.contentHeight()

	listPane := paneStyle.Width(leftWidth - 2).Height(height - 2).Render(m.listView())
	detailPane := paneStyle.Width(rightWidth - 2).Height(height - 2).Render(m.detailView(rightWidth - 4))
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	bottom := m.renderHelpLine()
	if m.creating {
		bottom = m.newInput.View()
	}
	return strings.Join([]string{m.renderHeader(), content, bottom, m.renderStatusLine()}, "\n")
}

func (m model) listView() string {
	if len(m.list.Items()) == 0 {
		return valueMuted.Render("No tasks found. Press n to add one.")
	}
	return m.list.View()
}

func (m model) detailView(width int) string {
	selected, ok := m.selectedTask()
	if !ok {
		return valueMuted.Render("No task selected.")
	}
	lines := []string{
		labelStyle.Render(fmt.Sprintf("Task %d", selected.ID)),
		truncateText(displayTitle(selected.Title), width),
		valueMuted.Render(completionLabel(selected.Completed)),
		"",
	}
	content := markdown.PlainLines(width, selected.Content)
	if len(content) == 0 {
		lines = append(lines, valueMuted.Render("(no content)"))
	} else {
		lines = append(lines, content...)
	}
	return strings.Join(lines, "\n")
}

func (m model) editView() string {
	titleLabel := labelStyle.Render("Title")
	contentLabel := labelStyle.Render("Content")
	if m.edit.focus == editTitle {
		titleLabel = statusSuccessStyle.Render("> Title")
	} else {
		contentLabel = statusSuccessStyle.Render("> Content")
	}
	body := strings.Join([]string{
		labelStyle.Render(fmt.Sprintf("Edit task %d", m.edit.id)),
		"",
		titleLabel,
		m.edit.title.View(),
		"",
		contentLabel,
		m.edit.content.View(),
		"",
		valueMuted.Render("tab switch field | ctrl+s save | esc cancel"),
	}, "\n")
	return modalStyle.Width(m.modalWidth()).Render(body)
}

func (m model) renderHeader() string {
	counts := fmt.Sprintf("%d incomplete, %d completed", m.store.CountIncomplete(), m.store.CountCompleted())
	return lipgloss.JoinHorizontal(lipgloss.Top, headerStyle.Render("Tasks"), countsStyle.Render(counts))
}

func (m model) renderHelpLine() string {
	text := "Keys: up/down move | n new | space toggle | e edit | d delete | q quit"
	return helpBarStyle.Render(truncateText(text, m.width))
}

func (m model) renderStatusLine() string {
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	switch m.statusLevel {
	case statusError:
		style = statusErrorStyle
	case statusWarn:
		style = statusWarnStyle
	case statusInfo:
		style = statusSuccessStyle
	}
	return style.Render(text)
}

func completionLabel(completed bool) string {
	if completed {
		return "completed"
	}
	return "incomplete"
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, task.ErrEmptyTitle):
		return "Title is required."
	case errors.Is(err, task.ErrTaskNotFound):
		return "That task no longer exists."
	default:
		return err.Error()
	}
}

func splitWidths(width int) (int, int) {
	left := width / 3
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}
