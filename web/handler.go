// Package web serves a browser front end for the task list.
package web

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/task"
)

// TaskStore is the part of the task store the web front end uses.
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

// Options configures the web handler.
type Options struct {
	// Store holds the tasks. Required.
	Store TaskStore
	// Logger receives request errors. Defaults to stderr.
	Logger *log.Logger
}

// Handler serves the task pages.
type Handler struct {
	logger    *log.Logger
	mux       *http.ServeMux
	templates *templateWrapper

	// mu serializes store access; the store expects a single caller.
	mu    sync.Mutex
	store TaskStore
	draft *formDraft
}

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "web: ", log.LstdFlags)
	}
	handler := &Handler{
		logger:    logger,
		store:     opts.Store,
		templates: newTemplateWrapper(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/web/tasks", handler.handleTasks)
	mux.HandleFunc("/web/tasks/create", handler.handleCreate)
	mux.HandleFunc("/web/tasks/update", handler.handleUpdate)
	mux.HandleFunc("/web/tasks/toggle", handler.handleToggle)
	mux.HandleFunc("/web/tasks/delete", handler.handleDelete)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type templateWrapper struct {
	tmpl *template.Template
}

func newTemplateWrapper() *templateWrapper {
	return &templateWrapper{tmpl: newTemplates()}
}

func (tw *templateWrapper) Render(w http.ResponseWriter, data pageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tw.tmpl.ExecuteTemplate(w, "page", data)
}

type pageData struct {
	Tasks           []task.Task
	Selected        *task.Task
	SelectedID      int64
	CreateForm      formValues
	EditForm        formValues
	CreateError     string
	EditError       string
	PersistError    string
	CountIncomplete int
	CountCompleted  int
}

type formValues struct {
	Title   string
	Content string
}

// formDraft carries a failed submission to the next page render.
type formDraft struct {
	mode   string
	id     int64
	err    string
	values formValues
}

const (
	draftCreate = "create"
	draftUpdate = "update"
)

func (h *Handler) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	h.mu.Lock()
	tasks := h.store.List()
	data := pageData{
		Tasks:           tasks,
		CountIncomplete: h.store.CountIncomplete(),
		CountCompleted:  h.store.CountCompleted(),
	}
	if err := h.store.PersistErr(); err != nil {
		data.PersistError = "changes could not be saved: " + err.Error()
	}
	draft := h.draft
	h.draft = nil
	h.mu.Unlock()

	if id, err := task.ParseID(trimmedQueryValue(r, "id")); err == nil {
		data.Selected = selectTask(tasks, id)
	}
	if data.Selected != nil {
		data.SelectedID = data.Selected.ID
		data.EditForm = formValues{Title: data.Selected.Title, Content: data.Selected.Content}
	}

	if draft != nil {
		switch {
		case draft.mode == draftCreate:
			data.CreateError = draft.err
			data.CreateForm = draft.values
		case draft.mode == draftUpdate && draft.id == data.SelectedID:
			data.EditError = draft.err
			data.EditForm = draft.values
		case draft.mode == draftUpdate:
			data.CreateError = draft.err
		}
	}

	if err := h.templates.Render(w, data); err != nil {
		h.logger.Printf("render tasks: %v", err)
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setDraft(formDraft{mode: draftCreate, err: "invalid form input"})
		http.Redirect(w, r, tasksPath(0), http.StatusSeeOther)
		return
	}
	values := formValuesFromRequest(r)

	h.mu.Lock()
	created, err := h.store.Create(values.Title)
	h.mu.Unlock()
	if err != nil {
		h.setDraft(formDraft{mode: draftCreate, err: errorMessage(err), values: values})
		http.Redirect(w, r, tasksPath(0), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, tasksPath(created.ID), http.StatusSeeOther)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setDraft(formDraft{mode: draftUpdate, id: id, err: "invalid form input"})
		http.Redirect(w, r, tasksPath(id), http.StatusSeeOther)
		return
	}
	values := formValuesFromRequest(r)

	h.mu.Lock()
	_, err := h.store.Update(id, values.Title, values.Content)
	h.mu.Unlock()
	if err != nil {
		h.setDraft(formDraft{mode: draftUpdate, id: id, err: errorMessage(err), values: values})
	}
	http.Redirect(w, r, tasksPath(id), http.StatusSeeOther)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	_, err := h.store.ToggleComplete(id)
	h.mu.Unlock()
	if err != nil {
		h.setDraft(formDraft{mode: draftUpdate, id: id, err: errorMessage(err)})
		http.Redirect(w, r, tasksPath(0), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, returnPath(r, id), http.StatusSeeOther)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	h.store.Delete(id)
	h.mu.Unlock()
	http.Redirect(w, r, tasksPath(0), http.StatusSeeOther)
}

// requireID reads the id query parameter, answering 400 when it is missing
// or not a number.
func (h *Handler) requireID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := task.ParseID(trimmedQueryValue(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) setDraft(draft formDraft) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.draft = &draft
}

func formValuesFromRequest(r *http.Request) formValues {
	return formValues{
		Title:   r.PostFormValue("title"),
		Content: internalstrings.NormalizeNewlines(r.PostFormValue("content")),
	}
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

func selectTask(tasks []task.Task, id int64) *task.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

func trimmedQueryValue(r *http.Request, key string) string {
	return internalstrings.TrimSpace(r.URL.Query().Get(key))
}

// returnPath keeps the edit panel open when the toggle came from it.
func returnPath(r *http.Request, id int64) string {
	if r.URL.Query().Get("from") == "detail" {
		return tasksPath(id)
	}
	return tasksPath(0)
}

func tasksPath(id int64) string {
	if id == 0 {
		return "/web/tasks"
	}
	return "/web/tasks?id=" + strconv.FormatInt(id, 10)
}

func writeMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
