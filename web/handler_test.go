package web

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/tasklist/task"
)

func newTestServer(t *testing.T) (*httptest.Server, *task.Store) {
	t.Helper()

	store, err := task.Open(task.OpenOptions{
		Slot:   task.NewFileSlot(filepath.Join(t.TempDir(), "tasks.json")),
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	server := httptest.NewServer(NewServer(Options{Store: store, Logger: log.New(io.Discard, "", 0)}).Handler())
	t.Cleanup(server.Close)
	return server, store
}

func noRedirectClient() *http.Client {
	return &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func getPage(t *testing.T, server *httptest.Server, path string) string {
	t.Helper()

	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return string(body)
}

func postForm(t *testing.T, server *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()

	resp, err := noRedirectClient().PostForm(server.URL+path, form)
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	resp.Body.Close()
	return resp
}

func TestTasksPageEmpty(t *testing.T) {
	server, _ := newTestServer(t)

	output := getPage(t, server, "/web/tasks")
	if !strings.Contains(output, "No tasks found.") {
		t.Fatalf("expected empty list message, got %s", output)
	}
	if !strings.Contains(output, "0 incomplete, 0 completed") {
		t.Fatalf("expected counts, got %s", output)
	}
}

func TestCreateRedirectsToNewTask(t *testing.T) {
	server, store := newTestServer(t)

	resp := postForm(t, server, "/web/tasks/create", url.Values{"title": {"Buy milk"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/web/tasks?id=1" {
		t.Fatalf("expected redirect to new task, got %q", location)
	}

	tasks := store.List()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Fatalf("expected created task, got %+v", tasks)
	}

	output := getPage(t, server, "/web/tasks?id=1")
	if !strings.Contains(output, `value="Buy milk"`) {
		t.Fatalf("expected edit form for new task, got %s", output)
	}
	if !strings.Contains(output, "1 incomplete, 0 completed") {
		t.Fatalf("expected counts, got %s", output)
	}
}

func TestCreateBlankTitleShowsErrorOnce(t *testing.T) {
	server, store := newTestServer(t)

	resp := postForm(t, server, "/web/tasks/create", url.Values{"title": {"   "}})
	if location := resp.Header.Get("Location"); location != "/web/tasks" {
		t.Fatalf("expected redirect to list, got %q", location)
	}
	if len(store.List()) != 0 {
		t.Fatalf("expected no task created")
	}

	output := getPage(t, server, "/web/tasks")
	if !strings.Contains(output, "Title is required.") {
		t.Fatalf("expected validation error, got %s", output)
	}
	output = getPage(t, server, "/web/tasks")
	if strings.Contains(output, "Title is required.") {
		t.Fatalf("expected validation error to be shown only once")
	}
}

func TestUpdateKeepsCompletion(t *testing.T) {
	server, store := newTestServer(t)
	created, _ := store.Create("draft")
	store.ToggleComplete(created.ID)

	resp := postForm(t, server, "/web/tasks/update?id=1", url.Values{
		"title":   {"final"},
		"content": {"line one\r\nline two"},
	})
	if location := resp.Header.Get("Location"); location != "/web/tasks?id=1" {
		t.Fatalf("expected redirect back to task, got %q", location)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := task.Task{ID: 1, Title: "final", Content: "line one\nline two", Completed: true}
	if *got != want {
		t.Fatalf("expected %+v, got %+v", want, *got)
	}
}

func TestUpdateUnknownTask(t *testing.T) {
	server, _ := newTestServer(t)

	postForm(t, server, "/web/tasks/update?id=9", url.Values{"title": {"x"}})
	output := getPage(t, server, "/web/tasks")
	if !strings.Contains(output, "That task no longer exists.") {
		t.Fatalf("expected not found message, got %s", output)
	}
}

func TestToggleAndDelete(t *testing.T) {
	server, store := newTestServer(t)
	a, _ := store.Create("a")
	b, _ := store.Create("b")

	resp := postForm(t, server, "/web/tasks/toggle?id=2", nil)
	if location := resp.Header.Get("Location"); location != "/web/tasks" {
		t.Fatalf("expected redirect to list, got %q", location)
	}
	if store.CountCompleted() != 1 {
		t.Fatalf("expected one completed task")
	}

	resp = postForm(t, server, "/web/tasks/toggle?id=2&from=detail", nil)
	if location := resp.Header.Get("Location"); location != "/web/tasks?id=2" {
		t.Fatalf("expected redirect to detail, got %q", location)
	}
	if store.CountCompleted() != 0 {
		t.Fatalf("expected toggle to reopen task")
	}

	postForm(t, server, "/web/tasks/delete?id=1", nil)
	tasks := store.List()
	if len(tasks) != 1 || tasks[0].ID != b.ID {
		t.Fatalf("expected only %d left, got %+v", b.ID, tasks)
	}

	resp = postForm(t, server, "/web/tasks/delete?id=1", nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected deleting an absent task to redirect, got %d", resp.StatusCode)
	}
	if _, err := store.Get(a.ID); !errors.Is(err, task.ErrTaskNotFound) {
		t.Fatalf("expected task %d gone, got %v", a.ID, err)
	}
}

func TestBadRequests(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postForm(t, server, "/web/tasks/toggle?id=abc", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.StatusCode)
	}

	getResp, err := http.Get(server.URL + "/web/tasks/create")
	if err != nil {
		t.Fatalf("get create: %v", err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", getResp.StatusCode)
	}
}

func TestRootRedirects(t *testing.T) {
	server, _ := newTestServer(t)

	for _, path := range []string{"/", "/web"} {
		resp, err := noRedirectClient().Get(server.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/web/tasks" {
			t.Fatalf("%s: expected redirect to /web/tasks, got %d %q", path, resp.StatusCode, resp.Header.Get("Location"))
		}
	}
}

func TestTitlesAreEscaped(t *testing.T) {
	server, store := newTestServer(t)
	store.Create("<script>alert(1)</script>")

	output := getPage(t, server, "/web/tasks")
	if strings.Contains(output, "<script>alert(1)</script>") {
		t.Fatalf("expected title to be escaped")
	}
}

type failingStore struct {
	TaskStore
}

func (failingStore) List() []task.Task    { return nil }
func (failingStore) CountIncomplete() int { return 0 }
func (failingStore) CountCompleted() int  { return 0 }
func (failingStore) PersistErr() error    { return errors.New("disk full") }

func TestPersistErrorIsShown(t *testing.T) {
	server := httptest.NewServer(NewServer(Options{Store: failingStore{}, Logger: log.New(io.Discard, "", 0)}).Handler())
	defer server.Close()

	output := getPage(t, server, "/web/tasks")
	if !strings.Contains(output, "changes could not be saved: disk full") {
		t.Fatalf("expected persistence warning, got %s", output)
	}
}
