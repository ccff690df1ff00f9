package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestOpen_RequiresSlot(t *testing.T) {
	if _, err := Open(OpenOptions{}); err == nil {
		t.Fatalf("expected error without slot")
	}
}

func TestOpen_EmptyWhenNoData(t *testing.T) {
	for name, data := range map[string]string{
		"missing":    "",
		"whitespace": " \n",
		"null":       "null",
		"empty":      "[]",
	} {
		t.Run(name, func(t *testing.T) {
			slot := &memorySlot{}
			if data != "" {
				slot.data = []byte(data)
			}
			store := reopen(t, slot)
			if got := store.List(); len(got) != 0 {
				t.Fatalf("expected empty store, got %+v", got)
			}
		})
	}
}

func TestOpen_MalformedDataIsIgnored(t *testing.T) {
	cases := map[string]string{
		"not json":     "{{{",
		"object":       `{"id":1}`,
		"wrong type":   `[{"id":"one","title":"a"}]`,
		"duplicate id": `[{"id":1,"title":"a"},{"id":1,"title":"b"}]`,
		"null entry":   `[null,{"id":2,"title":"B"}]`,
		"missing id":   `[{"title":"a"},{"id":2,"title":"B"}]`,
		"negative id":  `[{"id":-3,"title":"a"}]`,
		"maximum id":   `[{"id":9223372036854775807,"title":"a"}]`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			var logs bytes.Buffer
			slot := &memorySlot{data: []byte(data)}
			store, err := Open(OpenOptions{Slot: slot, Logger: log.New(&logs, "", 0)})
			if err != nil {
				t.Fatalf("expected malformed data to be tolerated, got %v", err)
			}
			if got := store.List(); len(got) != 0 {
				t.Fatalf("expected empty store, got %+v", got)
			}
			if !strings.Contains(logs.String(), "ignoring malformed task data") {
				t.Fatalf("expected malformed data to be logged, got %q", logs.String())
			}

			created := mustCreate(t, store, "fresh start")
			if created.ID != 1 {
				t.Fatalf("expected IDs to restart at 1, got %d", created.ID)
			}
		})
	}
}

func TestOpen_LoadErrorIsReturned(t *testing.T) {
	slot := &memorySlot{loadErr: errDiskFull}
	_, err := Open(OpenOptions{Slot: slot, Logger: discardLogger()})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	want := []Task{
		{ID: 1, Title: "A", Content: "", Completed: false},
		{ID: 2, Title: "B", Content: "x", Completed: true},
		{ID: 3, Title: "C", Content: "", Completed: false},
	}
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	slot := &memorySlot{data: data}
	store := reopen(t, slot)
	if got := store.List(); !tasksEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// A mutation rewrites the slot; reloading reproduces the same sequence.
	store.Delete(404)
	again := reopen(t, slot)
	if got := again.List(); !tasksEqual(got, want) {
		t.Fatalf("expected %+v after rewrite, got %+v", want, got)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	store, slot := newTestStore(t)

	check := func(step string) {
		t.Helper()
		if got, want := reopen(t, slot).List(), store.List(); !tasksEqual(got, want) {
			t.Fatalf("%s: persisted %+v, memory %+v", step, got, want)
		}
	}

	a := mustCreate(t, store, "a")
	check("create")
	store.Update(a.ID, "a2", "more")
	check("update")
	store.ToggleComplete(a.ID)
	check("toggle")
	store.Delete(a.ID)
	check("delete")
}

func TestPersistedLayout(t *testing.T) {
	store, slot := newTestStore(t)
	mustCreate(t, store, "Buy milk")

	data, err := slot.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("expected JSON array, got %s", data)
	}
	if len(raw) != 1 {
		t.Fatalf("expected one element, got %d", len(raw))
	}
	for _, key := range []string{"id", "title", "content", "completed"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("expected key %q in %s", key, data)
		}
	}

	store.Delete(1)
	data, _ = slot.Load()
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array after deleting last task, got %q", data)
	}
}

func TestPersistFailureIsSoft(t *testing.T) {
	var logs bytes.Buffer
	slot := &memorySlot{saveErr: errDiskFull}
	store, err := Open(OpenOptions{Slot: slot, Logger: log.New(&logs, "", 0)})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	created, err := store.Create("still here")
	if err != nil {
		t.Fatalf("expected create to succeed despite write failure, got %v", err)
	}
	if len(store.List()) != 1 || store.List()[0] != *created {
		t.Fatalf("expected mutation kept in memory")
	}
	if !errors.Is(store.PersistErr(), errDiskFull) {
		t.Fatalf("expected PersistErr to report failure, got %v", store.PersistErr())
	}
	if !strings.Contains(logs.String(), "disk full") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}

	slot.saveErr = nil
	store.ToggleComplete(created.ID)
	if store.PersistErr() != nil {
		t.Fatalf("expected PersistErr cleared after successful write, got %v", store.PersistErr())
	}
	if got := reopen(t, slot).List(); !tasksEqual(got, store.List()) {
		t.Fatalf("expected slot to catch up on next write, got %+v", got)
	}
}

func TestFailedValidationDoesNotWrite(t *testing.T) {
	slot := &memorySlot{}
	store := reopen(t, slot)

	store.Create(" ")
	if slot.saves != 0 {
		t.Fatalf("expected no write for rejected create, got %d", slot.saves)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 12 ")
	if err != nil || id != 12 {
		t.Fatalf("expected 12, got %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "1.5"} {
		if _, err := ParseID(bad); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseID(%q): expected ErrInvalidID, got %v", bad, err)
		}
	}
	if _, err := ParseIDs(nil); err == nil {
		t.Errorf("expected error for no IDs")
	}
	ids, err := ParseIDs([]string{"1", "2"})
	if err != nil || len(ids) != 2 || ids[1] != 2 {
		t.Fatalf("unexpected ParseIDs result %v, %v", ids, err)
	}
}
