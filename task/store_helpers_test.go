package task

import (
	"errors"
	"io"
	"log"
	"path/filepath"
	"testing"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestStore(t *testing.T) (*Store, *FileSlot) {
	t.Helper()

	slot := NewFileSlot(filepath.Join(t.TempDir(), "tasks.json"))
	store, err := Open(OpenOptions{Slot: slot, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, slot
}

func reopen(t *testing.T, slot Slot) *Store {
	t.Helper()

	store, err := Open(OpenOptions{Slot: slot, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	return store
}

func mustCreate(t *testing.T, store *Store, title string) *Task {
	t.Helper()

	created, err := store.Create(title)
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return created
}

// memorySlot keeps the slot in memory and can be told to fail.
type memorySlot struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (m *memorySlot) Load() ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data, nil
}

func (m *memorySlot) Save(data []byte) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

var errDiskFull = errors.New("disk full")

func tasksEqual(a, b []Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
