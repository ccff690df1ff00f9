package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
)

// Store owns the task collection and keeps its slot in step with memory.
//
// A Store is not safe for concurrent use. Callers that serve several
// goroutines must serialize their calls.
type Store struct {
	slot       Slot
	logger     *log.Logger
	tasks      []Task
	nextID     int64
	persistErr error
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// Slot holds the persisted collection. Required.
	Slot Slot

	// Logger receives reports about malformed data and failed writes.
	// If nil, messages go to stderr.
	Logger *log.Logger
}

// Open loads the persisted collection from the slot.
//
// A missing, empty, or malformed slot yields an empty store; malformed data
// is logged, not returned. An error is returned only when the slot cannot be
// read at all.
func Open(opts OpenOptions) (*Store, error) {
	if opts.Slot == nil {
		return nil, fmt.Errorf("task store requires a slot")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "tasks: ", log.LstdFlags)
	}

	data, err := opts.Slot.Load()
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		logger.Printf("ignoring malformed task data: %v", err)
		tasks = nil
	}
	if tasks == nil {
		tasks = []Task{}
	}

	return &Store{
		slot:   opts.Slot,
		logger: logger,
		tasks:  tasks,
		nextID: seedID(tasks),
	}, nil
}

// Close releases the slot if it holds resources.
func (s *Store) Close() error {
	if closer, ok := s.slot.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []Task {
	tasks := make([]Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id int64) (*Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	t := s.tasks[i]
	return &t, nil
}

// CountIncomplete returns the number of tasks that are not completed.
func (s *Store) CountIncomplete() int {
	return countCompleted(s.tasks, false)
}

// CountCompleted returns the number of completed tasks.
func (s *Store) CountCompleted() int {
	return countCompleted(s.tasks, true)
}

// PersistErr returns the error from the most recent write, or nil if it
// succeeded.
func (s *Store) PersistErr() error {
	return s.persistErr
}

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole collection. Failures are logged and remembered;
// the in-memory mutation stands.
func (s *Store) persist() {
	data, err := encodeTasks(s.tasks)
	if err == nil {
		err = s.slot.Save(data)
	}
	s.persistErr = err
	if err != nil {
		s.logger.Printf("write tasks: %v", err)
	}
}

// storedTask mirrors a persisted entry; the pointer tells a missing id from 0.
type storedTask struct {
	ID        *int64 `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

func decodeTasks(data []byte) ([]Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var stored []*storedTask
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	tasks := make([]Task, 0, len(stored))
	for i, entry := range stored {
		if entry == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrMalformedTask, i)
		}
		if entry.ID == nil {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrMalformedTask, i)
		}
		tasks = append(tasks, Task{
			ID:        *entry.ID,
			Title:     entry.Title,
			Content:   entry.Content,
			Completed: entry.Completed,
		})
	}
	if err := validateTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func encodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// seedID returns the first ID to hand out after loading tasks.
func seedID(tasks []Task) int64 {
	next := int64(1)
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
