package task

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmptyTitle is returned by Create when the title is blank.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidID is returned when a task ID cannot be parsed.
	ErrInvalidID = errors.New("invalid task ID")

	// ErrDuplicateID is returned when persisted data holds the same ID twice.
	ErrDuplicateID = errors.New("duplicate task ID")

	// ErrMalformedTask is returned when a persisted entry is not a usable task.
	ErrMalformedTask = errors.New("malformed task")

	// ErrIDsExhausted is returned by Create when no larger ID is available.
	ErrIDsExhausted = errors.New("task IDs exhausted")
)

// ValidateTitle checks that a title has visible characters.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ParseID parses a task ID from user input.
func ParseID(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, trimmed)
	}
	return id, nil
}

// ParseIDs parses several task IDs, stopping at the first bad one.
func ParseIDs(values []string) ([]int64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no task IDs provided")
	}
	ids := make([]int64, 0, len(values))
	for _, value := range values {
		id, err := ParseID(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// validateTasks checks the invariants persisted data must hold.
func validateTasks(tasks []Task) error {
	seen := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		if t.ID < 0 || t.ID == math.MaxInt64 {
			return fmt.Errorf("%w: id %d out of range", ErrMalformedTask, t.ID)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
}
