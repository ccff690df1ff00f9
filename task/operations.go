package task

import (
	"fmt"
	"math"
)

// Create appends a new task with the given title.
// The title is stored as given; only its trimmed form is validated.
func (s *Store) Create(title string) (*Task, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	id, err := s.allocateID()
	if err != nil {
		return nil, err
	}
	t := Task{
		ID:    id,
		Title: title,
	}
	s.tasks = append(s.tasks, t)
	s.persist()

	return &t, nil
}

// Update replaces the title and content of a task.
// Completion state and ID are left alone. The title is not validated, so an
// update may clear it.
func (s *Store) Update(id int64, title, content string) (*Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}

	s.tasks[i].Title = title
	s.tasks[i].Content = content
	s.persist()

	t := s.tasks[i]
	return &t, nil
}

// ToggleComplete flips the completion state of a task.
func (s *Store) ToggleComplete(id int64) (*Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persist()

	t := s.tasks[i]
	return &t, nil
}

// Delete removes the task with the given ID and reports whether it existed.
// Deleting an unknown ID is not an error.
func (s *Store) Delete(id int64) bool {
	i := s.indexOf(id)
	removed := i >= 0
	if removed {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	}
	s.persist()
	return removed
}

// allocateID hands out the next ID. math.MaxInt64 is never assigned, so a
// loaded collection can always be followed by a larger ID.
func (s *Store) allocateID() (int64, error) {
	if s.nextID >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: no IDs left after %d", ErrIDsExhausted, s.nextID-1)
	}
	id := s.nextID
	s.nextID++
	return id, nil
}
