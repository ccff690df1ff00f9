package task

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Slot is a single named location in durable storage.
type Slot interface {
	// Load returns the slot contents, or nil if the slot has never been written.
	Load() ([]byte, error)

	// Save replaces the slot contents.
	Save(data []byte) error
}

// FileSlot stores the slot as a file on disk.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot backed by the file at path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string {
	return s.path
}

func (s *FileSlot) lockPath() string {
	return s.path + ".lock"
}

// Load reads the slot file. A missing file is an empty slot.
func (s *FileSlot) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	return data, nil
}

// Save writes the slot file atomically while holding the slot lock.
func (s *FileSlot) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	return withFileLock(s.lockPath(), func() error {
		if existing, err := os.ReadFile(s.path); err == nil {
			if bytes.Equal(existing, data) {
				return nil
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read slot file: %w", err)
		}

		tmpFile, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
		if err != nil {
			return fmt.Errorf("create temp slot file: %w", err)
		}
		name := tmpFile.Name()
		_, err = tmpFile.Write(data)
		if err1 := tmpFile.Close(); err1 != nil && err == nil {
			err = err1
		}
		if err != nil {
			os.Remove(name)
			return fmt.Errorf("write temp slot file: %w", err)
		}

		if err := os.Rename(name, s.path); err != nil {
			os.Remove(name)
			return fmt.Errorf("rename slot file: %w", err)
		}
		return nil
	})
}

// withFileLock executes fn while holding an exclusive lock on the file at path.
// Creates the file if it doesn't exist.
func withFileLock(path string, fn func() error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}
