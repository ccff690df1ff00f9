package main

import (
	"log"
	"os"

	"github.com/amonks/tasklist/internal/config"
	"github.com/amonks/tasklist/internal/paths"
	"github.com/amonks/tasklist/task"
)

// loadConfig reads configuration for the working directory and applies the
// global flag overrides.
func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	if storeBackend != "" {
		backend, err := config.ParseBackend(storeBackend)
		if err != nil {
			return nil, err
		}
		if backend != cfg.Store.Backend && storePath == "" {
			// The configured path belongs to the other backend.
			cfg.Store.Path = ""
		}
		cfg.Store.Backend = backend
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	return cfg, nil
}

// openStore opens the task store described by the configuration.
func openStore() (*task.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStoreWithConfig(cfg)
}

func openStoreWithConfig(cfg *config.Config) (*task.Store, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}

	var slot task.Slot
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		sqliteSlot, err := task.OpenSQLiteSlot(path, cfg.Store.Slot)
		if err != nil {
			return nil, err
		}
		slot = sqliteSlot
	default:
		slot = task.NewFileSlot(path)
	}

	store, err := task.Open(task.OpenOptions{
		Slot:   slot,
		Logger: log.New(os.Stderr, "tasks: ", 0),
	})
	if err != nil {
		if closer, ok := slot.(interface{ Close() error }); ok {
			closer.Close()
		}
		return nil, err
	}
	return store, nil
}
