// Package config handles loading tasklist.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tasklist/internal/paths"
	"github.com/amonks/tasklist/internal/validation"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "tasklist.toml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted store backends.
var Backends = []string{BackendFile, BackendSQLite}

// ErrInvalidBackend is returned for an unknown store backend.
var ErrInvalidBackend = errors.New("invalid store backend")

// DefaultPort is used by the web front end when no port is configured.
const DefaultPort = 8089

// Config represents the tasklist.toml configuration file.
type Config struct {
	Store Store `toml:"store"`
	Web   Web   `toml:"web"`
}

// Store contains storage configuration.
type Store struct {
	// Backend selects the slot implementation: "file" or "sqlite".
	Backend string `toml:"backend"`

	// Path is the slot file (file backend) or database (sqlite backend).
	// Empty means the default under the state directory.
	Path string `toml:"path"`

	// Slot names the row holding the task list in the sqlite backend.
	Slot string `toml:"slot"`
}

// Web contains web front end configuration.
type Web struct {
	Port int `toml:"port"`
}

// Load loads configuration from dir and the global config file.
// Returns the defaults if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func globalConfigPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Store.Backend = mergeString(projectMeta.IsDefined("store", "backend"), projectCfg.Store.Backend, globalCfg.Store.Backend)
	merged.Store.Path = mergeString(projectMeta.IsDefined("store", "path"), projectCfg.Store.Path, globalCfg.Store.Path)
	merged.Store.Slot = mergeString(projectMeta.IsDefined("store", "slot"), projectCfg.Store.Slot, globalCfg.Store.Slot)
	if projectMeta.IsDefined("web", "port") {
		merged.Web.Port = projectCfg.Web.Port
	} else if globalMeta.IsDefined("web", "port") {
		merged.Web.Port = globalCfg.Web.Port
	}

	merged.Store.Backend = strings.ToLower(merged.Store.Backend)
	if merged.Store.Backend == "" {
		merged.Store.Backend = BackendFile
	}
	if merged.Web.Port == 0 {
		merged.Web.Port = DefaultPort
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) validate() error {
	if _, err := ParseBackend(c.Store.Backend); err != nil {
		return err
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web port out of range: %d", c.Web.Port)
	}
	return nil
}

// ParseBackend normalizes a backend name and checks that it is known.
func ParseBackend(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	for _, known := range Backends {
		if backend == known {
			return backend, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidBackend, value, Backends)
}

// StorePath returns the configured store path, falling back to the default
// location for the backend.
func (c *Config) StorePath() (string, error) {
	if c.Store.Backend == BackendSQLite {
		return paths.ResolveWithDefault(c.Store.Path, paths.DefaultTaskDatabase)
	}
	return paths.ResolveWithDefault(c.Store.Path, paths.DefaultTaskFile)
}

// WebAddr returns the loopback address for the configured port.
func (c *Config) WebAddr() string {
	return fmt.Sprintf("127.0.0.1:%d", c.Web.Port)
}
