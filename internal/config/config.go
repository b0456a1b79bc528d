// Package config loads the taskflow YAML configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/taskflow/internal/database"
	"github.com/thenoetrevino/taskflow/internal/models"
)

// ErrInvalid wraps every configuration validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Board       BoardConfig       `yaml:"board"`
	Theme       string            `yaml:"theme"`
	LogLevel    string            `yaml:"log_level"`
}

// StorageConfig selects the key-value store and the keys the board uses
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path,omitempty"`
	RedisAddr string `yaml:"redis_addr,omitempty"`
	BoardKey  string `yaml:"board_key"`
	ThemeKey  string `yaml:"theme_key"`
}

// PersistenceConfig tunes the debounced writer. A nil DebounceMS means the default.
type PersistenceConfig struct {
	DebounceMS *int `yaml:"debounce_ms"`
}

// BoardConfig describes the seed board
type BoardConfig struct {
	TerminalColumn string         `yaml:"terminal_column"`
	Columns        []ColumnConfig `yaml:"columns"`
}

// ColumnConfig is one seed column
type ColumnConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

const (
	defaultDebounceMS = 100
	defaultRedisAddr  = "localhost:6379"
	defaultLogLevel   = "info"
)

// Default returns the configuration used when no file exists
func Default() *Config {
	return DefaultFor("")
}

// DefaultFor returns the default configuration for a storage backend.
// An empty backend means sqlite.
func DefaultFor(backend string) *Config {
	c := &Config{}
	c.Storage.Backend = backend
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory, then applies
// TASKFLOW_* environment overrides.
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		config := &Config{}
		config.applyEnv()
		config.applyDefaults()
		return config, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	config.applyEnv()

	// Fill in any missing values with defaults
	config.applyDefaults()

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "taskflow", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "taskflow", "config.yaml"), nil
}

// DataDir returns ~/.taskflow, where stores and logs live by default
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".taskflow"), nil
}

// applyEnv overrides file values with TASKFLOW_* environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv("TASKFLOW_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("TASKFLOW_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("TASKFLOW_REDIS_ADDR"); v != "" {
		c.Storage.RedisAddr = v
	}
	if v := os.Getenv("TASKFLOW_DEBOUNCE_MS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Persistence.DebounceMS = &parsed
		}
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = database.BackendSQLite
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Backend)
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = defaultRedisAddr
	}
	if c.Storage.BoardKey == "" {
		c.Storage.BoardKey = "kanbanBoard"
	}
	if c.Storage.ThemeKey == "" {
		c.Storage.ThemeKey = "theme"
	}
	if c.Persistence.DebounceMS == nil {
		ms := defaultDebounceMS
		c.Persistence.DebounceMS = &ms
	}
	if len(c.Board.Columns) == 0 {
		for _, col := range models.DefaultColumns() {
			c.Board.Columns = append(c.Board.Columns, ColumnConfig{ID: string(col.ID), Title: col.Title})
		}
	}
	if c.Board.TerminalColumn == "" {
		c.Board.TerminalColumn = string(models.DefaultTerminalColumn)
	}
	if c.Theme == "" {
		c.Theme = string(models.DefaultTheme)
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

func defaultStoragePath(backend string) string {
	dir, err := DataDir()
	if err != nil {
		dir = "."
	}
	switch backend {
	case database.BackendBadger:
		return filepath.Join(dir, "badger")
	case database.BackendSQLite:
		return filepath.Join(dir, "board.db")
	}
	return ""
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	if !slices.Contains(database.Backends(), c.Storage.Backend) {
		return fmt.Errorf("%w: storage.backend %q is not one of %s",
			ErrInvalid, c.Storage.Backend, strings.Join(database.Backends(), ", "))
	}
	if c.Storage.BoardKey == c.Storage.ThemeKey {
		return fmt.Errorf("%w: storage.board_key and storage.theme_key are both %q", ErrInvalid, c.Storage.BoardKey)
	}
	if c.Persistence.DebounceMS != nil && *c.Persistence.DebounceMS < 0 {
		return fmt.Errorf("%w: persistence.debounce_ms must not be negative", ErrInvalid)
	}
	if len(c.Board.Columns) == 0 {
		return fmt.Errorf("%w: board.columns is empty", ErrInvalid)
	}

	seen := make(map[string]struct{}, len(c.Board.Columns))
	for i, col := range c.Board.Columns {
		if col.ID == "" {
			return fmt.Errorf("%w: board.columns[%d] has no id", ErrInvalid, i)
		}
		if _, dup := seen[col.ID]; dup {
			return fmt.Errorf("%w: board.columns has duplicate id %q", ErrInvalid, col.ID)
		}
		seen[col.ID] = struct{}{}
		if utf8.RuneCountInString(col.Title) > models.MaxColumnTitleLength {
			return fmt.Errorf("%w: board.columns[%d] title exceeds %d characters", ErrInvalid, i, models.MaxColumnTitleLength)
		}
	}
	if _, ok := seen[c.Board.TerminalColumn]; !ok {
		return fmt.Errorf("%w: board.terminal_column %q is not a configured column", ErrInvalid, c.Board.TerminalColumn)
	}
	if _, err := models.ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("%w: theme: %w", ErrInvalid, err)
	}
	return nil
}

// Debounce returns the persistence debounce window
func (c *Config) Debounce() time.Duration {
	if c.Persistence.DebounceMS == nil {
		return defaultDebounceMS * time.Millisecond
	}
	return time.Duration(*c.Persistence.DebounceMS) * time.Millisecond
}

// SeedColumns returns the configured columns in display order
func (c *Config) SeedColumns() []models.Column {
	cols := make([]models.Column, 0, len(c.Board.Columns))
	for _, col := range c.Board.Columns {
		cols = append(cols, models.Column{ID: models.ColumnID(col.ID), Title: col.Title})
	}
	return cols
}

// DefaultTheme returns the configured theme, falling back to dark
func (c *Config) DefaultTheme() models.Theme {
	t, err := models.ParseTheme(c.Theme)
	if err != nil {
		return models.DefaultTheme
	}
	return t
}

// StoreOptions returns the options for database.Open
func (c *Config) StoreOptions() database.Options {
	return database.Options{
		Backend:   c.Storage.Backend,
		Path:      expandHome(c.Storage.Path),
		RedisAddr: c.Storage.RedisAddr,
	}
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
