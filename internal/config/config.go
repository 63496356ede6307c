// Package config handles the XDG configuration directory, the optional
// config.toml file, and the location of the tasks file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional TOML configuration filename.
	ConfigFile = "config.toml"

	// TasksFile is the default tasks filename.
	TasksFile = "tasks.txt"

	// EnvTasksFile overrides the tasks file path.
	EnvTasksFile = "TODO_TASKS_FILE"

	// EnvLogLevel overrides the log level.
	EnvLogLevel = "TODO_LOG_LEVEL"

	// DefaultLogLevel is used when nothing else sets a level.
	DefaultLogLevel = "warn"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// TasksFile is the tasks file path. Relative paths are resolved
	// against Dir.
	TasksFile string `toml:"tasks_file"`

	// SkipMalformed drops unparseable lines from the tasks file with a
	// warning instead of refusing to start.
	SkipMalformed bool `toml:"skip_malformed"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Debug forces debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
//
// Values are layered: defaults, then config.toml in the directory
// (if present), then environment variables. Command-line flags are
// applied by the caller afterwards.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:       dir,
		TasksFile: TasksFile,
		LogLevel:  DefaultLogLevel,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.loadEnv()

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the TOML configuration file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TasksPath returns the resolved tasks file path.
func (c *Config) TasksPath() string {
	if c.TasksFile == "" {
		return filepath.Join(c.Dir, TasksFile)
	}
	if filepath.IsAbs(c.TasksFile) {
		return c.TasksFile
	}
	return filepath.Join(c.Dir, c.TasksFile)
}

// EnsureDir creates the directory holding the tasks file if it doesn't
// exist. Directories are created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(filepath.Dir(c.TasksPath()), 0700)
}

// HasConfigFile checks if the config file exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// EffectiveLogLevel returns the log level after applying Debug.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("loading config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvTasksFile); v != "" {
		c.TasksFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
}

func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", level)
	}
}
