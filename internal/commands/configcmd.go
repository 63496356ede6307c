package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ConfigCmd{})
}

// effectiveConfig is the TOML view printed by the config command.
type effectiveConfig struct {
	ConfigDir     string `toml:"config_dir"`
	ConfigFile    string `toml:"config_file"`
	ConfigPresent bool   `toml:"config_file_present"`
	TasksFile     string `toml:"tasks_file"`
	SkipMalformed bool   `toml:"skip_malformed"`
	LogLevel      string `toml:"log_level"`
}

// ConfigCmd implements the config command.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Print the effective configuration" }
func (c *ConfigCmd) Usage() string     { return "todo config" }
func (c *ConfigCmd) NeedsStore() bool  { return false }

func (c *ConfigCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	view := effectiveConfig{
		ConfigDir:     cfg.Dir,
		ConfigFile:    cfg.ConfigPath(),
		ConfigPresent: cfg.HasConfigFile(),
		TasksFile:     cfg.TasksPath(),
		SkipMalformed: cfg.SkipMalformed,
		LogLevel:      cfg.EffectiveLogLevel(),
	}
	if err := toml.NewEncoder(out).Encode(view); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	return exitcode.Success
}
