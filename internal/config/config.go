// Package config provides Viper-based configuration loading for the priority annotator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ResourcesConfig locates the item resource table.
type ResourcesConfig struct {
	// Path is a YAML item table file, or a directory of them.
	Path string `mapstructure:"path"`
}

// SnapshotConfig locates the exported inventory/player snapshot.
type SnapshotConfig struct {
	// Path is a Lua chunk returning the snapshot table. Empty disables
	// inventory fallback and the belt formula.
	Path string `mapstructure:"path"`
	// InstructionLimit bounds the Lua opcodes executed while loading the snapshot.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// OverridesConfig locates an optional replacement for the built-in override tables.
type OverridesConfig struct {
	// Path is a YAML override file. Empty uses the embedded tables.
	Path string `mapstructure:"path"`
}

// RewriteConfig controls how set files are written back.
type RewriteConfig struct {
	// VerifyLua re-parses each rewritten file and refuses to write it when a
	// file that parsed before no longer parses.
	VerifyLua bool `mapstructure:"verify_lua"`
	// BackupSuffix, when non-empty, keeps a copy of the original next to each
	// rewritten file.
	BackupSuffix string `mapstructure:"backup_suffix"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Resources ResourcesConfig `mapstructure:"resources"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Overrides OverridesConfig `mapstructure:"overrides"`
	Rewrite   RewriteConfig   `mapstructure:"rewrite"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Resources.Path == "" {
		errs = append(errs, "resources.path must not be empty")
	}
	if c.Snapshot.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("snapshot.instruction_limit must be >= 0, got %d", c.Snapshot.InstructionLimit))
	}
	if err := validateRewrite(c.Rewrite); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateRewrite(r RewriteConfig) error {
	if strings.ContainsAny(r.BackupSuffix, `/\`) {
		return errors.New("rewrite.backup_suffix must not contain path separators")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with HPPRIO_ prefix
	v.SetEnvPrefix("HPPRIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance carrying only the built-in defaults.
// Used when no config file is given on the command line.
func Defaults() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HPPRIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("resources.path", "data/items.yaml")

	v.SetDefault("snapshot.path", "")
	v.SetDefault("snapshot.instruction_limit", 5_000_000)

	v.SetDefault("overrides.path", "")

	v.SetDefault("rewrite.verify_lua", true)
	v.SetDefault("rewrite.backup_suffix", "")
}
