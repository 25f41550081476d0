// internal/config/config.go
// Package config loads fauxchat's optional settings file. Every key has a
// default, so running without a config file is the normal case.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fauxchat/fauxchat-cli/internal/credentials"
	"github.com/fauxchat/fauxchat-cli/internal/platform"
	"github.com/fauxchat/fauxchat-cli/internal/pool"
	"github.com/fauxchat/fauxchat-cli/internal/usernames"
	"github.com/spf13/viper"
)

// Config holds the defaults the subcommands fall back to when a flag is unset
type Config struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	UsernamesFile   string `mapstructure:"usernames_file"`
	VocabFile       string `mapstructure:"vocab_file"`
	BatchSize       int    `mapstructure:"batch_size"`
	PoolFile        string `mapstructure:"pool_file"`
	Output          string `mapstructure:"output"`

	// ConfigPath is the file the settings were read from, empty when none was found
	ConfigPath string `mapstructure:"-"`
}

const (
	DefaultCredentialsFile = credentials.DefaultFileName
	DefaultUsernamesFile   = usernames.DefaultFileName
	DefaultVocabFile       = "" // empty selects the bundled bert-base-cased vocabulary
	DefaultBatchSize       = usernames.DefaultBatchSize
	DefaultPoolFile        = pool.DefaultFileName
	DefaultOutput          = "json"

	// EnvPrefix prefixes environment overrides, e.g. FAUXCHAT_BATCH_SIZE
	EnvPrefix = "FAUXCHAT"
)

// OutputFormats lists the accepted values of the output key
var OutputFormats = []string{"json", "yaml", "table"}

// Validation errors
var (
	ErrInvalidBatchSize = errors.New("batch_size must be at least 1")
	ErrInvalidOutput    = errors.New("output must be one of json, yaml, table")
)

// DefaultConfigPath returns $HOME/.fauxchat/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(platform.ConfigDir(), "config.yaml")
}

// Load reads configPath if given. With an empty configPath the default
// location is tried and silently skipped when absent. An explicitly
// requested file must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("credentials_file", DefaultCredentialsFile)
	v.SetDefault("usernames_file", DefaultUsernamesFile)
	v.SetDefault("vocab_file", DefaultVocabFile)
	v.SetDefault("batch_size", DefaultBatchSize)
	v.SetDefault("pool_file", DefaultPoolFile)
	v.SetDefault("output", DefaultOutput)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}

	usedPath := ""
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil || explicit {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			usedPath = configPath
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = usedPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		CredentialsFile: DefaultCredentialsFile,
		UsernamesFile:   DefaultUsernamesFile,
		VocabFile:       DefaultVocabFile,
		BatchSize:       DefaultBatchSize,
		PoolFile:        DefaultPoolFile,
		Output:          DefaultOutput,
	}
}

// Validate checks the values that have a restricted range
func (c *Config) Validate() error {
	if c.BatchSize < 1 {
		return ErrInvalidBatchSize
	}
	if !slices.Contains(OutputFormats, c.Output) {
		return fmt.Errorf("%w, got %q", ErrInvalidOutput, c.Output)
	}
	return nil
}
