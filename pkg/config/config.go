// Package config loads mybundle settings from defaults, .mybundle.yaml files
// and MYBUNDLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"mybundle/pkg/bundle"
	"mybundle/pkg/exclude"
	"mybundle/pkg/rsp"
)

// FileName is the base name of the config file, without extension.
const FileName = ".mybundle"

// EnvPrefix prefixes environment overrides, e.g. MYBUNDLE_EXCLUDE_MATCH.
const EnvPrefix = "MYBUNDLE"

// ErrInvalidConfig is returned when a setting has an unsupported value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings that are not bundle command flags.
type Config struct {
	Exclude       []string `mapstructure:"exclude" yaml:"exclude"`
	ExcludeMatch  string   `mapstructure:"exclude_match" yaml:"exclude_match"`
	LanguageMatch string   `mapstructure:"language_match" yaml:"language_match"`
	IgnoreFile    string   `mapstructure:"ignore_file" yaml:"ignore_file"`
	RspFile       string   `mapstructure:"rsp_file" yaml:"rsp_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Exclude:       append([]string(nil), exclude.DefaultMarkers...),
		ExcludeMatch:  string(exclude.ModeSubstring),
		LanguageMatch: string(bundle.MatchContains),
		IgnoreFile:    ".bundleignore",
		RspFile:       rsp.DefaultFileName,
	}
}

// Load merges, in increasing priority, the defaults, ~/.mybundle.yaml, the
// project file (explicitPath when set, otherwise .mybundle.yaml in dir) and
// the environment.
func Load(dir, explicitPath string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("exclude", def.Exclude)
	v.SetDefault("exclude_match", def.ExcludeMatch)
	v.SetDefault("language_match", def.LanguageMatch)
	v.SetDefault("ignore_file", def.IgnoreFile)
	v.SetDefault("rsp_file", def.RspFile)

	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		if err := mergeFile(v, filepath.Join(home, FileName+".yaml"), false); err != nil {
			return nil, err
		}
	}
	if explicitPath != "" {
		if err := mergeFile(v, explicitPath, true); err != nil {
			return nil, err
		}
	} else if dir != "" {
		if err := mergeFile(v, filepath.Join(dir, FileName+".yaml"), false); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile layers one yaml file over v. Missing optional files are skipped.
func mergeFile(v *viper.Viper, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := exclude.ParseMode(c.ExcludeMatch); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := bundle.ParseLanguageMatch(c.LanguageMatch); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.RspFile == "" {
		return fmt.Errorf("%w: rsp_file must not be empty", ErrInvalidConfig)
	}
	return nil
}

// ExcludeMode returns the parsed exclude match mode.
func (c *Config) ExcludeMode() exclude.Mode {
	mode, _ := exclude.ParseMode(c.ExcludeMatch)
	return mode
}

// LanguageMode returns the parsed language match mode.
func (c *Config) LanguageMode() bundle.LanguageMatch {
	match, _ := bundle.ParseLanguageMatch(c.LanguageMatch)
	return match
}

// YAML renders the configuration.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(out), nil
}
