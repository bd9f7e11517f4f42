// Package config loads the site configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Koz-TV/k-engine/internal/content"
	"github.com/Koz-TV/k-engine/internal/errors"
)

// Config represents the application configuration
type Config struct {
	// ContentDir is the root holding the per-kind section directories.
	ContentDir string `yaml:"content_dir"`

	// Languages is the ordered list of supported language codes. The first
	// entry is the default language; its URLs carry no path prefix.
	Languages []string `yaml:"languages"`

	// Sections maps content kinds to directory names under ContentDir.
	Sections map[string]string `yaml:"sections,omitempty"`

	// LanguageNames optionally overrides switcher display names per code.
	LanguageNames map[string]string `yaml:"language_names,omitempty"`

	// BackupDirName is the directory the legacy tree is relocated into.
	BackupDirName string `yaml:"backup_dir_name,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env if present so ${VAR} references in the config resolve.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, for callers that
// run without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "./content"
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{"en"}
	}
	if c.BackupDirName == "" {
		c.BackupDirName = "_old_structure_backup"
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	seen := map[string]struct{}{}
	for _, lang := range c.Languages {
		if lang == "" {
			return errors.ConfigInvalid("languages", "empty language code")
		}
		if _, dup := seen[lang]; dup {
			return errors.ConfigInvalid("languages", "duplicate language code "+lang)
		}
		seen[lang] = struct{}{}
	}
	return nil
}

// DefaultLanguage returns the first configured language.
func (c *Config) DefaultLanguage() string {
	return c.Languages[0]
}

// SectionDir returns the directory name for a kind, honoring overrides.
func (c *Config) SectionDir(kind content.Kind) string {
	if c.Sections != nil {
		if dir, ok := c.Sections[string(kind)]; ok && dir != "" {
			return dir
		}
	}
	return kind.Section()
}

// KindRoot returns the absolute-or-relative root directory for a kind.
func (c *Config) KindRoot(kind content.Kind) string {
	return filepath.Join(c.ContentDir, c.SectionDir(kind))
}

// ItemKinds returns the folder-backed kinds the migrator and resolver operate
// on, in a stable order.
func (c *Config) ItemKinds() []content.Kind {
	return []content.Kind{content.KindPost, content.KindProject}
}
