// Package config handles global Loom configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/loomctl/loom/internal/atomicfile"
)

// Config is the global Loom configuration, loaded from config.toml.
type Config struct {
	// ServerURL is the base URL of the orchestration server.
	ServerURL string `toml:"server_url"`

	// Token authenticates API calls. Prefer setting LOOM_TOKEN in the
	// environment over writing the token to disk.
	Token string `toml:"token"`

	// StateFile overrides where the ambient selection state is kept.
	// Relative paths are resolved against the config file's directory.
	StateFile string `toml:"state_file"`

	// Settings holds user preferences managed by the settings commands.
	Settings map[string]string `toml:"settings"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output, as an ANSI
	// color code ("0" to "255") or hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// DefaultServerURL is used when no server is configured.
const DefaultServerURL = "http://localhost:7420"

// DefaultPath returns the default config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "loom", "config.toml")
}

// Load reads the config from the default path. A missing file yields an
// empty config, not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads the config from a specific path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// EffectiveServerURL returns the server URL with precedence:
// --server flag, LOOM_SERVER, config file, built-in default.
func (c *Config) EffectiveServerURL(override string) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	if s := strings.TrimSpace(os.Getenv("LOOM_SERVER")); s != "" {
		return s
	}
	if s := strings.TrimSpace(c.ServerURL); s != "" {
		return s
	}
	return DefaultServerURL
}

// EffectiveToken returns the API token, preferring LOOM_TOKEN.
func (c *Config) EffectiveToken() string {
	if t := strings.TrimSpace(os.Getenv("LOOM_TOKEN")); t != "" {
		return t
	}
	return strings.TrimSpace(c.Token)
}

// ResolveConfigPath resolves the effective config path from an optional
// override flag.
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return DefaultPath()
}

// ResolveStatePath resolves the state.toml path with precedence:
//  1. explicit --state flag
//  2. cfg.StateFile (relative to the config file dir when not absolute)
//  3. sibling state.toml next to config.toml
func ResolveStatePath(explicit, configPath string, cfg *Config) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}

	configDir := filepath.Dir(ResolveConfigPath(configPath))
	if cfg != nil {
		if fromConfig := strings.TrimSpace(cfg.StateFile); fromConfig != "" {
			if filepath.IsAbs(fromConfig) || strings.HasPrefix(filepath.ToSlash(fromConfig), "/") {
				return filepath.Clean(filepath.FromSlash(fromConfig))
			}
			return filepath.Join(configDir, filepath.FromSlash(fromConfig))
		}
	}
	return filepath.Join(configDir, "state.toml")
}

// ResolveHistoryPath returns the invocation history database path, a
// sibling of the config file.
func ResolveHistoryPath(configPath string) string {
	return filepath.Join(filepath.Dir(ResolveConfigPath(configPath)), "history.db")
}

// ResolveAliasPath returns the aliases file path, a sibling of the
// config file.
func ResolveAliasPath(configPath string) string {
	return filepath.Join(filepath.Dir(ResolveConfigPath(configPath)), "aliases.yaml")
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
