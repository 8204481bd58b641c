package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope", "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if cfg.ServerURL != "" || cfg.Token != "" || len(cfg.Settings) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loom", "config.toml")
	in := &Config{
		ServerURL: "http://orchestrator.internal:9000",
		StateFile: "custom-state.toml",
		Settings:  map[string]string{"editor": "vim", "page_size": "25"},
		UI:        UIConfig{Accent: "#7d56f4"},
	}
	if err := SaveTo(path, in); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	out, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if out.ServerURL != in.ServerURL {
		t.Errorf("ServerURL = %q, want %q", out.ServerURL, in.ServerURL)
	}
	if out.StateFile != in.StateFile {
		t.Errorf("StateFile = %q, want %q", out.StateFile, in.StateFile)
	}
	if out.Settings["editor"] != "vim" || out.Settings["page_size"] != "25" {
		t.Errorf("Settings = %v", out.Settings)
	}
	if out.UI.Accent != "#7d56f4" {
		t.Errorf("UI.Accent = %q", out.UI.Accent)
	}
}

func TestEffectiveServerURL(t *testing.T) {
	cfg := &Config{ServerURL: "http://from-config:1"}

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("LOOM_SERVER", "http://from-env:2")
		if got := cfg.EffectiveServerURL("http://from-flag:3"); got != "http://from-flag:3" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("env beats config", func(t *testing.T) {
		t.Setenv("LOOM_SERVER", "http://from-env:2")
		if got := cfg.EffectiveServerURL(""); got != "http://from-env:2" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("config beats default", func(t *testing.T) {
		t.Setenv("LOOM_SERVER", "")
		if got := cfg.EffectiveServerURL(""); got != "http://from-config:1" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("default", func(t *testing.T) {
		t.Setenv("LOOM_SERVER", "")
		empty := &Config{}
		if got := empty.EffectiveServerURL(""); got != DefaultServerURL {
			t.Errorf("got %q", got)
		}
	})
}

func TestEffectiveToken(t *testing.T) {
	cfg := &Config{Token: "disk-token"}

	t.Setenv("LOOM_TOKEN", "env-token")
	if got := cfg.EffectiveToken(); got != "env-token" {
		t.Errorf("got %q", got)
	}

	t.Setenv("LOOM_TOKEN", "")
	if got := cfg.EffectiveToken(); got != "disk-token" {
		t.Errorf("got %q", got)
	}
}

func TestResolveStatePath(t *testing.T) {
	configPath := filepath.Join("/etc", "loom", "config.toml")

	t.Run("explicit flag wins", func(t *testing.T) {
		got := ResolveStatePath("/tmp/override.toml", configPath, &Config{StateFile: "other.toml"})
		if got != "/tmp/override.toml" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("relative state file resolves against config dir", func(t *testing.T) {
		got := ResolveStatePath("", configPath, &Config{StateFile: "nested/state.toml"})
		want := filepath.Join("/etc", "loom", "nested", "state.toml")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
	t.Run("absolute state file kept", func(t *testing.T) {
		got := ResolveStatePath("", configPath, &Config{StateFile: "/var/lib/loom/state.toml"})
		if got != "/var/lib/loom/state.toml" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("default sibling", func(t *testing.T) {
		got := ResolveStatePath("", configPath, &Config{})
		want := filepath.Join("/etc", "loom", "state.toml")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestSiblingPaths(t *testing.T) {
	configPath := filepath.Join("/home", "u", ".config", "loom", "config.toml")
	if got := ResolveHistoryPath(configPath); filepath.Base(got) != "history.db" {
		t.Errorf("history path = %q", got)
	}
	if got := ResolveAliasPath(configPath); filepath.Base(got) != "aliases.yaml" {
		t.Errorf("alias path = %q", got)
	}
}

func TestSaveToCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.toml")
	if err := SaveTo(path, &Config{ServerURL: "http://x:1"}); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat after save: %v", err)
	}
}
