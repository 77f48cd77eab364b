package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	def := Default()
	if cfg.Wikipedia.APIURL != def.Wikipedia.APIURL {
		t.Errorf("APIURL = %q, want default", cfg.Wikipedia.APIURL)
	}
	if cfg.Output.Slots != 15 {
		t.Errorf("Slots = %d, want 15", cfg.Output.Slots)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
http:
  timeout: 5s
tapology:
  proxy_url: "https://api.codetabs.com/v1/proxy?quest="
output:
  slots: 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.HTTP.Timeout)
	}
	if cfg.Output.Slots != 12 {
		t.Errorf("Slots = %d, want 12", cfg.Output.Slots)
	}
	if !strings.HasPrefix(cfg.Tapology.ProxyURL, "https://api.codetabs.com") {
		t.Errorf("ProxyURL = %q", cfg.Tapology.ProxyURL)
	}
	// untouched keys keep their defaults
	if cfg.HTTP.UserAgent != Default().HTTP.UserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.HTTP.UserAgent)
	}
	if cfg.Tapology.BaseURL != "https://www.tapology.com" {
		t.Errorf("Tapology.BaseURL = %q, want default", cfg.Tapology.BaseURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MMA_PICKS_TIMEOUT", "2s")
	t.Setenv("MMA_PICKS_LOG_LEVEL", "debug")
	t.Setenv("MMA_PICKS_SLOTS", "10")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTP.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.HTTP.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Output.Slots != 10 {
		t.Errorf("Slots = %d, want 10", cfg.Output.Slots)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MMA_PICKS_USER_AGENT=picks-test/1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MMA_PICKS_USER_AGENT") })

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTP.UserAgent != "picks-test/1.0" {
		t.Errorf("UserAgent = %q, want value from .env", cfg.HTTP.UserAgent)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "malformed yaml", content: "http: [unterminated"},
		{name: "bad timeout env", env: map[string]string{"MMA_PICKS_TIMEOUT": "soon"}},
		{name: "negative slots", content: "output:\n  slots: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.content)

			if _, err := Load(path); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/picks/card.json")
	if err != nil {
		t.Fatalf("ExpandPath() error: %v", err)
	}
	if got != filepath.Join(home, "picks/card.json") {
		t.Errorf("ExpandPath() = %q", got)
	}

	if got, _ := ExpandPath("/tmp/card.json"); got != "/tmp/card.json" {
		t.Errorf("ExpandPath() changed absolute path to %q", got)
	}
}
