package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Timing.TickRate = 10
	cfg.HTTP.Timeout = Duration{5 * time.Second}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Timing.TickRate != 10 {
		t.Errorf("TickRate = %v, want 10", loaded.Timing.TickRate)
	}
	if loaded.HTTP.Timeout.Duration != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", loaded.HTTP.Timeout)
	}
	if loaded.Keybindings["home"]["quit"] != "q" {
		t.Errorf("home.quit = %q, want q", loaded.Keybindings["home"]["quit"])
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadOrDefaultMissing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Timing.FrameRate != DefaultFrameRate {
		t.Errorf("FrameRate = %v, want %v", cfg.Timing.FrameRate, DefaultFrameRate)
	}
}

func TestLoadOrDefaultMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[timing]
frame_rate = 30.0

[http]
timeout = "2s"

[keybindings.home]
quit = "x"

[theme]
border = "#112233"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Timing.FrameRate != 30 {
		t.Errorf("FrameRate = %v, want 30", cfg.Timing.FrameRate)
	}
	if cfg.Timing.TickRate != DefaultTickRate {
		t.Errorf("TickRate = %v, want default %v", cfg.Timing.TickRate, DefaultTickRate)
	}
	if cfg.HTTP.Timeout.Duration != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.HTTP.Timeout)
	}
	if cfg.Keybindings["home"]["quit"] != "x" {
		t.Errorf("home.quit = %q, want x", cfg.Keybindings["home"]["quit"])
	}
	if cfg.Keybindings["home"]["focus_url"] != "u" {
		t.Errorf("home.focus_url lost during merge: %q", cfg.Keybindings["home"]["focus_url"])
	}
	if cfg.Theme.Border != "#112233" || cfg.Theme.Title != "fuchsia" {
		t.Errorf("theme merge = %+v", cfg.Theme)
	}
}

func TestLoadOrDefaultHighlightDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[highlight]\nenabled = false\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Highlight.Enabled {
		t.Error("Highlight.Enabled = true, want false from file")
	}
	if cfg.Highlight.Style != "monokai" {
		t.Errorf("Highlight.Style = %q, want default monokai", cfg.Highlight.Style)
	}
}

func TestMergeKeepsHighlightWhenUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[highlight]\nstyle = \"dracula\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if !cfg.Highlight.Enabled || cfg.Highlight.Style != "dracula" {
		t.Errorf("Highlight = %+v, want enabled dracula", cfg.Highlight)
	}
}

func TestLoadOrDefaultMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[timing\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("LoadOrDefault() expected error for malformed file")
	}
}

func TestIntervals(t *testing.T) {
	cfg := Default()
	cfg.Timing.TickRate = 4
	cfg.Timing.FrameRate = 0
	if got := cfg.TickInterval(); got != 250*time.Millisecond {
		t.Errorf("TickInterval() = %v, want 250ms", got)
	}
	defaultRate := DefaultFrameRate
	if got, want := cfg.FrameInterval(), time.Duration(float64(time.Second)/defaultRate); got != want {
		t.Errorf("FrameInterval() = %v, want %v", got, want)
	}
}

func TestSavePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}

func TestPaths(t *testing.T) {
	if !strings.HasSuffix(Path(), filepath.Join(".papirus", "config.toml")) {
		t.Errorf("Path() = %q, want suffix .papirus/config.toml", Path())
	}
	if !strings.HasSuffix(LogPath(), filepath.Join(".papirus", "logs", "papirus.log")) {
		t.Errorf("LogPath() = %q", LogPath())
	}
}
