package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultTickRate  = 4.0
	DefaultFrameRate = 60.0
)

// Config represents ~/.papirus/config.toml.
type Config struct {
	Timing      Timing                       `toml:"timing"`
	HTTP        HTTP                         `toml:"http"`
	Keybindings map[string]map[string]string `toml:"keybindings"`
	Theme       Theme                        `toml:"theme"`
	Highlight   Highlight                    `toml:"highlight"`

	// meta records which keys the loaded file set.
	meta *toml.MetaData
}

// Timing holds the tick and render rates, in events per second.
type Timing struct {
	TickRate  float64 `toml:"tick_rate"`
	FrameRate float64 `toml:"frame_rate"`
}

// HTTP configures the transport.
type HTTP struct {
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

// Theme holds colors by tcell name or #rrggbb.
type Theme struct {
	Background  string `toml:"background"`
	Foreground  string `toml:"foreground"`
	Border      string `toml:"border"`
	BorderFocus string `toml:"border_focus"`
	Title       string `toml:"title"`
	TabActive   string `toml:"tab_active"`
	TabInactive string `toml:"tab_inactive"`
	StatusOK    string `toml:"status_ok"`
	StatusWarn  string `toml:"status_warn"`
	StatusErr   string `toml:"status_err"`
	Placeholder string `toml:"placeholder"`
}

// Highlight configures response syntax highlighting.
type Highlight struct {
	Enabled bool   `toml:"enabled"`
	Style   string `toml:"style"`
}

// Duration is a time.Duration that decodes from strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timing: Timing{
			TickRate:  DefaultTickRate,
			FrameRate: DefaultFrameRate,
		},
		HTTP: HTTP{
			Timeout:   Duration{30 * time.Second},
			UserAgent: "papirus",
		},
		Keybindings: map[string]map[string]string{
			"global": {
				"force_quit": "ctrl+c",
			},
			"home": {
				"quit":           "q",
				"focus_url":      "u",
				"edit_url":       "e",
				"focus_request":  "r",
				"focus_response": "s",
				"suspend":        "ctrl+z",
				"redraw":         "ctrl+l",
			},
			"url": {
				"submit":      "enter",
				"back":        "esc",
				"next_method": "down",
				"prev_method": "up",
			},
			"request": {
				"prev_tab": "left",
				"next_tab": "right",
				"edit_tab": "enter",
				"back":     "esc",
			},
			"editor": {
				"back": "esc",
			},
			"response": {
				"prev_tab":  "left",
				"next_tab":  "right",
				"copy_body": "y",
				"back":      "esc",
			},
		},
		Theme: Theme{
			Background:  "black",
			Foreground:  "white",
			Border:      "darkgray",
			BorderFocus: "white",
			Title:       "fuchsia",
			TabActive:   "dodgerblue",
			TabInactive: "slategray",
			StatusOK:    "green",
			StatusWarn:  "orange",
			StatusErr:   "orangered",
			Placeholder: "gray",
		},
		Highlight: Highlight{
			Enabled: true,
			Style:   "monokai",
		},
	}
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.meta = &md
	return &cfg, nil
}

// LoadOrDefault reads path and merges it over Default. A missing file yields
// the defaults; a malformed one is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	loaded, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	cfg.Merge(loaded)
	return cfg, nil
}

// Merge overlays every non-zero value of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Timing.TickRate > 0 {
		c.Timing.TickRate = other.Timing.TickRate
	}
	if other.Timing.FrameRate > 0 {
		c.Timing.FrameRate = other.Timing.FrameRate
	}
	if other.HTTP.Timeout.Duration > 0 {
		c.HTTP.Timeout = other.HTTP.Timeout
	}
	if other.HTTP.UserAgent != "" {
		c.HTTP.UserAgent = other.HTTP.UserAgent
	}
	for scope, bindings := range other.Keybindings {
		if c.Keybindings[scope] == nil {
			c.Keybindings[scope] = make(map[string]string)
		}
		for name, key := range bindings {
			c.Keybindings[scope][name] = key
		}
	}
	mergeString(&c.Theme.Background, other.Theme.Background)
	mergeString(&c.Theme.Foreground, other.Theme.Foreground)
	mergeString(&c.Theme.Border, other.Theme.Border)
	mergeString(&c.Theme.BorderFocus, other.Theme.BorderFocus)
	mergeString(&c.Theme.Title, other.Theme.Title)
	mergeString(&c.Theme.TabActive, other.Theme.TabActive)
	mergeString(&c.Theme.TabInactive, other.Theme.TabInactive)
	mergeString(&c.Theme.StatusOK, other.Theme.StatusOK)
	mergeString(&c.Theme.StatusWarn, other.Theme.StatusWarn)
	mergeString(&c.Theme.StatusErr, other.Theme.StatusErr)
	mergeString(&c.Theme.Placeholder, other.Theme.Placeholder)
	if other.isSet(other.Highlight.Enabled, "highlight", "enabled") {
		c.Highlight.Enabled = other.Highlight.Enabled
	}
	mergeString(&c.Highlight.Style, other.Highlight.Style)
}

// isSet reports whether a boolean key counts as configured. For a loaded
// file that is whether the key appears in it, so false can override true.
func (c *Config) isSet(v bool, key ...string) bool {
	if c.meta == nil {
		return v
	}
	return c.meta.IsDefined(key...)
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// TickInterval converts the tick rate into a ticker period.
func (c *Config) TickInterval() time.Duration {
	return rateToInterval(c.Timing.TickRate, DefaultTickRate)
}

// FrameInterval converts the frame rate into a ticker period.
func (c *Config) FrameInterval() time.Duration {
	return rateToInterval(c.Timing.FrameRate, DefaultFrameRate)
}

func rateToInterval(rate, fallback float64) time.Duration {
	if rate <= 0 {
		rate = fallback
	}
	return time.Duration(float64(time.Second) / rate)
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
