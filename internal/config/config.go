// Package config loads the lectern application configuration from a YAML
// file with LECTERN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/phanxgames/lectern"
	"github.com/phanxgames/lectern/internal/logging"
)

// EnvPrefix marks environment variables that override file settings.
// A double underscore separates nested keys: LECTERN_WINDOW__WIDTH=1600.
const EnvPrefix = "LECTERN_"

// DefaultPath is the config file the CLI reads when --config is not given.
const DefaultPath = "lectern.yml"

// Config is the top-level configuration, corresponding to lectern.yml.
type Config struct {
	Window        WindowConfig  `yaml:"window" koanf:"window"`
	LogLevel      string        `yaml:"log_level" koanf:"log_level"`
	Stats         bool          `yaml:"stats" koanf:"stats"`
	Debug         bool          `yaml:"debug" koanf:"debug"`
	ScreenshotDir string        `yaml:"screenshot_dir" koanf:"screenshot_dir"`
	Theme         ThemeConfig   `yaml:"theme" koanf:"theme"`
	Timings       TimingsConfig `yaml:"timings" koanf:"timings"`
}

// WindowConfig sizes the presentation window.
type WindowConfig struct {
	Title      string `yaml:"title" koanf:"title"`
	Width      int    `yaml:"width" koanf:"width"`
	Height     int    `yaml:"height" koanf:"height"`
	Fullscreen bool   `yaml:"fullscreen" koanf:"fullscreen"`
}

// ThemeConfig holds theme colors as #rrggbb strings.
type ThemeConfig struct {
	Background string `yaml:"background" koanf:"background"`
	Slide      string `yaml:"slide" koanf:"slide"`
	Text       string `yaml:"text" koanf:"text"`
	Muted      string `yaml:"muted" koanf:"muted"`
	Accent     string `yaml:"accent" koanf:"accent"`
	Banner     string `yaml:"banner" koanf:"banner"`
}

// TimingsConfig mirrors lectern.Timings. Durations accept Go duration
// strings such as "300ms".
type TimingsConfig struct {
	Reveal          time.Duration `yaml:"reveal" koanf:"reveal"`
	Settle          time.Duration `yaml:"settle" koanf:"settle"`
	ResizeDebounce  time.Duration `yaml:"resize_debounce" koanf:"resize_debounce"`
	FullscreenDelay time.Duration `yaml:"fullscreen_delay" koanf:"fullscreen_delay"`
	CounterDuration time.Duration `yaml:"counter_duration" koanf:"counter_duration"`
	RingDuration    time.Duration `yaml:"ring_duration" koanf:"ring_duration"`
	RingFill        float64       `yaml:"ring_fill" koanf:"ring_fill"`
	BannerHold      time.Duration `yaml:"banner_hold" koanf:"banner_hold"`
	BannerFade      time.Duration `yaml:"banner_fade" koanf:"banner_fade"`
	ChromeIdle      time.Duration `yaml:"chrome_idle" koanf:"chrome_idle"`
	ChromeReveal    time.Duration `yaml:"chrome_reveal" koanf:"chrome_reveal"`
	ChromeFade      time.Duration `yaml:"chrome_fade" koanf:"chrome_fade"`
}

// Default returns the configuration used when no file or env override is
// present.
func Default() *Config {
	t := lectern.DefaultTimings()
	return &Config{
		Window: WindowConfig{
			Title:  "lectern",
			Width:  1280,
			Height: 720,
		},
		LogLevel:      "info",
		ScreenshotDir: "screenshots",
		Theme:         themeConfig(lectern.DefaultTheme()),
		Timings: TimingsConfig{
			Reveal:          t.Reveal,
			Settle:          t.Settle,
			ResizeDebounce:  t.ResizeDebounce,
			FullscreenDelay: t.FullscreenDelay,
			CounterDuration: t.CounterDuration,
			RingDuration:    t.RingDuration,
			RingFill:        t.RingFill,
			BannerHold:      t.BannerHold,
			BannerFade:      t.BannerFade,
			ChromeIdle:      t.ChromeIdle,
			ChromeReveal:    t.ChromeReveal,
			ChromeFade:      t.ChromeFade,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey maps LECTERN_WINDOW__WIDTH to window.width.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.Theme.Theme(); err != nil {
		return err
	}
	t := c.Timings
	durations := map[string]time.Duration{
		"reveal":           t.Reveal,
		"settle":           t.Settle,
		"resize_debounce":  t.ResizeDebounce,
		"fullscreen_delay": t.FullscreenDelay,
		"counter_duration": t.CounterDuration,
		"ring_duration":    t.RingDuration,
		"banner_hold":      t.BannerHold,
		"banner_fade":      t.BannerFade,
		"chrome_idle":      t.ChromeIdle,
		"chrome_reveal":    t.ChromeReveal,
		"chrome_fade":      t.ChromeFade,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("timings.%s must be non-negative", name)
		}
	}
	if t.Reveal > t.Settle {
		return fmt.Errorf("timings.reveal (%s) must not exceed timings.settle (%s)", t.Reveal, t.Settle)
	}
	if t.RingFill < 0 || t.RingFill > 1 {
		return fmt.Errorf("timings.ring_fill %v must be within [0, 1]", t.RingFill)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() slog.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}

// LecternTimings converts the timings section for lectern.WithTimings.
func (c *Config) LecternTimings() lectern.Timings {
	t := c.Timings
	return lectern.Timings{
		Reveal:          t.Reveal,
		Settle:          t.Settle,
		ResizeDebounce:  t.ResizeDebounce,
		FullscreenDelay: t.FullscreenDelay,
		CounterDuration: t.CounterDuration,
		RingDuration:    t.RingDuration,
		RingFill:        t.RingFill,
		BannerHold:      t.BannerHold,
		BannerFade:      t.BannerFade,
		ChromeIdle:      t.ChromeIdle,
		ChromeReveal:    t.ChromeReveal,
		ChromeFade:      t.ChromeFade,
	}
}

// ErrBadColor is returned for theme values that are not #rrggbb.
var ErrBadColor = errors.New("color must be #rrggbb")

// Theme parses the configured colors.
func (tc ThemeConfig) Theme() (lectern.Theme, error) {
	var th lectern.Theme
	fields := []struct {
		name string
		in   string
		out  *lectern.Color
	}{
		{"background", tc.Background, &th.Background},
		{"slide", tc.Slide, &th.Slide},
		{"text", tc.Text, &th.Text},
		{"muted", tc.Muted, &th.Muted},
		{"accent", tc.Accent, &th.Accent},
		{"banner", tc.Banner, &th.Banner},
	}
	for _, f := range fields {
		c, err := ParseColor(f.in)
		if err != nil {
			return lectern.Theme{}, fmt.Errorf("theme.%s %q: %w", f.name, f.in, err)
		}
		*f.out = c
	}
	return th, nil
}

// ParseColor parses a #rrggbb hex color.
func ParseColor(s string) (lectern.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return lectern.Color{}, ErrBadColor
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return lectern.Color{}, ErrBadColor
	}
	return lectern.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// FormatColor renders c as #rrggbb.
func FormatColor(c lectern.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(v*255 + 0.5)
}

func themeConfig(th lectern.Theme) ThemeConfig {
	return ThemeConfig{
		Background: FormatColor(th.Background),
		Slide:      FormatColor(th.Slide),
		Text:       FormatColor(th.Text),
		Muted:      FormatColor(th.Muted),
		Accent:     FormatColor(th.Accent),
		Banner:     FormatColor(th.Banner),
	}
}
