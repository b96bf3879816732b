// Package config loads vitrine's settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/3-lines-studio/vitrine/internal/adapters/env"
	"github.com/3-lines-studio/vitrine/internal/core"
)

const (
	StrategyInterp = "interp"
	StrategySave   = "save"

	DefaultPath = "vitrine.yaml"
)

// Config holds all vitrine configuration.
type Config struct {
	Title string `yaml:"title"`
	Addr  string `yaml:"addr"`
	Dev   bool   `yaml:"dev"`

	// Strategy picks how snapshots become units: "interp" loads them in
	// process, "save" posts them to a collaborator and waits for the
	// watcher.
	Strategy string `yaml:"strategy"`

	Editor  EditorConfig  `yaml:"editor"`
	Preview PreviewConfig `yaml:"preview"`
	Save    SaveConfig    `yaml:"save"`
	Logging LoggingConfig `yaml:"logging"`
}

type EditorConfig struct {
	Package        string            `yaml:"package"`
	Entry          string            `yaml:"entry"`
	GoVersion      string            `yaml:"go_version"`
	Aliases        map[string]string `yaml:"aliases"`
	AllowedImports []string          `yaml:"allowed_imports"`
	Delay          string            `yaml:"delay"`
}

type PreviewConfig struct {
	LoadTimeout   string `yaml:"load_timeout"`
	RenderTimeout string `yaml:"render_timeout"`
	// Source seeds the buffer instead of the bundled default component.
	Source string `yaml:"source"`
}

type SaveConfig struct {
	// URL is where snapshots are posted. Empty means this process serves
	// the save endpoint itself.
	URL         string `yaml:"url"`
	Path        string `yaml:"path"`
	Timeout     string `yaml:"timeout"`
	ReloadDelay string `yaml:"reload_delay"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:    "Vitrine",
		Addr:     "127.0.0.1:8080",
		Strategy: StrategyInterp,
		Editor: EditorConfig{
			Delay: "500ms",
		},
		Preview: PreviewConfig{
			LoadTimeout:   "5s",
			RenderTimeout: "2s",
		},
		Save: SaveConfig{
			Path:        filepath.Join(".vitrine", "preview", "preview.go"),
			Timeout:     "10s",
			ReloadDelay: "50ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VITRINE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("VITRINE_STRATEGY"); v != "" {
		c.Strategy = v
	}
	if v := os.Getenv("VITRINE_SAVE_URL"); v != "" {
		c.Save.URL = v
	}
	if v := os.Getenv("VITRINE_PREVIEW_PATH"); v != "" {
		c.Save.Path = v
	}
	if v := os.Getenv("VITRINE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if env.DetectMode() == core.ModeDev {
		c.Dev = true
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Strategy {
	case StrategyInterp, StrategySave:
	default:
		errs = append(errs, fmt.Errorf("unknown strategy %q (want %s or %s)", c.Strategy, StrategyInterp, StrategySave))
	}
	if c.Strategy == StrategySave && c.Save.Path == "" {
		errs = append(errs, errors.New("save.path is required for the save strategy"))
	}

	for name, v := range map[string]string{
		"editor.delay":           c.Editor.Delay,
		"preview.load_timeout":   c.Preview.LoadTimeout,
		"preview.render_timeout": c.Preview.RenderTimeout,
		"save.timeout":           c.Save.Timeout,
		"save.reload_delay":      c.Save.ReloadDelay,
	} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d < 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", name, v))
		}
	}

	for prefix := range c.Editor.Aliases {
		if prefix == "" || !strings.HasSuffix(prefix, "/") {
			errs = append(errs, fmt.Errorf("editor.aliases: prefix %q must end with /", prefix))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) IsSave() bool {
	return c.Strategy == StrategySave
}

func (c *Config) GetDelay() time.Duration {
	return parseDuration(c.Editor.Delay, 500*time.Millisecond)
}

func (c *Config) GetLoadTimeout() time.Duration {
	return parseDuration(c.Preview.LoadTimeout, 5*time.Second)
}

func (c *Config) GetRenderTimeout() time.Duration {
	return parseDuration(c.Preview.RenderTimeout, 2*time.Second)
}

func (c *Config) GetSaveTimeout() time.Duration {
	return parseDuration(c.Save.Timeout, 10*time.Second)
}

func (c *Config) GetReloadDelay() time.Duration {
	return parseDuration(c.Save.ReloadDelay, 50*time.Millisecond)
}

func parseDuration(v string, fallback time.Duration) time.Duration {
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
