// Package config handles loading and saving glossnet configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/glossnet/config.yaml
//   - State:   ~/.local/state/glossnet/ (access flag)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "glossnet"

// DefaultPasskey unlocks the viewer when no other passkey is configured.
const DefaultPasskey = "critical2025"

// DataConfig locates the dataset and its media folder.
type DataConfig struct {
	Path     string `yaml:"path,omitempty"`      // CSV, or a .sqlite3/.db export
	MediaDir string `yaml:"media_dir,omitempty"` // Folder holding local media files
}

// AccessConfig holds the gate's passkey.
type AccessConfig struct {
	Passkey string `yaml:"passkey,omitempty"`
}

// NetworkConfig tunes the node network view.
type NetworkConfig struct {
	FrameIntervalMS int    `yaml:"frame_interval_ms,omitempty"`
	Seed            uint64 `yaml:"seed,omitempty"` // 0 = time-based
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultView string  `yaml:"default_view,omitempty"` // directory, network
	SplitRatio  float64 `yaml:"split_ratio,omitempty"`  // Width share of the left pane (0.2-0.8)
}

// ExportConfig sizes snapshot images.
type ExportConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Data    DataConfig    `yaml:"data,omitempty"`
	Access  AccessConfig  `yaml:"access,omitempty"`
	Network NetworkConfig `yaml:"network,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	Export  ExportConfig  `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Path:     "data.csv",
			MediaDir: "media",
		},
		Access: AccessConfig{Passkey: DefaultPasskey},
		Network: NetworkConfig{
			FrameIntervalMS: 33,
		},
		UI: UIConfig{
			DefaultView: "directory",
			SplitRatio:  0.55,
		},
		Export: ExportConfig{
			Width:  1200,
			Height: 800,
		},
	}
}

// ConfigDir returns the XDG config directory.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback, appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	cfg.Data.Path = expandHome(cfg.Data.Path)
	cfg.Data.MediaDir = expandHome(cfg.Data.MediaDir)
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Access.Passkey == "" {
		c.Access.Passkey = def.Access.Passkey
	}
	if c.Network.FrameIntervalMS <= 0 {
		c.Network.FrameIntervalMS = def.Network.FrameIntervalMS
	}
	if c.UI.SplitRatio < 0.2 || c.UI.SplitRatio > 0.8 {
		c.UI.SplitRatio = def.UI.SplitRatio
	}
	if c.Export.Width <= 0 {
		c.Export.Width = def.Export.Width
	}
	if c.Export.Height <= 0 {
		c.Export.Height = def.Export.Height
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FrameInterval is the network redraw period.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.Network.FrameIntervalMS) * time.Millisecond
}

// ResolvedMediaDir returns the media folder, relative to the dataset when
// the configured path is relative.
func (c Config) ResolvedMediaDir() string {
	dir := c.Data.MediaDir
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(c.Data.Path), dir)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
