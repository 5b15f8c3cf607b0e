package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
)

type Config struct {
	General       GeneralConfig       `toml:"general"`
	Session       SessionConfig       `toml:"session"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type GeneralConfig struct {
	Interval int    `toml:"interval"` // periodic refresh, seconds
	Timezone string `toml:"timezone"`
	Language string `toml:"language"`
	CostMode string `toml:"cost_mode"` // auto, display, calculate
}

type SessionConfig struct {
	WindowHours          int `toml:"window_hours"`
	ActivityToleranceMin int `toml:"activity_tolerance_min"`
	TokenLimit           int `toml:"token_limit"` // 0 = infer from history
}

type NotificationsConfig struct {
	Enabled bool `toml:"enabled"`
	Bell    bool `toml:"bell"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Interval: 10,
			Timezone: "UTC",
			Language: "en",
			CostMode: "auto",
		},
		Session: SessionConfig{
			WindowHours:          5,
			ActivityToleranceMin: 30,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Bell:    true,
		},
	}
}

// BlockOptions translates the session section into windowing parameters.
func (c Config) BlockOptions() domain.BlockOptions {
	return domain.BlockOptions{
		Window:            time.Duration(c.Session.WindowHours) * time.Hour,
		ActivityTolerance: time.Duration(c.Session.ActivityToleranceMin) * time.Minute,
	}
}

func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "claude-usage", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
