package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to keep the
// TOML friendly.
type FileConfig struct {
	ServiceURL     string `toml:"service_url"`
	AuthKey        string `toml:"api_key"`
	ListenAddr     string `toml:"listen_addr"`
	SpoolDir       string `toml:"spool_dir"`
	QueueCapacity  int    `toml:"queue_capacity"`
	MaxBatchSize   int    `toml:"max_batch_size"`
	CollectTimeout string `toml:"collect_timeout"`
	IdleSleep      string `toml:"idle_sleep"`
	MaxAttempts    int    `toml:"max_attempts"`
	BaseDelay      string `toml:"base_delay"`
	HTTPTimeout    string `toml:"http_timeout"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.framegate/config.toml, or "" if the home directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".framegate", "config.toml")
	}
	return ""
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("service-url", fc.ServiceURL, &cfg.ServiceURL)
	s.setString("auth-key", fc.AuthKey, &cfg.AuthKey)
	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("spool-dir", fc.SpoolDir, &cfg.SpoolDir)

	s.setInt("queue-capacity", fc.QueueCapacity, &cfg.QueueCapacity)
	s.setInt("max-batch-size", fc.MaxBatchSize, &cfg.MaxBatchSize)
	s.setInt("max-attempts", fc.MaxAttempts, &cfg.MaxAttempts)

	if err := s.setDuration("collect-timeout", fc.CollectTimeout, &cfg.CollectTimeout); err != nil {
		return err
	}
	if err := s.setDuration("idle-sleep", fc.IdleSleep, &cfg.IdleSleep); err != nil {
		return err
	}
	if err := s.setDuration("base-delay", fc.BaseDelay, &cfg.BaseDelay); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	return nil
}
