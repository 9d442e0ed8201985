// Package cliconfig holds the gateway configuration and its three-layer
// loading: defaults, then TOML file, then environment, then flags.
// Explicitly set flags always win.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultServiceURL is the default inference service endpoint.
const DefaultServiceURL = "http://localhost:8000"

// Config holds gateway configuration. All values are fixed at startup;
// there is no hot reload.
type Config struct {
	// ServiceURL is the base URL of the inference service.
	ServiceURL string

	// AuthKey authenticates against the inference service. Optional.
	AuthKey string

	// ListenAddr is the gateway API listen address. Empty disables the
	// HTTP surface (embedded use).
	ListenAddr string

	// SpoolDir, when set, enables the spool-directory producer.
	SpoolDir string

	// QueueCapacity bounds the frame queue.
	QueueCapacity int

	// MaxBatchSize bounds a dispatch batch. The inference service refuses
	// batches over 10 images.
	MaxBatchSize int

	// CollectTimeout is the per-item dequeue wait while building a batch.
	CollectTimeout time.Duration

	// IdleSleep is the pause after an empty collection round.
	IdleSleep time.Duration

	// MaxAttempts bounds delivery attempts per batch.
	MaxAttempts int

	// BaseDelay seeds the exponential retry backoff.
	BaseDelay time.Duration

	// HTTPTimeout bounds each request to the inference service.
	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServiceURL:     DefaultServiceURL,
		ListenAddr:     ":8080",
		QueueCapacity:  200,
		MaxBatchSize:   10,
		CollectTimeout: 100 * time.Millisecond,
		IdleSleep:      50 * time.Millisecond,
		MaxAttempts:    3,
		BaseDelay:      time.Second,
		HTTPTimeout:    15 * time.Second,
		AuthKey:        os.Getenv("FRAMEGATE_AUTH_KEY"),
	}
}

// SetDefaults fills unset fields with default values. ListenAddr is
// left alone: empty means the HTTP surface is disabled.
func (c *Config) SetDefaults() {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = 200
	}
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = 10
	}
	if c.CollectTimeout == 0 {
		c.CollectTimeout = 100 * time.Millisecond
	}
	if c.IdleSleep == 0 {
		c.IdleSleep = 50 * time.Millisecond
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.BaseDelay == 0 {
		c.BaseDelay = time.Second
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 15 * time.Second
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("service-url is required")
	}
	// Ensure no trailing slash
	if c.ServiceURL[len(c.ServiceURL)-1] == '/' {
		c.ServiceURL = c.ServiceURL[:len(c.ServiceURL)-1]
	}

	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue capacity must be positive")
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("max batch size must be positive")
	}
	if c.MaxBatchSize > c.QueueCapacity {
		return fmt.Errorf("max batch size %d exceeds queue capacity %d", c.MaxBatchSize, c.QueueCapacity)
	}
	if c.CollectTimeout <= 0 {
		return fmt.Errorf("collect timeout must be positive")
	}
	if c.IdleSleep <= 0 {
		return fmt.Errorf("idle sleep must be positive")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be positive")
	}
	if c.BaseDelay <= 0 {
		return fmt.Errorf("base delay must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag
// not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if
// valid. Used for environment variables.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
