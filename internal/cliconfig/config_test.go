package cliconfig

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServiceURL != DefaultServiceURL {
		t.Errorf("ServiceURL = %s, want %s", cfg.ServiceURL, DefaultServiceURL)
	}
	if cfg.QueueCapacity != 200 {
		t.Errorf("QueueCapacity = %d, want 200", cfg.QueueCapacity)
	}
	if cfg.MaxBatchSize != 10 {
		t.Errorf("MaxBatchSize = %d, want 10", cfg.MaxBatchSize)
	}
	if cfg.CollectTimeout != 100*time.Millisecond {
		t.Errorf("CollectTimeout = %v, want 100ms", cfg.CollectTimeout)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", cfg.BaseDelay)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing service url", func(c *Config) { c.ServiceURL = "" }, "service-url"},
		{"zero capacity", func(c *Config) { c.QueueCapacity = 0 }, "queue capacity"},
		{"zero batch size", func(c *Config) { c.MaxBatchSize = 0 }, "max batch size"},
		{"batch larger than queue", func(c *Config) { c.MaxBatchSize = 500 }, "exceeds queue capacity"},
		{"zero collect timeout", func(c *Config) { c.CollectTimeout = 0 }, "collect timeout"},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }, "max attempts"},
		{"zero base delay", func(c *Config) { c.BaseDelay = 0 }, "base delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateTrimsTrailingSlash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceURL = "http://inference:8000/"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if cfg.ServiceURL != "http://inference:8000" {
		t.Errorf("ServiceURL = %s, want trailing slash trimmed", cfg.ServiceURL)
	}
}
