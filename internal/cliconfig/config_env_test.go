package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("FRAMEGATE_SERVICE_URL", "http://inference:8000")
	t.Setenv("FRAMEGATE_QUEUE_CAPACITY", "500")
	t.Setenv("FRAMEGATE_COLLECT_TIMEOUT", "250ms")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}

	if cfg.ServiceURL != "http://inference:8000" {
		t.Errorf("ServiceURL = %s", cfg.ServiceURL)
	}
	if cfg.QueueCapacity != 500 {
		t.Errorf("QueueCapacity = %d, want 500", cfg.QueueCapacity)
	}
	if cfg.CollectTimeout != 250*time.Millisecond {
		t.Errorf("CollectTimeout = %v, want 250ms", cfg.CollectTimeout)
	}
}

func TestApplyEnvConfig_FlagsWin(t *testing.T) {
	t.Setenv("FRAMEGATE_QUEUE_CAPACITY", "500")

	cfg := DefaultConfig()
	cfg.QueueCapacity = 42 // set via flag
	changed := map[string]bool{"queue-capacity": true}

	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}
	if cfg.QueueCapacity != 42 {
		t.Errorf("QueueCapacity = %d, flag value should win over env", cfg.QueueCapacity)
	}
}

func TestApplyEnvConfig_BadInt(t *testing.T) {
	t.Setenv("FRAMEGATE_MAX_ATTEMPTS", "three")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
		t.Error("ApplyEnvConfig returned nil for non-numeric value")
	}
}

func TestApplyEnvConfig_EmptyEnvKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	want := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}
	if cfg.QueueCapacity != want.QueueCapacity || cfg.CollectTimeout != want.CollectTimeout {
		t.Error("empty environment changed defaults")
	}
}
