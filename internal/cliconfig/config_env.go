package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (FRAMEGATE_*). It respects flags that have been explicitly set
// (changed map). Returns an error if a variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("service-url", os.Getenv("FRAMEGATE_SERVICE_URL"), &cfg.ServiceURL)
	s.setString("auth-key", os.Getenv("FRAMEGATE_AUTH_KEY"), &cfg.AuthKey)
	s.setString("listen", os.Getenv("FRAMEGATE_LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("spool-dir", os.Getenv("FRAMEGATE_SPOOL_DIR"), &cfg.SpoolDir)

	if err := s.setIntFromString("queue-capacity", os.Getenv("FRAMEGATE_QUEUE_CAPACITY"), &cfg.QueueCapacity); err != nil {
		return err
	}
	if err := s.setIntFromString("max-batch-size", os.Getenv("FRAMEGATE_MAX_BATCH_SIZE"), &cfg.MaxBatchSize); err != nil {
		return err
	}
	if err := s.setIntFromString("max-attempts", os.Getenv("FRAMEGATE_MAX_ATTEMPTS"), &cfg.MaxAttempts); err != nil {
		return err
	}

	if err := s.setDuration("collect-timeout", os.Getenv("FRAMEGATE_COLLECT_TIMEOUT"), &cfg.CollectTimeout); err != nil {
		return err
	}
	if err := s.setDuration("idle-sleep", os.Getenv("FRAMEGATE_IDLE_SLEEP"), &cfg.IdleSleep); err != nil {
		return err
	}
	if err := s.setDuration("base-delay", os.Getenv("FRAMEGATE_BASE_DELAY"), &cfg.BaseDelay); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("FRAMEGATE_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	return nil
}
