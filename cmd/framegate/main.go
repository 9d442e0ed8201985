package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/vigil-labs/framegate"
	"github.com/vigil-labs/framegate/internal/cliconfig"
	pkglog "github.com/vigil-labs/framegate/pkg/log"
)

const helpDescription = `
Ingest camera frames, batch them, and dispatch batches to a
fall-detection inference service with bounded retries.

Frames arrive over the gateway HTTP API (POST /frames) or from a spool
directory watched for new image files. A bounded queue absorbs bursts;
when it fills, the oldest frame is evicted so the newest is always
admitted. Configure via file, environment (FRAMEGATE_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  framegate --service-url http://inference:8000 --auth-key <api-key>
  framegate --spool-dir /var/spool/frames --max-batch-size 5
  framegate --config $HOME/.framegate/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "framegate",
		Short:   "Batch and dispatch camera frames to a fall-detection inference service",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config precedence: defaults < file < env < flags.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking the API key)
			logCfg := cfg
			if len(logCfg.AuthKey) > 0 {
				logCfg.AuthKey = "*****"
			}
			log.Info().Interface("config", logCfg).Msg("configuration")

			logger := pkglog.NewZerologAdapterWithLogger(log)

			gw, err := framegate.New(cfg, framegate.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("create gateway: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := gw.Start(ctx); err != nil {
				return fmt.Errorf("start gateway: %w", err)
			}

			// Detect a crash of the processing loop
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := gw.Status()
						if status == framegate.StateStopped || status == framegate.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
			case <-doneCh:
				if gw.Status() == framegate.StateCrashed {
					log.Error().Msg("gateway crashed")
				}
			}

			if err := gw.Stop(); err != nil {
				return fmt.Errorf("stop gateway: %w", err)
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.framegate/config.toml)")

	root.Flags().StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "base URL of the inference service")
	root.Flags().StringVar(&cfg.AuthKey, "auth-key", cfg.AuthKey, "API key for authentication")
	root.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "gateway API listen address (empty disables)")
	root.Flags().StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "directory watched for new frame files (optional)")

	root.Flags().IntVar(&cfg.QueueCapacity, "queue-capacity", cfg.QueueCapacity, "maximum frames held in the queue")
	root.Flags().IntVar(&cfg.MaxBatchSize, "max-batch-size", cfg.MaxBatchSize, "maximum frames per dispatch batch")
	root.Flags().IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "delivery attempts per batch")

	root.Flags().DurationVar(&cfg.CollectTimeout, "collect-timeout", cfg.CollectTimeout, "wait per frame while building a batch")
	root.Flags().DurationVar(&cfg.IdleSleep, "idle-sleep", cfg.IdleSleep, "pause after an empty collection round")
	root.Flags().DurationVar(&cfg.BaseDelay, "base-delay", cfg.BaseDelay, "base delay for retry backoff")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("framegate")
		os.Exit(1)
	}
}
