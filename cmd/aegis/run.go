package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"gravimed/aegis/pkg/audit"
	"gravimed/aegis/pkg/audit/retention"
	"gravimed/aegis/pkg/audit/storage"
	"gravimed/aegis/pkg/cli"
	"gravimed/aegis/pkg/config"
	"gravimed/aegis/pkg/controller"
	"gravimed/aegis/pkg/enhancement"
	"gravimed/aegis/pkg/safety"
	"gravimed/aegis/pkg/telemetry/health"
	"gravimed/aegis/pkg/telemetry/logging"
	"gravimed/aegis/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	profile       string
	dryRun        bool
	demo          bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Aegis safety controller",
	Long: `Start the safety controller with the specified configuration.

The controller arms the safety monitors for the configured biological
profile and serves status, health, and metrics endpoints on the admin
address.

Examples:
  # Start with default config
  aegis run

  # Start with custom config
  aegis run --config /etc/aegis/config.yaml

  # Override the safety profile
  aegis run --profile neural_ultra_safe

  # Validate config without arming the monitors
  aegis run --dry-run

  # Drive a synthetic field for demonstration
  aegis run --demo`,
	RunE: runController,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override admin listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runFlags.profile, "profile", "", "override safety profile")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without arming the monitors")
	runCmd.Flags().BoolVar(&runFlags.demo, "demo", false, "drive a synthetic field (no generator hardware)")
}

func runController(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Admin.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if runFlags.profile != "" {
		if _, err := safety.ParseProfile(runFlags.profile); err != nil {
			return cli.NewConfigError("safety.profile", err.Error())
		}
		cfg.Safety.Profile = runFlags.profile
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		constraints, err := safety.ConstraintsFor(safety.Profile(cfg.Safety.Profile))
		if err != nil {
			return cli.NewConfigError("safety.profile", err.Error())
		}
		fmt.Println("✓ Configuration valid")
		fmt.Printf("  Profile: %s (max field %.3g T)\n", cfg.Safety.Profile, constraints.MaxFieldStrength)
		return nil
	}

	printBanner(cfg)

	// Metrics collector
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(metrics.Config{Enabled: true}, nil)
	}

	// Audit trail
	var recorder *audit.Recorder
	var pruner *retention.Pruner
	var sqliteStore *storage.SQLiteStorage
	if cfg.Audit.Enabled {
		slog.Info("initializing audit trail", "backend", cfg.Audit.Backend)

		var auditStorage audit.Storage
		switch cfg.Audit.Backend {
		case "sqlite":
			sqliteCfg := storage.DefaultSQLiteConfig()
			sqliteCfg.Path = cfg.Audit.SQLitePath
			sqliteStore, err = storage.NewSQLiteStorage(sqliteCfg, logger)
			if err != nil {
				return fmt.Errorf("failed to create SQLite storage: %w", err)
			}
			auditStorage = sqliteStore
		case "memory":
			auditStorage = storage.NewMemoryStorage()
		default:
			return fmt.Errorf("unsupported audit backend: %s", cfg.Audit.Backend)
		}
		defer auditStorage.Close()

		recorder = audit.NewRecorder(auditStorage, &audit.RecorderConfig{
			Enabled:      true,
			AsyncBuffer:  cfg.Audit.AsyncBuffer,
			WriteTimeout: cfg.Audit.WriteTimeout,
		}, logger)
		defer recorder.Close()

		if cfg.Audit.Retention.Schedule != "" {
			pruner = retention.NewPruner(auditStorage, &retention.Config{
				RetentionDays: cfg.Audit.Retention.Days,
				PruneSchedule: cfg.Audit.Retention.Schedule,
				MaxEvents:     cfg.Audit.Retention.MaxEvents,
			}, logger)
			if err := pruner.Start(context.Background()); err != nil {
				slog.Warn("failed to start retention scheduler", "error", err)
			} else {
				defer pruner.Stop()
				if next := pruner.NextPruning(); next != nil {
					slog.Debug("audit retention scheduler started", "next_pruning", next)
				}
			}
		}

		fmt.Println("✓ Audit trail initialized")
	}

	// Safety controller
	ctrl, err := controller.New(controller.Config{
		Profile:                safety.Profile(cfg.Safety.Profile),
		GridResolution:         cfg.Safety.GridResolution,
		SafetyCheckInterval:    cfg.Monitor.SafetyCheckInterval,
		MonitoringFrequency:    cfg.Monitor.MonitoringFrequency,
		EmergencyWatchInterval: cfg.Monitor.EmergencyWatchInterval,
		TaskJoinTimeout:        cfg.Monitor.TaskJoinTimeout,
		EmergencyProtocols:     cfg.Safety.EmergencyProtocols,
		Enhancement: enhancement.Config{
			PolymerScale:     cfg.Enhancement.PolymerScale,
			ImmirziParameter: cfg.Enhancement.ImmirziParameter,
			NominalReduction: cfg.Enhancement.NominalReduction,
		},
		Logger:  logger,
		Metrics: collector,
		Audit:   recorder,
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if err := ctrl.Start(); err != nil {
		return cli.NewCommandError("run", err)
	}
	fmt.Printf("✓ Safety monitors armed (profile: %s)\n", cfg.Safety.Profile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if runFlags.demo {
		go runDemoGenerator(ctx, ctrl, cfg.Safety.GridResolution)
		fmt.Println("✓ Demo field generator running")
	}

	// Config reload watcher
	if cfg.Watch {
		watcher, err := config.NewFileWatcher(cfgFile, 500*time.Millisecond, logger)
		if err != nil {
			slog.Warn("failed to start config watcher", "error", err)
		} else {
			defer watcher.Stop()
			go func() {
				err := watcher.Watch(ctx, func(next *config.Config) {
					// Envelope changes require a restart; only runtime-neutral
					// sections can be picked up live.
					if next.Safety.Profile != cfg.Safety.Profile ||
						next.Safety.GridResolution != cfg.Safety.GridResolution {
						ctrl.FlagRestartRequired()
						slog.Warn("safety envelope changed on disk, restart required",
							"active_profile", cfg.Safety.Profile,
							"configured_profile", next.Safety.Profile,
						)
					}
					slog.Info("configuration file reloaded")
				})
				if err != nil {
					slog.Error("config watcher exited", "error", err)
				}
			}()
		}
	}

	// Admin server
	errChan := make(chan error, 1)
	var adminSrv *http.Server
	if cfg.Admin.Enabled {
		adminSrv = newAdminServer(cfg, ctrl, collector, sqliteStore)
		go func() {
			slog.Info("starting admin server", "address", cfg.Admin.ListenAddress)
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("admin server error: %w", err)
			}
		}()

		fmt.Println()
		fmt.Printf("✓ Admin endpoint on %s\n", cfg.Admin.ListenAddress)
		fmt.Printf("✓ Status: http://%s/status\n", cfg.Admin.ListenAddress)
		if cfg.Telemetry.Metrics.Enabled {
			fmt.Printf("✓ Metrics: http://%s%s\n", cfg.Admin.ListenAddress, cfg.Telemetry.Metrics.Path)
		}
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for shutdown signal or server error
	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		_ = ctrl.Stop()
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		if err := ctrl.Stop(); err != nil {
			slog.Error("controller stop failed", "error", err)
		}

		if adminSrv != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Admin.ShutdownTimeout)
			defer shutdownCancel()
			if err := adminSrv.Shutdown(shutdownCtx); err != nil {
				slog.Error("admin server shutdown failed", "error", err)
			}
		}

		fmt.Println("✓ Controller stopped")
		return nil
	}
}

// newAdminServer builds the admin HTTP server: status, health probes, and
// metrics.
func newAdminServer(cfg *config.Config, ctrl *controller.Controller, collector *metrics.Collector, sqliteStore *storage.SQLiteStorage) *http.Server {
	mux := http.NewServeMux()

	checker := health.New(5 * time.Second)
	checker.RegisterCheck("controller", func(ctx context.Context) error {
		if ctrl.State() == controller.StateEmergencyStopped {
			return fmt.Errorf("controller is emergency stopped")
		}
		return nil
	})
	if sqliteStore != nil {
		checker.RegisterCheck("audit_storage", sqliteStore.Ping)
	}
	health.Mount(mux, checker, Version, GitCommit, BuildDate)

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(ctrl.Status()); err != nil {
			slog.Error("status encoding failed", "error", err)
		}
	})

	if collector != nil {
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
	}

	return &http.Server{
		Addr:         cfg.Admin.ListenAddress,
		Handler:      mux,
		ReadTimeout:  cfg.Admin.ReadTimeout,
		WriteTimeout: cfg.Admin.WriteTimeout,
	}
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Aegis v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	slog.Debug("safety envelope",
		"profile", cfg.Safety.Profile,
		"grid_resolution", cfg.Safety.GridResolution,
		"emergency_protocols", cfg.Safety.EmergencyProtocols,
	)

	if cfg.Audit.Enabled {
		slog.Debug("audit enabled", "backend", cfg.Audit.Backend)
	}
}
