package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-step-monitor/internal/config"
	"github.com/penwyp/go-step-monitor/internal/core/history"
	"github.com/penwyp/go-step-monitor/internal/data/kv"
	"github.com/penwyp/go-step-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Storage related
	dataDir string
	backend string

	// Configuration sources
	configFile string
	envFile    string
	timezone   string

	rootCmd = &cobra.Command{
		Use:   "go-step-monitor [command]",
		Short: "Step counter monitor with a 10-day history",
		Long: `go-step-monitor reads a cumulative step sensor, shows today's steps and a
session stopwatch, and keeps a rolling 10-day history in a local store.

Every command first rolls the stored history over to the current day.

Examples:
  go-step-monitor run                                 # Live monitor on ~/.go-step-monitor/sensor.txt
  go-step-monitor run --sensor-file /tmp/steps.txt    # Watch another sensor file
  go-step-monitor record 10432                        # Feed one sensor reading
  go-step-monitor history -o chart                    # Show the last 10 days as bars
  go-step-monitor history -o json --backend sqlite    # History from the sqlite store
  go-step-monitor reset --yes                         # Clear all stored data`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", config.DefaultDir,
		"Directory holding the step store")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", kv.BackendFile,
		"Store backend (file, sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone deciding where a day starts (e.g., Europe/Moscow, UTC)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile,
		"YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"dotenv file with STEPMON_* overrides")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func Execute() error {
	return rootCmd.Execute()
}

// environment is what every command needs: settings, logging and an opened,
// reconciled store
type environment struct {
	cfg     *config.Config
	store   kv.Store
	history *history.Store
}

// prepare loads the configuration, starts logging, opens the store and runs
// the day rollover
func prepare(cmd *cobra.Command) (*environment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(cfg); err != nil {
		return nil, err
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, err
	}

	dir := expandPath(cfg.Dir)
	if err := ensureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := kv.Open(cfg.Backend, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	util.LogDebug("Store opened", util.F("backend", cfg.Backend), util.F("dir", dir))

	env := &environment{
		cfg:     cfg,
		store:   store,
		history: history.NewStore(store, util.GetTimeProvider()),
	}

	result, err := env.history.Reconcile()
	if err != nil {
		// the in-memory state is still valid; the next save retries
		util.LogError("Failed to save reconciled history", util.F("error", err.Error()))
	}
	if result.RolledOver {
		util.LogInfo("Day rolled over", util.F("today", result.Today))
	}
	return env, nil
}

func (e *environment) close() {
	if err := e.store.Close(); err != nil {
		util.LogWarn("Failed to close store", util.F("error", err.Error()))
	}
	_ = util.CloseLogger()
}

// loadConfig layers the config file and environment under explicitly set
// flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(expandPath(configFile), envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = dataDir
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) error {
	logFile := expandPath(cfg.LogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return util.InitLogger(cfg.LogLevel, logFile, util.LogFormat(cfg.LogFormat), debug)
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
