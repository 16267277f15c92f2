package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/penwyp/go-step-monitor/internal/application/monitor"
	"github.com/penwyp/go-step-monitor/internal/presentation/display"
	"github.com/penwyp/go-step-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-step-monitor/internal/presentation/layout"
	"github.com/penwyp/go-step-monitor/internal/sensor"
	"github.com/penwyp/go-step-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	runSensorFile      string
	runPersistInterval time.Duration
	runCompact         bool
	runWidth           int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the step sensor and show live counters",
	Long: `Watches the sensor file and redraws today's steps, the session stopwatch and
the last two session results every second.

The sensor file holds the cumulative step count since boot; the last non-empty
line is read whenever the file changes.

Keys:
  r   save the session result and restart the stopwatch
  h   show or hide the 10-day history
  q   quit (Ctrl+C works too)`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runSensorFile, "sensor-file", "",
		"Cumulative step sensor file (default from config)")
	runCmd.Flags().DurationVar(&runPersistInterval, "persist-interval", 0,
		"Period of the background save (default from config)")
	runCmd.Flags().BoolVar(&runCompact, "compact", false,
		"One-line status instead of the full dashboard")
	runCmd.Flags().IntVar(&runWidth, "width", 0,
		"Dashboard width (0 = follow the terminal)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	runID := uuid.NewString()
	if logger := util.GetLogger(); logger != nil {
		util.SetLogger(logger.With(util.F("run_id", runID)))
	}

	sensorFile := env.cfg.SensorFile
	if runSensorFile != "" {
		sensorFile = runSensorFile
	}
	sensorFile = expandPath(sensorFile)
	if err := ensureDir(filepath.Dir(sensorFile)); err != nil {
		return fmt.Errorf("failed to create sensor directory: %w", err)
	}

	persistInterval := env.cfg.PersistInterval
	if runPersistInterval > 0 {
		persistInterval = runPersistInterval
	}

	clock := util.GetTimeProvider()
	source, err := sensor.NewFileSource(sensorFile, clock)
	if err != nil {
		return err
	}
	defer source.Close()

	interactive := interaction.IsTerminal()
	var input monitor.InputHandler
	if interactive {
		keyboard, err := interaction.NewKeyboardReader()
		if err != nil {
			return fmt.Errorf("failed to initialize keyboard: %w", err)
		}
		defer keyboard.Close()
		input = keyboard
	}

	style := layout.StyleFull
	if runCompact {
		style = layout.StyleMinimal
	}
	screen := display.NewTerminalDisplay(os.Stdout, display.DisplayConfig{
		LayoutStyle: style,
		Width:       runWidth,
	})

	orchestrator, err := monitor.NewOrchestrator(monitor.MonitorConfig{
		RunID:           runID,
		PersistInterval: persistInterval,
		Interactive:     interactive,
	}, env.history, source, screen, input, clock)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.LogInfo("Watching sensor", util.F("file", sensorFile), util.F("persist_interval", persistInterval.String()))
	return orchestrator.Run(ctx)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
