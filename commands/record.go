package commands

import (
	"fmt"
	"io"

	"github.com/penwyp/go-step-monitor/internal/application/monitor"
	"github.com/penwyp/go-step-monitor/internal/presentation/display"
	"github.com/penwyp/go-step-monitor/internal/presentation/layout"
	"github.com/penwyp/go-step-monitor/internal/sensor"
	"github.com/penwyp/go-step-monitor/internal/util"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record <cumulative-steps>",
	Short: "Feed one sensor reading and save today's counter",
	Long: `Applies one cumulative sensor value the way the live monitor would and saves
the daily counter. The first reading of a day becomes the day baseline.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	value, err := sensor.ParseReading([]byte(args[0]))
	if err != nil {
		return err
	}

	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	clock := util.GetTimeProvider()
	source := sensor.NewChannelSource(1)
	source.Push(value, clock.Now())
	_ = source.Close()

	screen := display.NewTerminalDisplay(io.Discard, display.DisplayConfig{LayoutStyle: layout.StyleMinimal})
	orchestrator, err := monitor.NewOrchestrator(monitor.MonitorConfig{
		PersistInterval: env.cfg.PersistInterval,
		ExitOnSourceEnd: true,
	}, env.history, source, screen, nil, clock)
	if err != nil {
		return err
	}
	if err := orchestrator.Run(contextOf(cmd)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Today: %d steps\n", env.history.Counter().TotalDailySteps)
	return nil
}
