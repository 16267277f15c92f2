package commands

import (
	"github.com/penwyp/go-step-monitor/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	historyOutput string
	historyWidth  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the 10-day step history",
	Long: `Prints the stored daily history, newest day first. Today's row shows the
last saved counter.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", formatter.FormatTable,
		"Output format (table, chart, json, csv, summary)")
	historyCmd.Flags().StringVar(&historyOutput, "format", "",
		"Alias for --output")
	historyCmd.Flags().IntVar(&historyWidth, "width", 0,
		"Chart width (0 = default)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	out, err := formatter.New(historyOutput, cmd.OutOrStdout(), historyWidth)
	if err != nil {
		return err
	}

	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	entries, err := env.history.View()
	if err != nil {
		return err
	}
	return out.Format(entries)
}
