package commands

import (
	"errors"
	"fmt"

	"github.com/penwyp/go-step-monitor/internal/util"
	"github.com/spf13/cobra"
)

var resetConfirmed bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the history, the daily counter and session results",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVarP(&resetConfirmed, "yes", "y", false,
		"Confirm clearing all stored data")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetConfirmed {
		return errors.New("refusing to clear stored data without --yes")
	}

	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.history.Clear(); err != nil {
		return err
	}
	util.LogInfo("Store cleared", util.F("backend", env.cfg.Backend))
	fmt.Fprintln(cmd.OutOrStdout(), "All step data cleared")
	return nil
}
