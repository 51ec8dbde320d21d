package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hpkotak/bootstrap/internal/bootstrap"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List the steps the selected routine would run, without running them",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := newDispatcher(cfg, newLogger())
	if err != nil {
		return err
	}

	rt, err := d.Routine(detectHost(cfg.ReleaseFile))
	if err != nil {
		return err
	}

	bootstrap.WritePlan(ioOut, rt, d.Runner.ProjectDir)
	return nil
}
