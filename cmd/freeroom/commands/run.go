package commands

import (
	"freeroom/lib/telemetry"
	"freeroom/lib/util/serviceutil"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetches, processes and generates the report in one go.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx, time.Second*15)

		err := fetch(ctx)
		if err != nil {
			serviceutil.Fatal("failed to fetch free rooms", err)
		}
		days, err := processDays(ctx)
		if err != nil {
			serviceutil.Fatal("failed to process days", err)
		}
		err = generate(ctx, days)
		if err != nil {
			serviceutil.Fatal("failed to generate report", err)
		}
	},
}
