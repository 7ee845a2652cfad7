package commands

import (
	"freeroom/lib/chrono"
	"freeroom/lib/telemetry"
	"freeroom/lib/util/serviceutil"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var scheduleSpec *string

func init() {
	scheduleSpec = scheduleCmd.Flags().String("cron", "0 6 * * *", "When to run, in Beijing time.")
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [--cron <spec>]",
	Short: "Keeps running and regenerates the report on a cron schedule.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx, time.Minute)

		scheduler := chrono.NewStandardCron()
		err := scheduler.Cron(*scheduleSpec, func() {
			// a failed run is logged and retried on the next tick
			err := fetch(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "scheduled fetch failed", "err", err)
				return
			}
			days, err := processDays(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "scheduled process failed", "err", err)
				return
			}
			err = generate(ctx, days)
			if err != nil {
				slog.ErrorContext(ctx, "scheduled generate failed", "err", err)
			}
		})
		if err != nil {
			serviceutil.Fatal("invalid cron spec", err)
		}

		slog.Info("waiting for the next run", "cron", *scheduleSpec)
		scheduler.Run(ctx)
	},
}
