package commands

import (
	"context"
	"freeroom/lib/freeroom"
	"freeroom/lib/util/serviceutil"
	"freeroom/services/process"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(processCmd)
}

func processOptions(denylist freeroom.Denylist) process.Options {
	return process.Options{
		DataDir: cfg.DataDir,
		Days:    cfg.Days,
		Pipeline: freeroom.Options{
			Denylist: denylist.Set(),
		},
	}
}

func processDays(ctx context.Context) ([]freeroom.Day, error) {
	denylist := freeroom.LoadDenylist(cfg.DenylistFile)
	return process.ProcessAll(ctx, processOptions(denylist))
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Sanitizes the scraped rows of every day into processed_classroom_data.json.",
	Run: func(cmd *cobra.Command, args []string) {
		_, err := processDays(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to process days", err)
		}
	},
}
