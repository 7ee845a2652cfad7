package commands

import (
	"fmt"
	"freeroom/lib/timezone"
	"freeroom/lib/util/serviceutil"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int

func init() {
	historyLimit = historyCmd.Flags().Int("limit", 20, "The number of runs to list.")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pruneCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--limit <n>]",
	Short: "Lists the latest report runs saved in the snapshot database.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		store, ok, closeStore, err := openStore(ctx)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot database", err)
		}
		defer closeStore()
		if !ok {
			serviceutil.Fatal("no snapshot database configured", fmt.Errorf("database.file and database.url are empty"))
		}

		runs, err := store.Runs(ctx, *historyLimit)
		if err != nil {
			serviceutil.Fatal("failed to list runs", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Run", "Time", "Content hash"})
		for _, r := range runs {
			t.AppendRow(table.Row{r.ID, timezone.DisplayTime(r.Time), r.ContentHash})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Deletes snapshot runs older than keep_runs_days.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		store, ok, closeStore, err := openStore(ctx)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot database", err)
		}
		defer closeStore()
		if !ok {
			return
		}

		before := timezone.Now().Add(-time.Duration(cfg.KeepRuns) * 24 * time.Hour)
		removed, err := store.Prune(ctx, before)
		if err != nil {
			serviceutil.Fatal("failed to prune runs", err)
		}
		fmt.Printf("removed %d runs from before %s\n", removed, timezone.DisplayDate(before))
	},
}
