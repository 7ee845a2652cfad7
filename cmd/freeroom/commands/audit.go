package commands

import (
	"fmt"
	"freeroom/lib/freeroom"
	"freeroom/lib/util/serviceutil"
	"freeroom/services/dataset"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(auditCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Lists denylist entries that match no scraped room, with the closest room name.",
	Run: func(cmd *cobra.Command, args []string) {
		denylist := freeroom.LoadDenylist(cfg.DenylistFile)

		// the raw rows are used so that denied rooms are still present
		days := make([]freeroom.Day, cfg.Days)
		for offset := range days {
			raw, err := dataset.ReadRawDay(dataset.DayDir(cfg.DataDir, offset))
			if err != nil {
				serviceutil.Fatal("failed to read raw day", err)
			}
			days[offset] = freeroom.Process(raw, freeroom.Options{})
		}

		stale := denylist.Audit(days)
		if len(stale) == 0 {
			fmt.Println("every denylist entry matches a room.")
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Building", "Entry", "Closest room", "Similarity"})
		for _, s := range stale {
			similarity := ""
			if s.Suggestion != "" {
				similarity = fmt.Sprintf("%.2f", s.Score)
			}
			t.AppendRow(table.Row{s.Building, s.Room, s.Suggestion, similarity})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
