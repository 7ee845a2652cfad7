package commands

import (
	"fmt"
	"freeroom/lib/freeroom"
	"freeroom/lib/timezone"
	"freeroom/lib/util/serviceutil"
	"freeroom/services/dataset"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var summaryDay *int

func init() {
	summaryDay = summaryCmd.Flags().Int("day", 0, "The day offset to summarize, 0 is today.")
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary [--day <offset>]",
	Short: "Prints the number of free rooms per slot and building of a processed day.",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := dataset.ReadProcessed(dataset.DayDir(cfg.DataDir, *summaryDay))
		if err != nil {
			serviceutil.Fatal("failed to read processed day", err)
		}
		day := freeroom.FromCanonical(records, nil, len(records), len(records))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle(fmt.Sprintf("%s (%d records)", timezone.DisplayDate(timezone.Day(timezone.Now(), *summaryDay)), len(records)))

		header := table.Row{"Slot"}
		for _, b := range freeroom.BuildingNames() {
			header = append(header, b)
		}
		t.AppendHeader(header)

		for _, slot := range freeroom.AllSlots {
			row := table.Row{slot}
			for _, b := range freeroom.BuildingNames() {
				row = append(row, len(day.Index.Rooms(slot, b)))
			}
			t.AppendRow(row)
		}

		allDay := table.Row{"all day"}
		for _, b := range freeroom.BuildingNames() {
			allDay = append(allDay, len(day.AllDay[b]))
		}
		t.AppendFooter(allDay)

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
