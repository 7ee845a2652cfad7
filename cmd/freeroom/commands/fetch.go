package commands

import (
	"freeroom/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Scrapes the free classrooms of every day from the portal into the data directory.",
	Run: func(cmd *cobra.Command, args []string) {
		err := fetch(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch free rooms", err)
		}
	},
}
