package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "freeroom",
	Short: "freeroom scrapes the free classrooms of the week and renders them into a report.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(*configPath, *envPath)
	},
	SilenceUsage: true,
}

var (
	configPath *string
	envPath    *string
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The configuration file, config.local.json5 next to it is merged over it.")
	envPath = rootCmd.PersistentFlags().String("env", ".env", "An optional file with the portal credentials.")
}

// ExecuteContext runs the cli and returns the exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
