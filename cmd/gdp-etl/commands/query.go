package commands

import (
	"context"
	"os"
	"worldgdp/internal/pipeline"
	"worldgdp/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Prints the countries at or above the GDP threshold from the database of a previous run.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		err := withTelemetry(cmd.Context(), func(ctx context.Context) error {
			return pipeline.RunQuery(ctx, cfg, os.Stdout)
		})
		if err != nil {
			serviceutil.Fatal("query failed", err)
		}
	},
}
