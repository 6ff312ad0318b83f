package commands

import (
	"context"
	"log/slog"
	"os"
	"time"
	"worldgdp/internal/chrono"
	"worldgdp/internal/config"
	"worldgdp/internal/pipeline"
	"worldgdp/internal/progress"
	"worldgdp/internal/scrapers/wikipedia"
	"worldgdp/internal/telemetry"
	"worldgdp/lib/restyutil"
	"worldgdp/lib/serviceutil"

	"github.com/spf13/cobra"
)

const serviceName = "gdp-etl"

var rootCmd = &cobra.Command{
	Use:   "gdp-etl",
	Short: "Scrapes GDP by country, stores it as CSV and sqlite, then queries the largest economies.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		output := dumpOutput(cfg.Fetch.DumpDir)

		err := withTelemetry(cmd.Context(), func(ctx context.Context) error {
			tel := telemetry.NewScopedAPI("gdp-etl", telemetry.SlogAPI{})
			p := pipeline.New(
				cfg,
				wikipedia.NewClient(wikipedia.ClientOptions{
					Timeout:   cfg.Fetch.Timeout(),
					UserAgent: cfg.Fetch.UserAgent,
					Output:    output,
				}, telemetry.NewScopedAPI("wikipedia", tel)),
				wikipedia.NewExtractor(telemetry.NewScopedAPI("wikipedia", tel)),
				progress.NewLog(cfg.LogPath, chrono.NewStandardTime()),
				os.Stdout,
				tel,
			)

			t1 := time.Now()
			err := p.Run(ctx)
			if err != nil {
				return err
			}
			slog.Debug("etl time", "seconds", time.Since(t1).Seconds())
			return nil
		})
		if err != nil {
			serviceutil.Fatal("etl run failed", err)
		}
	},
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	cobra.OnInitialize(func() {
		telemetry.InitSlog(verbose)
	})
}

func loadConfig() config.Config {
	cfg, err := config.Load(config.File)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func dumpOutput(dir string) restyutil.InstrumentOutput {
	if dir == "" {
		return nil
	}
	output, err := restyutil.NewFilesystemOutput(dir)
	if err != nil {
		serviceutil.Fatal("failed to create dump directory", err)
	}
	return output
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
