package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mbenali/jobboard/internal/client"
	"github.com/mbenali/jobboard/internal/config"
	"github.com/mbenali/jobboard/internal/observability"
)

var statsGrowthDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the board dashboard from the command line",
	Long:  `Fetch the admin dashboard counters and growth series from a running server. Requires API_URL and an admin API_TOKEN.`,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsGrowthDays, "days", 0, "Growth window in days (server default when 0)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewClientConfig()
	if err != nil {
		return err
	}
	api := client.New(cfg)
	ctx := cmd.Context()

	stats, err := api.Stats(ctx)
	if err != nil {
		return err
	}
	growth, err := api.Growth(ctx, statsGrowthDays)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintStats(stats)
	printer.PrintGrowth(growth)
	return nil
}
