package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mbenali/jobboard/internal/client"
	"github.com/mbenali/jobboard/internal/config"
	"github.com/mbenali/jobboard/internal/observability"
)

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Show your applications and their review status",
	Long:  `List the applications submitted by the account behind API_TOKEN, with the current workflow status of each.`,
	RunE:  runApplications,
}

func init() {
	rootCmd.AddCommand(applicationsCmd)
}

func runApplications(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewClientConfig()
	if err != nil {
		return err
	}
	api := client.New(cfg)

	apps, err := api.MyApplications(cmd.Context())
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintApplications(apps)
	return nil
}
