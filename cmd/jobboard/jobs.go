package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mbenali/jobboard/internal/client"
	"github.com/mbenali/jobboard/internal/config"
	"github.com/mbenali/jobboard/internal/observability"
)

var (
	jobsSearch   string
	jobsCategory string
	jobsType     string
	jobsPage     int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse job postings from the command line",
	Long:  `List postings from a running server with the same search, category and type filters the web catalog offers. Requires API_URL.`,
	RunE:  runJobs,
}

func init() {
	jobsCmd.Flags().StringVar(&jobsSearch, "search", "", "Match against title and company")
	jobsCmd.Flags().StringVar(&jobsCategory, "category", "", "Filter by category")
	jobsCmd.Flags().StringVar(&jobsType, "type", "", "Filter by job type")
	jobsCmd.Flags().IntVar(&jobsPage, "page", 1, "Page to show")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewClientConfig()
	if err != nil {
		return err
	}
	api := client.New(cfg)

	page, err := api.ListJobs(cmd.Context(), client.JobFilter{
		Search:   jobsSearch,
		Category: jobsCategory,
		Type:     jobsType,
		Page:     jobsPage,
	})
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintJobs(page.Jobs, page.Pagination)
	return nil
}
