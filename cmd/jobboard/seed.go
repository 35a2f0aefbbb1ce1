package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbenali/jobboard/internal/config"
	"github.com/mbenali/jobboard/internal/db"
	"github.com/mbenali/jobboard/internal/schemas"
	"github.com/mbenali/jobboard/internal/types"
)

const seedSchemaPath = "schemas/jobs_seed.schema.json"

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load job postings from a fixture file",
	Long:  `Validate a JSON fixture of job postings against its schema and insert them into the database. Useful for demos and local development.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "seed/jobs.json", "Path to the jobs fixture")
	rootCmd.AddCommand(seedCmd)
}

// seedJob mirrors one fixture entry. is_featured is applied after insertion.
type seedJob struct {
	types.CreateJobRequest
	IsFeatured bool `json:"is_featured"`
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		return err
	}

	schemaPath := schemas.ResolveSchemaPath(seedSchemaPath)
	if schemaPath == "" {
		return fmt.Errorf("schema not found: %s", seedSchemaPath)
	}
	if err := schemas.ValidateFile(schemaPath, seedFile); err != nil {
		return fmt.Errorf("fixture rejected: %w", err)
	}

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	var fixture struct {
		Jobs []seedJob `json:"jobs"`
	}
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("failed to parse fixture: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	for _, entry := range fixture.Jobs {
		req := entry.CreateJobRequest
		if err := req.Validate(); err != nil {
			return fmt.Errorf("fixture job %q rejected: %w", req.Title, err)
		}
		job, err := database.CreateJob(ctx, &req)
		if err != nil {
			return fmt.Errorf("failed to insert %q: %w", req.Title, err)
		}
		if entry.IsFeatured {
			if _, err := database.ToggleFeatured(ctx, job.ID); err != nil {
				return fmt.Errorf("failed to feature %q: %w", req.Title, err)
			}
		}
		fmt.Printf("seeded %q at %s\n", job.Title, job.Company)
	}

	fmt.Printf("seeded %d jobs\n", len(fixture.Jobs))
	return nil
}
