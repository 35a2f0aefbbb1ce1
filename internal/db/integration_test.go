//go:build integration

package db

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	_, _ = db.pool.Exec(ctx, "DELETE FROM jobs WHERE company LIKE 'ITest%'")
	return db
}

func testJobRequest(company string) *types.CreateJobRequest {
	return &types.CreateJobRequest{
		Title:       "Backend Engineer",
		Company:     company,
		Location:    "Remote",
		Category:    "Engineering",
		Type:        types.JobTypeFullTime,
		Description: strings.Repeat("Design, build and operate Go services. ", 3),
		Tags:        []string{"Remote", "Startup"},
	}
}

func TestIntegration_Job_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	job, err := db.CreateJob(ctx, testJobRequest("ITest Acme"))
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	if job.ID == uuid.Nil {
		t.Fatal("job ID should not be nil")
	}
	if job.IsFeatured {
		t.Error("new job should not be featured")
	}

	t.Run("list includes new job", func(t *testing.T) {
		jobs, total, err := db.ListJobs(ctx, ListJobsOptions{Search: "ITest Acme"})
		if err != nil {
			t.Fatalf("ListJobs failed: %v", err)
		}
		if total != 1 || len(jobs) != 1 {
			t.Fatalf("got %d jobs (total %d), want 1", len(jobs), total)
		}
	})

	t.Run("view counter increments", func(t *testing.T) {
		got, err := db.GetJobAndCountView(ctx, job.ID)
		if err != nil {
			t.Fatalf("GetJobAndCountView failed: %v", err)
		}
		if got.Views != job.Views+1 {
			t.Errorf("Views = %d, want %d", got.Views, job.Views+1)
		}
	})

	t.Run("featured toggle round trip", func(t *testing.T) {
		once, err := db.ToggleFeatured(ctx, job.ID)
		if err != nil {
			t.Fatalf("ToggleFeatured failed: %v", err)
		}
		if !once.IsFeatured {
			t.Error("first toggle should set is_featured")
		}
		twice, err := db.ToggleFeatured(ctx, job.ID)
		if err != nil {
			t.Fatalf("ToggleFeatured failed: %v", err)
		}
		if twice.IsFeatured {
			t.Error("second toggle should restore original value")
		}
	})

	t.Run("delete removes job from listing", func(t *testing.T) {
		if err := db.DeleteJob(ctx, job.ID); err != nil {
			t.Fatalf("DeleteJob failed: %v", err)
		}
		_, total, err := db.ListJobs(ctx, ListJobsOptions{Search: "ITest Acme"})
		if err != nil {
			t.Fatalf("ListJobs failed: %v", err)
		}
		if total != 0 {
			t.Errorf("deleted job still listed, total = %d", total)
		}
	})
}

func TestIntegration_Application_Workflow(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	job, err := db.CreateJob(ctx, testJobRequest("ITest Workflow Corp"))
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	defer func() { _ = db.DeleteJob(ctx, job.ID) }()

	req := &types.SubmitApplicationRequest{
		JobID:      job.ID,
		Name:       "Ada Candidate",
		Email:      "ada@itest.example.com",
		ResumeLink: "https://example.com/ada.pdf",
	}

	app, err := db.CreateApplication(ctx, req)
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}
	if app.Status != types.StatusPending {
		t.Errorf("Status = %q, want pending", app.Status)
	}
	if app.JobTitle != job.Title || app.Company != job.Company {
		t.Error("application should carry joined job title and company")
	}

	t.Run("duplicate submission rejected", func(t *testing.T) {
		_, err := db.CreateApplication(ctx, req)
		if err != ErrDuplicateApplication {
			t.Errorf("err = %v, want ErrDuplicateApplication", err)
		}
	})

	t.Run("admin sees it as pending", func(t *testing.T) {
		apps, _, err := db.ListApplications(ctx, ListApplicationsOptions{Status: types.StatusPending, Search: "ITest Workflow"})
		if err != nil {
			t.Fatalf("ListApplications failed: %v", err)
		}
		if len(apps) != 1 {
			t.Fatalf("got %d applications, want 1", len(apps))
		}
	})

	t.Run("status update visible to candidate", func(t *testing.T) {
		updated, err := db.UpdateApplicationStatus(ctx, app.ID, types.StatusShortlisted)
		if err != nil {
			t.Fatalf("UpdateApplicationStatus failed: %v", err)
		}
		if updated.Status != types.StatusShortlisted {
			t.Errorf("Status = %q, want shortlisted", updated.Status)
		}

		own, err := db.ListApplicationsByEmail(ctx, req.Email)
		if err != nil {
			t.Fatalf("ListApplicationsByEmail failed: %v", err)
		}
		if len(own) != 1 || own[0].Status != types.StatusShortlisted {
			t.Error("candidate view should report the new status")
		}
	})

	t.Run("job delete cascades to applications", func(t *testing.T) {
		if err := db.DeleteJob(ctx, job.ID); err != nil {
			t.Fatalf("DeleteJob failed: %v", err)
		}
		own, err := db.ListApplicationsByEmail(ctx, req.Email)
		if err != nil {
			t.Fatalf("ListApplicationsByEmail failed: %v", err)
		}
		if len(own) != 0 {
			t.Errorf("applications survived job deletion: %d left", len(own))
		}
	})
}
