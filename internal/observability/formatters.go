// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mbenali/jobboard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI commands.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStats outputs the dashboard counters.
func (p *Printer) PrintStats(stats *types.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs:          %d (%d new today)\n", stats.TotalJobs, stats.NewJobsToday))
	sb.WriteString(fmt.Sprintf("Applications:  %d (%d new today)\n", stats.TotalApplications, stats.NewApplicationsToday))
	sb.WriteString(fmt.Sprintf("Companies:     %d\n", stats.TotalCompanies))

	if len(stats.ApplicationsByStatus) > 0 {
		sb.WriteString("\nBy status:\n")
		for _, sc := range stats.ApplicationsByStatus {
			sb.WriteString(fmt.Sprintf("  • %-12s %d\n", sc.Status, sc.Count))
		}
	}

	if len(stats.TopCategories) > 0 {
		sb.WriteString("\nTop categories:\n")
		count := min(len(stats.TopCategories), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := stats.TopCategories[i]
			sb.WriteString(fmt.Sprintf("  • %-16s %d\n", c.Category, c.Count))
		}
	}

	p.printBox("BOARD STATS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs one page of postings.
func (p *Printer) PrintJobs(jobs []types.Job, pagination types.Pagination) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page %d of %d (%d total)\n\n",
		pagination.Page, pagination.TotalPages, pagination.Total))

	for i, job := range jobs {
		marker := " "
		if job.IsFeatured {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, job.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s · %s\n", job.Company, job.Location, job.Type))
		if i < len(jobs)-1 {
			sb.WriteString("\n")
		}
	}
	if len(jobs) == 0 {
		sb.WriteString("No jobs match.")
	}

	p.printBox("JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplications outputs a candidate's applications with their workflow
// status.
func (p *Printer) PrintApplications(apps []types.Application) {
	var sb strings.Builder

	count := min(len(apps), maxItemsToShow)
	for i := 0; i < count; i++ {
		app := apps[i]
		sb.WriteString(fmt.Sprintf("%s at %s\n", app.JobTitle, app.Company))
		sb.WriteString(fmt.Sprintf("    Status: %s\n", app.Status))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(apps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(apps)-maxItemsToShow))
	}
	if len(apps) == 0 {
		sb.WriteString("No applications yet.")
	}

	p.printBox("MY APPLICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGrowth outputs the trailing daily series as a simple sparkline table.
func (p *Printer) PrintGrowth(growth *types.Growth) {
	if growth == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %8s %8s\n", "Date", "Jobs", "Apps"))

	appsByDate := make(map[string]int, len(growth.ApplicationGrowth))
	for _, pt := range growth.ApplicationGrowth {
		appsByDate[pt.Date] = pt.Count
	}

	start := 0
	if len(growth.JobGrowth) > maxItemsToShow {
		start = len(growth.JobGrowth) - maxItemsToShow
		sb.WriteString(fmt.Sprintf("(last %d days)\n", maxItemsToShow))
	}
	for _, pt := range growth.JobGrowth[start:] {
		sb.WriteString(fmt.Sprintf("%-12s %8d %8d\n", pt.Date, pt.Count, appsByDate[pt.Date]))
	}

	p.printBox("GROWTH", strings.TrimSuffix(sb.String(), "\n"))
}
