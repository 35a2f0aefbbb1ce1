package db

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mbenali/jobboard/internal/types"
)

// topCategoryLimit caps the category breakdown on the dashboard.
const topCategoryLimit = 5

// Stats gathers the aggregate counters behind the admin dashboard. The
// independent counts are fanned out concurrently on the pool.
func (db *DB) Stats(ctx context.Context) (*types.Stats, error) {
	var stats types.Stats
	g, ctx := errgroup.WithContext(ctx)

	countInto := func(dest *int, query string) func() error {
		return func() error {
			return db.pool.QueryRow(ctx, query).Scan(dest)
		}
	}

	g.Go(countInto(&stats.TotalJobs, `SELECT COUNT(*) FROM jobs`))
	g.Go(countInto(&stats.TotalApplications, `SELECT COUNT(*) FROM applications`))
	g.Go(countInto(&stats.TotalCompanies, `SELECT COUNT(DISTINCT company) FROM jobs`))
	g.Go(countInto(&stats.NewJobsToday,
		`SELECT COUNT(*) FROM jobs WHERE created_at >= CURRENT_DATE`))
	g.Go(countInto(&stats.NewApplicationsToday,
		`SELECT COUNT(*) FROM applications WHERE created_at >= CURRENT_DATE`))

	g.Go(func() error {
		rows, err := db.pool.Query(ctx,
			`SELECT status, COUNT(*) FROM applications GROUP BY status`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var sc types.StatusCount
			if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
				return err
			}
			stats.ApplicationsByStatus = append(stats.ApplicationsByStatus, sc)
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := db.pool.Query(ctx,
			`SELECT category, COUNT(*) FROM jobs GROUP BY category ORDER BY COUNT(*) DESC, category LIMIT $1`,
			topCategoryLimit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var cc types.CategoryCount
			if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
				return err
			}
			stats.TopCategories = append(stats.TopCategories, cc)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to gather stats: %w", err)
	}
	return &stats, nil
}

// Growth returns daily jobs-posted and applications-received counts for the
// trailing window. Days without activity appear with a zero count so the
// series always has exactly `days` points.
func (db *DB) Growth(ctx context.Context, days int) (*types.Growth, error) {
	if days < 1 {
		days = 30
	}

	var growth types.Growth
	g, ctx := errgroup.WithContext(ctx)

	seriesInto := func(dest *[]types.GrowthPoint, table string) func() error {
		return func() error {
			rows, err := db.pool.Query(ctx,
				`SELECT to_char(created_at::date, 'YYYY-MM-DD'), COUNT(*)
				 FROM `+table+`
				 WHERE created_at >= CURRENT_DATE - $1::int
				 GROUP BY created_at::date ORDER BY created_at::date`,
				days-1)
			if err != nil {
				return err
			}
			defer rows.Close()

			byDate := map[string]int{}
			for rows.Next() {
				var date string
				var count int
				if err := rows.Scan(&date, &count); err != nil {
					return err
				}
				byDate[date] = count
			}
			if err := rows.Err(); err != nil {
				return err
			}
			*dest = fillSeries(byDate, days)
			return nil
		}
	}

	g.Go(seriesInto(&growth.JobGrowth, "jobs"))
	g.Go(seriesInto(&growth.ApplicationGrowth, "applications"))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to gather growth series: %w", err)
	}
	return &growth, nil
}

// fillSeries expands sparse per-day counts into a dense trailing series
// ending today.
func fillSeries(byDate map[string]int, days int) []types.GrowthPoint {
	series := make([]types.GrowthPoint, 0, days)
	start := time.Now().AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, types.GrowthPoint{Date: date, Count: byDate[date]})
	}
	return series
}
