package board

import (
	"context"

	"github.com/mbenali/jobboard/internal/types"
)

// Dashboard drives the admin overview: headline counters and the growth
// chart. Mutating boards call Refresh after a change so the numbers stay
// current.
type Dashboard struct {
	api API

	stats      *types.Stats
	growth     *types.Growth
	growthDays int
	loadErr    string
}

// NewDashboard creates a dashboard over the given API.
func NewDashboard(api API) *Dashboard {
	return &Dashboard{api: api}
}

// Refresh reloads the counters and the growth series.
func (d *Dashboard) Refresh(ctx context.Context) error {
	stats, err := d.api.Stats(ctx)
	if err != nil {
		d.loadErr = errorMessage(err)
		return err
	}
	growth, err := d.api.Growth(ctx, d.growthDays)
	if err != nil {
		d.loadErr = errorMessage(err)
		return err
	}
	d.loadErr = ""
	d.stats = stats
	d.growth = growth
	return nil
}

// SetGrowthWindow changes the chart window and reloads. days <= 0 restores
// the server default.
func (d *Dashboard) SetGrowthWindow(ctx context.Context, days int) error {
	d.growthDays = days
	return d.Refresh(ctx)
}

// Stats returns the last loaded counters, or nil before the first Refresh.
func (d *Dashboard) Stats() *types.Stats { return d.stats }

// Growth returns the last loaded series, or nil before the first Refresh.
func (d *Dashboard) Growth() *types.Growth { return d.growth }

// LoadError returns the user-facing message of the last failed refresh.
func (d *Dashboard) LoadError() string { return d.loadErr }
