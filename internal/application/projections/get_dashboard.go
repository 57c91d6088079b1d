package projections

import (
	"context"

	"coachpanel/internal/adapters/api"
)

// DashboardReader defines the backend calls needed by the dashboard projection.
type DashboardReader interface {
	Stats(ctx context.Context) (api.Stats, error)
	Recent(ctx context.Context) ([]api.Activity, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Dashboard DashboardReader
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Stats  api.Stats
	Recent []api.Activity
}

// QueryGetDashboard aggregates the stat cards and the recent-activity feed.
// Stats are required; a failed activity fetch degrades to an empty feed so
// the poll cycle still refreshes the numbers.
// PRE: none
// POST: Returns stats plus whatever activity was readable
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	stats, err := deps.Dashboard.Stats(ctx)
	if err != nil {
		return DashboardResult{}, err
	}

	result := DashboardResult{Stats: stats, Recent: []api.Activity{}}
	if recent, err := deps.Dashboard.Recent(ctx); err == nil {
		result.Recent = recent
	}
	return result, nil
}
