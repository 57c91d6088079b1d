package api

import (
	"context"
	"time"
)

// Stats is the dashboard aggregate payload from GET /dashboard-data/stats.
// Values are fully backend-computed; every poll replaces the whole set.
type Stats struct {
	ActiveMembers       int     `json:"activeMembers"`
	TotalVideos         int     `json:"totalVideos"`
	TotalEbooks         int     `json:"totalEbooks"`
	CertificatesIssued  int     `json:"certificatesIssued"`
	PendingReceipts     int     `json:"pendingReceipts"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
	NewMembersThisMonth int     `json:"newMembersThisMonth"`
}

// Activity is one row of the recent-activity widget.
type Activity struct {
	Action string    `json:"action"`
	User   string    `json:"user"`
	Type   string    `json:"type"` // member | video | ebook | certificate | receipt
	Time   time.Time `json:"time"`
}

// DashboardClient reads the aggregate endpoints the dashboard widgets poll.
type DashboardClient struct {
	c *Client
}

// NewDashboard returns the dashboard data client.
func NewDashboard(c *Client) *DashboardClient {
	return &DashboardClient{c: c}
}

// Stats fetches the current aggregate numbers.
func (d *DashboardClient) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	if err := d.c.getJSON(ctx, "/dashboard-data/stats", &out); err != nil {
		return Stats{}, err
	}
	return out, nil
}

// Recent fetches the latest activity rows.
func (d *DashboardClient) Recent(ctx context.Context) ([]Activity, error) {
	var raw struct {
		Activities []Activity `json:"activities"`
	}
	if err := d.c.getJSON(ctx, "/dashboard-data/recent", &raw); err != nil {
		return nil, err
	}
	if raw.Activities == nil {
		return []Activity{}, nil
	}
	return raw.Activities, nil
}
