package web

import (
	"net/http"
	"time"

	"coachpanel/internal/application/projections"
)

// handleDashboard handles GET / — the stat cards plus recent activity, with
// client-side polling against /dashboard/data.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	deps := projections.GetDashboardDeps{Dashboard: services.Dashboard}
	result, err := projections.QueryGetDashboard(r.Context(), deps)
	if err != nil {
		renderTemplate(w, r, "dashboard.html", map[string]any{
			"Error": userMessage(err),
		})
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"Stats":  result.Stats,
		"Recent": result.Recent,
	})
}

// handleDashboardData handles GET /dashboard/data — the JSON payload the
// dashboard page polls every 10 seconds.
func handleDashboardData(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	deps := projections.GetDashboardDeps{Dashboard: services.Dashboard}
	result, err := projections.QueryGetDashboard(r.Context(), deps)
	if err != nil {
		writeJSONError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"stats":     result.Stats,
		"recent":    result.Recent,
		"fetchedAt": timeNow().Format(time.RFC3339),
	})
}

// handlePerf handles GET /perf — request and upstream latency aggregates.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	snap := perfCollector.Snapshot(timeNow().Add(-time.Hour), 10)

	if isHTMLRequest(r) {
		renderTemplate(w, r, "perf.html", map[string]any{
			"Snapshot": snap,
		})
		return
	}
	writeJSON(w, snap)
}
