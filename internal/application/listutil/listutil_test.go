package listutil_test

import (
	"net/url"
	"testing"

	"coachpanel/internal/application/listutil"
)

// TestMatchesSearch tests the case-insensitive substring predicate.
func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		fields []string
		want   bool
	}{
		{name: "empty term matches", term: "", fields: []string{"anything"}, want: true},
		{name: "empty term matches empty fields", term: "", fields: nil, want: true},
		{name: "exact match", term: "squat", fields: []string{"squat"}, want: true},
		{name: "substring match", term: "qua", fields: []string{"Squat Basics"}, want: true},
		{name: "case-insensitive", term: "SQUAT", fields: []string{"squat basics"}, want: true},
		{name: "matches any field", term: "cardio", fields: []string{"Squat Basics", "Cardio"}, want: true},
		{name: "no match", term: "yoga", fields: []string{"Squat Basics", "Cardio"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listutil.MatchesSearch(tt.term, tt.fields...); got != tt.want {
				t.Errorf("MatchesSearch(%q, %v) = %v, want %v", tt.term, tt.fields, got, tt.want)
			}
		})
	}
}

// TestFilter tests that an empty search term returns the unfiltered collection.
func TestFilter(t *testing.T) {
	items := []string{"Push Day", "Pull Day", "Leg Day"}

	all := listutil.Filter(items, func(s string) bool { return listutil.MatchesSearch("", s) })
	if len(all) != 3 {
		t.Errorf("empty term: got %d items, want 3", len(all))
	}

	some := listutil.Filter(items, func(s string) bool { return listutil.MatchesSearch("pu", s) })
	if len(some) != 2 {
		t.Errorf("term 'pu': got %d items, want 2", len(some))
	}

	none := listutil.Filter(items, func(s string) bool { return listutil.MatchesSearch("swim", s) })
	if len(none) != 0 {
		t.Errorf("term 'swim': got %d items, want 0", len(none))
	}
}

// TestPaginate tests in-memory pagination bounds.
func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page, info := listutil.Paginate(items, listutil.PageParams{Page: 2, PerPage: 20})
	if len(page) != 20 || page[0] != 20 {
		t.Errorf("page 2: got %d items starting at %v", len(page), page[0])
	}
	if info.TotalPages != 3 || info.Total != 45 {
		t.Errorf("info = %+v, want TotalPages 3, Total 45", info)
	}

	last, info := listutil.Paginate(items, listutil.PageParams{Page: 3, PerPage: 20})
	if len(last) != 5 {
		t.Errorf("page 3: got %d items, want 5", len(last))
	}

	beyond, info := listutil.Paginate(items, listutil.PageParams{Page: 99, PerPage: 20})
	if info.Page != 3 || len(beyond) != 5 {
		t.Errorf("page clamped to %d with %d items, want page 3 with 5", info.Page, len(beyond))
	}

	empty, info := listutil.Paginate([]int{}, listutil.PageParams{Page: 1, PerPage: 20})
	if len(empty) != 0 || info.Total != 0 {
		t.Errorf("empty input: got %d items, total %d", len(empty), info.Total)
	}
}

// TestParseListParams tests query parsing with defaults.
func TestParseListParams(t *testing.T) {
	q := url.Values{}
	q.Set("page", "2")
	q.Set("per_page", "50")
	q.Set("q", "protein")
	q.Set("status", "pending")
	q.Set("bogus", "ignored")

	lp := listutil.ParseListParams(q, []string{"status", "category"})
	if lp.Page != 2 || lp.PerPage != 50 {
		t.Errorf("page params = %+v", lp.PageParams)
	}
	if lp.Search != "protein" {
		t.Errorf("Search = %q", lp.Search)
	}
	if lp.Filters["status"] != "pending" {
		t.Errorf("Filters = %v", lp.Filters)
	}
	if _, ok := lp.Filters["bogus"]; ok {
		t.Error("unrecognised filter key should be dropped")
	}

	defaults := listutil.ParseListParams(url.Values{}, nil)
	if defaults.Page != 1 || defaults.PerPage != listutil.DefaultPerPage {
		t.Errorf("defaults = %+v", defaults.PageParams)
	}
}
