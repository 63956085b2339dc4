// Package schedule holds the pure view-model logic for event schedules:
// grouping activities into day tabs, classifying survey habilitación
// windows, and tracking the selected day across refreshes.
package schedule

import (
	"sort"

	"github.com/utepsa-eventos/eventos-api/internal/models"
)

// GroupedDay is one day tab of an event schedule.
//
// DayNumber is assigned by the ascending sort order of the distinct dates
// present in the input, not by calendar arithmetic: a gap between dates
// does not produce a gap in day numbers.
type GroupedDay struct {
	Date       string            `json:"date"`
	DayNumber  int               `json:"day_number"`
	Activities []models.Activity `json:"activities"`
}

// Group partitions activities into day buckets keyed by exact string
// equality of Date, orders the distinct dates ascending lexicographically
// (chronological for well-formed ISO dates, opaque otherwise), numbers them
// 1..N, and sorts each bucket by Time ascending. The sort is stable, so
// activities sharing a time keep their input order. Duplicates are not
// deduplicated. An empty input yields an empty (non-nil) result.
func Group(activities []models.Activity) []GroupedDay {
	buckets := make(map[string][]models.Activity)
	for _, a := range activities {
		buckets[a.Date] = append(buckets[a.Date], a)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]GroupedDay, 0, len(dates))
	for i, date := range dates {
		acts := buckets[date]
		sort.SliceStable(acts, func(a, b int) bool {
			return acts[a].Time < acts[b].Time
		})
		days = append(days, GroupedDay{
			Date:       date,
			DayNumber:  i + 1,
			Activities: acts,
		})
	}
	return days
}

// Flatten restores a flat activity list from grouped days, preserving the
// grouped order. Grouping a flattened result reproduces the same grouping.
func Flatten(days []GroupedDay) []models.Activity {
	var out []models.Activity
	for _, day := range days {
		out = append(out, day.Activities...)
	}
	return out
}
