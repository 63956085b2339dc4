package schedule

import "github.com/utepsa-eventos/eventos-api/internal/models"

// DaySelection tracks which day tab is active. The zero value is the
// no-day-selected state; an explicit state value replaces the loose
// booleans the feature historically accumulated.
type DaySelection struct {
	selected  int
	hasChoice bool
}

// Selected reports the active day number and whether any day is selected.
func (s *DaySelection) Selected() (int, bool) {
	return s.selected, s.hasChoice
}

// Init establishes the initial selection from the first grouped day. An
// empty grouping leaves the selection in the no-day-selected state.
func (s *DaySelection) Init(days []GroupedDay) {
	if len(days) == 0 {
		s.selected = 0
		s.hasChoice = false
		return
	}
	s.selected = days[0].DayNumber
	s.hasChoice = true
}

// Select activates the chosen day. Selecting the already-active day is a
// no-op; it reports whether the selection changed.
func (s *DaySelection) Select(dayNumber int) bool {
	if s.hasChoice && s.selected == dayNumber {
		return false
	}
	s.selected = dayNumber
	s.hasChoice = true
	return true
}

// Refresh reconciles the selection with a re-fetched grouping. The previous
// choice is preserved when its day number still exists; when it no longer
// does, the selection resets to the first day of the new grouping rather
// than pointing at a tab with nothing behind it.
func (s *DaySelection) Refresh(days []GroupedDay) {
	if !s.hasChoice {
		s.Init(days)
		return
	}
	for _, day := range days {
		if day.DayNumber == s.selected {
			return
		}
	}
	s.Init(days)
}

// ActivitiesFor returns the activities of the selected day, or nil when no
// day is selected or the selected day is absent from the grouping.
func (s *DaySelection) ActivitiesFor(days []GroupedDay) []models.Activity {
	if !s.hasChoice {
		return nil
	}
	for _, day := range days {
		if day.DayNumber == s.selected {
			return day.Activities
		}
	}
	return nil
}
