package schedule

import "time"

// SurveyAvailability classifies a user's relationship to a post-activity
// survey given its habilitación window and whether a response was recorded.
type SurveyAvailability string

const (
	// SurveyNone hides the survey affordance entirely.
	SurveyNone SurveyAvailability = "NONE"
	// SurveyNotYetOpen means the window exists but has not started.
	SurveyNotYetOpen SurveyAvailability = "NOT_YET_OPEN"
	// SurveyOpenUnanswered enables the response action.
	SurveyOpenUnanswered SurveyAvailability = "OPEN_UNANSWERED"
	// SurveyOpenAnswered shows the already-responded confirmation while the
	// window is still open.
	SurveyOpenAnswered SurveyAvailability = "OPEN_ANSWERED"
	// SurveyClosedAnswered shows the already-responded confirmation after
	// the window closed (or when no window was ever configured).
	SurveyClosedAnswered SurveyAvailability = "CLOSED_ANSWERED"
)

// ClassifySurveyWindow evaluates the availability decision table.
//
// Precedence order matters: an unopened window wins over everything, an
// in-window check comes next, and a recorded response always yields a
// confirmation regardless of window state (covers windows that closed after
// the user responded). Total for every combination of nil bounds.
func ClassifySurveyWindow(now time.Time, start, end *time.Time, responded bool) SurveyAvailability {
	if start != nil && now.Before(*start) {
		return SurveyNotYetOpen
	}
	if start != nil && end != nil && !now.Before(*start) && !now.After(*end) {
		if !responded {
			return SurveyOpenUnanswered
		}
		return SurveyOpenAnswered
	}
	if responded {
		return SurveyClosedAnswered
	}
	return SurveyNone
}
