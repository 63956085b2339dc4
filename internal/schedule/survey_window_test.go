package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(value string) *time.Time {
	t := ts(value)
	return &t
}

func TestClassifySurveyWindowTruthTable(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		start     *time.Time
		end       *time.Time
		responded bool
		want      SurveyAvailability
	}{
		{
			name:  "before window start",
			now:   ts("2025-01-10T07:00"),
			start: tsp("2025-01-10T08:00"),
			end:   tsp("2025-01-10T18:00"),
			want:  SurveyNotYetOpen,
		},
		{
			name:      "before window start ignores responded flag",
			now:       ts("2025-01-10T07:00"),
			start:     tsp("2025-01-10T08:00"),
			end:       tsp("2025-01-10T18:00"),
			responded: true,
			want:      SurveyNotYetOpen,
		},
		{
			name:  "inside window unanswered",
			now:   ts("2025-01-10T12:00"),
			start: tsp("2025-01-10T08:00"),
			end:   tsp("2025-01-10T18:00"),
			want:  SurveyOpenUnanswered,
		},
		{
			name:      "inside window answered",
			now:       ts("2025-01-10T12:00"),
			start:     tsp("2025-01-10T08:00"),
			end:       tsp("2025-01-10T18:00"),
			responded: true,
			want:      SurveyOpenAnswered,
		},
		{
			name:      "no window but responded",
			responded: true,
			now:       ts("2025-01-10T12:00"),
			want:      SurveyClosedAnswered,
		},
		{
			name: "no window no response",
			now:  ts("2025-01-10T12:00"),
			want: SurveyNone,
		},
		{
			name:      "after window answered",
			now:       ts("2025-01-10T19:00"),
			start:     tsp("2025-01-10T08:00"),
			end:       tsp("2025-01-10T18:00"),
			responded: true,
			want:      SurveyClosedAnswered,
		},
		{
			name:  "after window unanswered",
			now:   ts("2025-01-10T19:00"),
			start: tsp("2025-01-10T08:00"),
			end:   tsp("2025-01-10T18:00"),
			want:  SurveyNone,
		},
		{
			name:  "start only with now past start",
			now:   ts("2025-01-10T12:00"),
			start: tsp("2025-01-10T08:00"),
			want:  SurveyNone,
		},
		{
			name: "end only unanswered",
			now:  ts("2025-01-10T12:00"),
			end:  tsp("2025-01-10T18:00"),
			want: SurveyNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifySurveyWindow(tc.now, tc.start, tc.end, tc.responded)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifySurveyWindowBoundsInclusive(t *testing.T) {
	start := tsp("2025-01-10T08:00")
	end := tsp("2025-01-10T18:00")

	assert.Equal(t, SurveyOpenUnanswered, ClassifySurveyWindow(*start, start, end, false))
	assert.Equal(t, SurveyOpenUnanswered, ClassifySurveyWindow(*end, start, end, false))
	assert.Equal(t, SurveyOpenAnswered, ClassifySurveyWindow(*end, start, end, true))
}
