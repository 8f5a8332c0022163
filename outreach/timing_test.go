package outreach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday; the offsets below give known weekdays.
var (
	monday    = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func TestScoreInstantInsideWindow(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	// Restaurant Wednesday 09:30 sits inside the Tue-Thu 9:00-10:30 window.
	score := m.ScoreInstant(BusinessTypeRestaurant, at(wednesday, 9, 30))
	assert.Equal(t, 0.95, score.Score)
	assert.Equal(t, "Great time", score.Label)
	require.NotNil(t, score.Window)
	assert.Equal(t, time.Wednesday, score.Window.Day)
}

func TestScoreInstantNearWindowBonus(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	// Wednesday 08:30 is half an hour before the 9:00 restaurant window:
	// 0.95 * (1 - 0.5) * 0.5 = 0.2375.
	score := m.ScoreInstant(BusinessTypeRestaurant, at(wednesday, 8, 30))
	assert.InDelta(t, 0.2375, score.Score, 1e-9)
	assert.Equal(t, "OK", score.Label)
	assert.Nil(t, score.Window)
}

func TestScoreInstantNearWindowEndEdge(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	// Wednesday 10:30 is the exclusive end of the 9:00-10:30 restaurant
	// window: no longer inside it, but at zero edge distance the bonus
	// applies undampened by distance: 0.95 * (1 - 0) * 0.5 = 0.475.
	score := m.ScoreInstant(BusinessTypeRestaurant, at(wednesday, 10, 30))
	assert.InDelta(t, 0.475, score.Score, 1e-9)
	assert.Equal(t, "Good time", score.Label)
	assert.Nil(t, score.Window)
}

func TestScoreInstantBusinessHoursFloor(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	// Wednesday 08:00 is exactly one hour from the 9:00 window edge, so the
	// near-window bonus does not apply and the weekday floor kicks in.
	score := m.ScoreInstant(BusinessTypeRestaurant, at(wednesday, 8, 0))
	assert.Equal(t, 0.20, score.Score)
	assert.Equal(t, "OK", score.Label)
}

func TestScoreInstantOffPeak(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	t.Run("weekday before business hours", func(t *testing.T) {
		score := m.ScoreInstant(BusinessTypeRestaurant, at(wednesday, 6, 0))
		assert.Equal(t, 0.0, score.Score)
		assert.Equal(t, "Off-peak", score.Label)
	})

	t.Run("weekend", func(t *testing.T) {
		score := m.ScoreInstant(BusinessTypeRestaurant, at(saturday, 10, 0))
		assert.Equal(t, 0.0, score.Score)
		assert.Equal(t, "Off-peak", score.Label)
	})

	t.Run("day with no windows at all stays zero outside business hours", func(t *testing.T) {
		table := WindowTable{
			BusinessTypeGeneral: {
				{Day: time.Tuesday, StartHour: 10, EndHour: 11, Weight: 0.9, Label: "x"},
			},
		}
		m := NewTimingModel(table)
		// Wednesday has no windows; 18:00 is outside the floor range too.
		score := m.ScoreInstant(BusinessTypeGeneral, at(wednesday, 18, 0))
		assert.Equal(t, 0.0, score.Score)
	})
}

func TestScoreInstantBoundedness(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	types := []BusinessType{
		BusinessTypeRestaurant, BusinessTypeRetail, BusinessTypeProfessionalServices,
		BusinessTypeHealthWellness, BusinessTypeHomeServices, BusinessTypeAutomotive,
		BusinessTypeCreator, BusinessTypeGeneral,
	}

	for _, bt := range types {
		for day := 0; day < 7; day++ {
			for hour := 0; hour < 24; hour++ {
				for _, minute := range []int{0, 15, 30, 45} {
					instant := at(monday.AddDate(0, 0, day), hour, minute)
					score := m.ScoreInstant(bt, instant)
					assert.GreaterOrEqual(t, score.Score, 0.0)
					assert.LessOrEqual(t, score.Score, 1.0)
					assert.Equal(t, scoreLabel(score.Score), score.Label)
				}
			}
		}
	}
}

func TestScoreLabelThresholds(t *testing.T) {
	table := WindowTable{
		BusinessTypeGeneral: {
			{Day: time.Wednesday, StartHour: 9, EndHour: 10, Weight: 0.70, Label: "boundary"},
			{Day: time.Thursday, StartHour: 9, EndHour: 10, Weight: 0.6999, Label: "just under"},
		},
	}
	m := NewTimingModel(table)

	great := m.ScoreInstant(BusinessTypeGeneral, at(wednesday, 9, 30))
	assert.Equal(t, 0.70, great.Score)
	assert.Equal(t, "Great time", great.Label)

	good := m.ScoreInstant(BusinessTypeGeneral, at(wednesday.AddDate(0, 0, 1), 9, 30))
	assert.Equal(t, 0.6999, good.Score)
	assert.Equal(t, "Good time", good.Label)
}

func TestNextBestWindowMonotonicProgress(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	instants := []time.Time{
		at(monday, 0, 0),
		at(monday, 13, 59),
		at(monday, 23, 59),
		at(wednesday, 9, 15),
		at(saturday, 12, 0),
	}
	types := []BusinessType{BusinessTypeRestaurant, BusinessTypeCreator, BusinessTypeGeneral}

	for _, bt := range types {
		for _, from := range instants {
			instant, window := m.NextBestWindow(bt, from)
			assert.True(t, instant.After(from), "%s from %s returned %s", bt, from, instant)
			assert.Greater(t, window.Weight, 0.0)
		}
	}
}

func TestNextBestWindowPicksHighestWeight(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	// From Monday midnight the restaurant's best Monday window (14:00, weight
	// 0.6) is still ahead; Tuesday's 0.95 window is further out, so Monday wins
	// the scan despite the lower weight.
	instant, window := m.NextBestWindow(BusinessTypeRestaurant, at(monday, 0, 0))
	assert.Equal(t, at(monday, 14, 0), instant)
	assert.Equal(t, 0.6, window.Weight)

	// From Monday 15:00 that window's start has passed; Tuesday 9:00 is next.
	instant, window = m.NextBestWindow(BusinessTypeRestaurant, at(monday, 15, 0))
	assert.Equal(t, at(monday.AddDate(0, 0, 1), 9, 0), instant)
	assert.Equal(t, 0.95, window.Weight)
}

func TestNextBestWindowFallback(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		m := NewTimingModel(WindowTable{})

		instant, window := m.NextBestWindow(BusinessTypeGeneral, at(monday, 9, 0))
		assert.Equal(t, at(monday.AddDate(0, 0, 1), 10, 0), instant)
		assert.Equal(t, 0.5, window.Weight)
		assert.Equal(t, "General business hours", window.Label)
	})

	t.Run("only window already passed today", func(t *testing.T) {
		table := WindowTable{
			BusinessTypeGeneral: {
				{Day: time.Monday, StartHour: 9, EndHour: 10, Weight: 0.9, Label: "x"},
			},
		}
		m := NewTimingModel(table)

		// The scan covers Monday..Sunday; Monday's window has passed and no
		// other day matches, so the scan legitimately exhausts.
		instant, window := m.NextBestWindow(BusinessTypeGeneral, at(monday, 10, 30))
		assert.Equal(t, at(monday.AddDate(0, 0, 1), 10, 0), instant)
		assert.Equal(t, "General business hours", window.Label)
	})

	t.Run("fallback skips weekend", func(t *testing.T) {
		m := NewTimingModel(WindowTable{})

		// From Friday the next weekday is Monday.
		friday := at(monday.AddDate(0, 0, 4), 9, 0)
		instant, _ := m.NextBestWindow(BusinessTypeGeneral, friday)
		assert.Equal(t, time.Monday, instant.Weekday())
		assert.Equal(t, 10, instant.Hour())
	})
}

func TestWindowSummary(t *testing.T) {
	m := NewTimingModel(DefaultWindowTable())

	groups := m.WindowSummary(BusinessTypeRestaurant)
	require.NotEmpty(t, groups)

	// Ordered by descending weight: the Tue-Thu morning block leads.
	assert.Equal(t, "Tue-Thu", groups[0].DayLabel)
	assert.Equal(t, "9:00 AM - 10:30 AM", groups[0].TimeRange)
	assert.Equal(t, "best", groups[0].Quality)

	// Weights below 0.85 classify as good.
	last := groups[len(groups)-1]
	assert.Equal(t, "good", last.Quality)
}

func TestWindowSummaryDayLabels(t *testing.T) {
	table := WindowTable{
		BusinessTypeGeneral: {
			{Day: time.Monday, StartHour: 9, EndHour: 10, Weight: 0.9, Label: "a"},
			{Day: time.Wednesday, StartHour: 9, EndHour: 10, Weight: 0.9, Label: "a"},
			{Day: time.Friday, StartHour: 9, EndHour: 10, Weight: 0.9, Label: "a"},
		},
	}
	m := NewTimingModel(table)

	groups := m.WindowSummary(BusinessTypeGeneral)
	require.Len(t, groups, 1)
	assert.Equal(t, "Mon, Wed, Fri", groups[0].DayLabel)
}
