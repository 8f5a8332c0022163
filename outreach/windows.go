package outreach

import (
	"time"
)

// CallWindow is one weighted "good calling window" for a business type.
// Hours are fractional local hours, e.g. 10.5 means 10:30.
type CallWindow struct {
	Day       time.Weekday
	StartHour float64
	EndHour   float64
	Weight    float64
	Label     string
}

// Contains reports whether the fractional hour falls inside [StartHour, EndHour)
func (w CallWindow) Contains(hour float64) bool {
	return hour >= w.StartHour && hour < w.EndHour
}

// edgeDistance returns the distance in hours from the given fractional hour to
// the nearest window edge; zero when the hour is inside the window
func (w CallWindow) edgeDistance(hour float64) float64 {
	if w.Contains(hour) {
		return 0
	}
	if hour < w.StartHour {
		return w.StartHour - hour
	}
	return hour - w.EndHour
}

// WindowTable maps business types to their static call windows. Tables are
// constructed once at process start and treated as immutable afterwards.
type WindowTable map[BusinessType][]CallWindow

func weekdayWindows(days []time.Weekday, start, end, weight float64, label string) []CallWindow {
	ws := make([]CallWindow, 0, len(days))
	for _, d := range days {
		ws = append(ws, CallWindow{Day: d, StartHour: start, EndHour: end, Weight: weight, Label: label})
	}
	return ws
}

var (
	midweekDays = []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday}
	mondayOnly  = []time.Weekday{time.Monday}
	fridayOnly  = []time.Weekday{time.Friday}
)

// DefaultWindowTable returns the built-in call-window table. Callers inject the
// result into NewTimingModel; tests may substitute their own tables.
func DefaultWindowTable() WindowTable {
	t := WindowTable{}

	add := func(bt BusinessType, ws ...[]CallWindow) {
		for _, w := range ws {
			t[bt] = append(t[bt], w...)
		}
	}

	add(BusinessTypeRestaurant,
		weekdayWindows(midweekDays, 9, 10.5, 0.95, "Mid-morning, before lunch prep"),
		weekdayWindows(midweekDays, 14, 16, 0.85, "Between lunch and dinner service"),
		weekdayWindows(mondayOnly, 14, 16, 0.6, "Monday afternoon lull"),
		weekdayWindows(fridayOnly, 9, 10.5, 0.5, "Friday morning, before weekend rush"),
	)

	add(BusinessTypeRetail,
		weekdayWindows(midweekDays, 10, 11.5, 0.9, "After opening, before midday foot traffic"),
		weekdayWindows(midweekDays, 15, 16.5, 0.75, "Afternoon lull"),
		weekdayWindows(mondayOnly, 10, 11.5, 0.7, "Monday restock morning"),
		weekdayWindows(fridayOnly, 10, 11.5, 0.6, "Friday morning"),
	)

	add(BusinessTypeProfessionalServices,
		weekdayWindows(midweekDays, 8, 9.5, 0.9, "Early, before client meetings"),
		weekdayWindows(midweekDays, 16, 17.5, 0.8, "End-of-day wind-down"),
		weekdayWindows(fridayOnly, 8, 9.5, 0.65, "Friday early morning"),
		weekdayWindows(mondayOnly, 8.5, 9.5, 0.55, "Monday after planning"),
	)

	add(BusinessTypeHealthWellness,
		weekdayWindows(midweekDays, 13, 15, 0.9, "Midday lull between class blocks"),
		weekdayWindows(midweekDays, 10, 11, 0.75, "Late morning gap"),
		weekdayWindows(mondayOnly, 13, 15, 0.7, "Monday midday"),
		weekdayWindows(fridayOnly, 13, 15, 0.6, "Friday midday"),
	)

	add(BusinessTypeHomeServices,
		weekdayWindows(midweekDays, 7.5, 9, 0.9, "Before crews leave for job sites"),
		weekdayWindows(midweekDays, 16.5, 18, 0.8, "After crews return"),
		weekdayWindows(mondayOnly, 7.5, 9, 0.7, "Monday dispatch morning"),
		weekdayWindows(fridayOnly, 7.5, 9, 0.6, "Friday dispatch morning"),
	)

	add(BusinessTypeAutomotive,
		weekdayWindows(midweekDays, 9.5, 11.5, 0.85, "After morning drop-offs"),
		weekdayWindows(midweekDays, 14, 16, 0.8, "Mid-afternoon bay lull"),
		weekdayWindows(mondayOnly, 14, 16, 0.6, "Monday afternoon"),
		weekdayWindows(fridayOnly, 9.5, 11, 0.55, "Friday late morning"),
	)

	add(BusinessTypeCreator,
		weekdayWindows(midweekDays, 11, 13, 0.8, "Late morning, post-content push"),
		weekdayWindows(midweekDays, 15, 17, 0.7, "Afternoon editing block"),
		weekdayWindows(mondayOnly, 11, 13, 0.6, "Monday late morning"),
		weekdayWindows(fridayOnly, 11, 13, 0.6, "Friday late morning"),
	)

	add(BusinessTypeGeneral,
		weekdayWindows(midweekDays, 10, 11.5, 0.8, "Mid-morning business hours"),
		weekdayWindows(midweekDays, 14, 16, 0.75, "Mid-afternoon business hours"),
		weekdayWindows(mondayOnly, 10, 11.5, 0.6, "Monday mid-morning"),
		weekdayWindows(fridayOnly, 10, 11.5, 0.55, "Friday mid-morning"),
	)

	return t
}
