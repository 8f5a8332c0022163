package outreach

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Near-window and floor heuristics. These literals are load-bearing: downstream
// ranking depends on the exact values, so they must not be tuned casually.
const (
	nearWindowMaxDistance = 1.0  // hours from the nearest window edge
	nearWindowDampening   = 0.5  // bonus multiplier for near-window matches
	businessHoursFloor    = 0.20 // weekday 08:00-17:00 baseline score
	businessHoursStart    = 8.0
	businessHoursEnd      = 17.0
)

// Score label thresholds
const (
	greatTimeThreshold = 0.70
	goodTimeThreshold  = 0.40
	okTimeThreshold    = 0.20
)

// TimingScore is the result of scoring a single instant for a business type
type TimingScore struct {
	Score  float64     `json:"score"`
	Label  string      `json:"label"`
	Window *CallWindow `json:"window,omitempty"`
}

// TimingModel scores instants and finds upcoming call windows against an
// injected window table. The model is immutable after construction and safe
// for concurrent use.
type TimingModel struct {
	windows WindowTable
}

// NewTimingModel creates a timing model over the given window table
func NewTimingModel(windows WindowTable) *TimingModel {
	return &TimingModel{windows: windows}
}

// ScoreInstant scores an arbitrary instant for the given business type.
// The result is always in [0, 1]; there is no failure mode.
func (m *TimingModel) ScoreInstant(bt BusinessType, at time.Time) TimingScore {
	hour := fractionalHour(at)
	dow := at.Weekday()

	var (
		best       float64
		bestWindow *CallWindow
	)

	for i := range m.windows[bt] {
		w := m.windows[bt][i]
		if w.Day != dow {
			continue
		}
		if w.Contains(hour) && w.Weight > best {
			best = w.Weight
			bestWindow = &w
		}
	}

	if bestWindow == nil {
		// Near-window bonus: windows within an hour of the instant still count,
		// discounted by distance.
		for i := range m.windows[bt] {
			w := m.windows[bt][i]
			if w.Day != dow {
				continue
			}
			// Zero distance here means the instant sits exactly on the
			// exclusive end edge; it still earns the full bonus.
			dist := w.edgeDistance(hour)
			if dist >= nearWindowMaxDistance {
				continue
			}
			candidate := w.Weight * (1 - dist) * nearWindowDampening
			if candidate > best {
				best = candidate
			}
		}
	}

	if best == 0 && isWeekday(dow) && hour >= businessHoursStart && hour < businessHoursEnd {
		best = businessHoursFloor
	}

	return TimingScore{
		Score:  best,
		Label:  scoreLabel(best),
		Window: bestWindow,
	}
}

// NextBestWindow scans up to 7 calendar days from the given instant and returns
// the first best-weighted upcoming window. When the scan exhausts (empty table,
// or only already-passed windows on the final in-range weekday), it falls back
// to the next weekday at 10:00 local with weight 0.5.
func (m *TimingModel) NextBestWindow(bt BusinessType, from time.Time) (time.Time, CallWindow) {
	fromHour := fractionalHour(from)

	for offset := 0; offset < 7; offset++ {
		day := from.AddDate(0, 0, offset)
		dow := day.Weekday()

		var (
			best      float64
			bestMatch *CallWindow
		)
		for i := range m.windows[bt] {
			w := m.windows[bt][i]
			if w.Day != dow {
				continue
			}
			if offset == 0 && w.StartHour <= fromHour {
				continue // already passed today
			}
			if w.Weight > best {
				best = w.Weight
				bestMatch = &w
			}
		}

		if bestMatch != nil {
			return atFractionalHour(day, bestMatch.StartHour), *bestMatch
		}
	}

	fallbackDay := from.AddDate(0, 0, 1)
	for !isWeekday(fallbackDay.Weekday()) {
		fallbackDay = fallbackDay.AddDate(0, 0, 1)
	}
	fallback := CallWindow{
		Day:       fallbackDay.Weekday(),
		StartHour: 10,
		EndHour:   11,
		Weight:    0.5,
		Label:     "General business hours",
	}
	return atFractionalHour(fallbackDay, fallback.StartHour), fallback
}

// WindowGroup is a display-oriented grouping of windows sharing a time range
type WindowGroup struct {
	DayLabel  string `json:"day_label"`
	TimeRange string `json:"time_range"`
	Quality   string `json:"quality"` // "best" or "good"
}

// bestQualityThreshold separates "best" groups from merely "good" ones
const bestQualityThreshold = 0.85

// WindowSummary renders the static windows for a business type as grouped,
// human-readable entries ordered by descending weight.
func (m *TimingModel) WindowSummary(bt BusinessType) []WindowGroup {
	type rangeKey struct{ start, end float64 }

	grouped := map[rangeKey][]CallWindow{}
	for _, w := range m.windows[bt] {
		k := rangeKey{w.StartHour, w.EndHour}
		grouped[k] = append(grouped[k], w)
	}

	type entry struct {
		key       rangeKey
		maxWeight float64
		days      []time.Weekday
	}

	entries := make([]entry, 0, len(grouped))
	for k, ws := range grouped {
		e := entry{key: k}
		for _, w := range ws {
			if w.Weight > e.maxWeight {
				e.maxWeight = w.Weight
			}
			e.days = append(e.days, w.Day)
		}
		sort.Slice(e.days, func(i, j int) bool { return e.days[i] < e.days[j] })
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].maxWeight != entries[j].maxWeight {
			return entries[i].maxWeight > entries[j].maxWeight
		}
		return entries[i].key.start < entries[j].key.start
	})

	out := make([]WindowGroup, 0, len(entries))
	for _, e := range entries {
		quality := "good"
		if e.maxWeight >= bestQualityThreshold {
			quality = "best"
		}
		out = append(out, WindowGroup{
			DayLabel:  dayRangeLabel(e.days),
			TimeRange: fmt.Sprintf("%s - %s", formatClock(e.key.start), formatClock(e.key.end)),
			Quality:   quality,
		})
	}
	return out
}

func scoreLabel(score float64) string {
	switch {
	case score >= greatTimeThreshold:
		return "Great time"
	case score >= goodTimeThreshold:
		return "Good time"
	case score >= okTimeThreshold:
		return "OK"
	default:
		return "Off-peak"
	}
}

func isWeekday(d time.Weekday) bool {
	return d >= time.Monday && d <= time.Friday
}

func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// atFractionalHour returns the instant on day's date at the given fractional hour
func atFractionalHour(day time.Time, hour float64) time.Time {
	h := int(hour)
	mi := int((hour-float64(h))*60 + 0.5)
	return time.Date(day.Year(), day.Month(), day.Day(), h, mi, 0, 0, day.Location())
}

var shortDayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// dayRangeLabel merges contiguous weekday runs into range labels, e.g.
// [Tue Wed Thu] -> "Tue-Thu" and [Mon Wed] -> "Mon, Wed".
func dayRangeLabel(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}

	var parts []string
	runStart := days[0]
	prev := days[0]
	flush := func(end time.Weekday) {
		if runStart == end {
			parts = append(parts, shortDayNames[runStart])
		} else {
			parts = append(parts, shortDayNames[runStart]+"-"+shortDayNames[end])
		}
	}
	for _, d := range days[1:] {
		if d == prev+1 {
			prev = d
			continue
		}
		flush(prev)
		runStart = d
		prev = d
	}
	flush(prev)

	return strings.Join(parts, ", ")
}

func formatClock(hour float64) string {
	h := int(hour)
	mi := int((hour-float64(h))*60 + 0.5)

	suffix := "AM"
	display := h
	switch {
	case h == 0:
		display = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		display = h - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, mi, suffix)
}
