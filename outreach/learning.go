package outreach

import (
	"fmt"
	"sort"

	"github.com/amirphl/Yatagarasu/models"
)

// Statistical floors for learned slots. Below these the sample is noise, and
// the function returns nothing rather than an error.
const (
	minLearnActivities    = 5
	minBucketObservations = 3
)

// CallSlot is one historical (weekday, hour) bucket with its observed connect
// rate. Slots are advisory: they are displayed alongside the static windows,
// never merged into them.
type CallSlot struct {
	Day         int     `json:"day"` // 0=Sunday .. 6=Saturday
	Hour        int     `json:"hour"`
	Total       int     `json:"total"`
	Connects    int     `json:"connects"`
	ConnectRate float64 `json:"connect_rate"`
}

// TimeLabel renders the slot as e.g. "Tue 10:00-11:00"
func (s CallSlot) TimeLabel() string {
	return fmt.Sprintf("%s %02d:00-%02d:00", shortDayNames[s.Day], s.Hour, s.Hour+1)
}

// LearnFromHistory ranks historical call outcomes into (weekday, hour) buckets
// by connect rate. Fewer than 5 qualifying call activities, or buckets with
// fewer than 3 observations, yield no output — insufficient signal is not an
// error.
func LearnFromHistory(activities []models.Activity) []CallSlot {
	type bucketKey struct{ day, hour int }

	var calls []models.Activity
	for _, a := range activities {
		if a.IsCall() {
			calls = append(calls, a)
		}
	}
	if len(calls) < minLearnActivities {
		return nil
	}

	buckets := map[bucketKey]*CallSlot{}
	for _, a := range calls {
		k := bucketKey{int(a.OccurredAt.Weekday()), a.OccurredAt.Hour()}
		slot, ok := buckets[k]
		if !ok {
			slot = &CallSlot{Day: k.day, Hour: k.hour}
			buckets[k] = slot
		}
		slot.Total++
		if a.Outcome != nil && a.Outcome.IsConnect() {
			slot.Connects++
		}
	}

	var slots []CallSlot
	for _, slot := range buckets {
		if slot.Total < minBucketObservations {
			continue
		}
		slot.ConnectRate = float64(slot.Connects) / float64(slot.Total)
		slots = append(slots, *slot)
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].ConnectRate != slots[j].ConnectRate {
			return slots[i].ConnectRate > slots[j].ConnectRate
		}
		if slots[i].Total != slots[j].Total {
			return slots[i].Total > slots[j].Total
		}
		if slots[i].Day != slots[j].Day {
			return slots[i].Day < slots[j].Day
		}
		return slots[i].Hour < slots[j].Hour
	})

	return slots
}
