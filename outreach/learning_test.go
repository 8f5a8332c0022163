package outreach

import (
	"testing"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callActivity(day time.Time, hour int, outcome *models.ActivityOutcome) models.Activity {
	return models.Activity{
		ActivityType: models.ActivityTypeCall,
		Outcome:      outcome,
		OccurredAt:   at(day, hour, 15),
	}
}

func TestLearnFromHistoryInsufficientSignal(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, LearnFromHistory(nil))
	})

	t.Run("fewer than five calls", func(t *testing.T) {
		var activities []models.Activity
		for i := 0; i < 4; i++ {
			activities = append(activities, callActivity(monday, 10, utils.ToPtr(models.OutcomeConnected)))
		}
		assert.Empty(t, LearnFromHistory(activities))
	})

	t.Run("non-call activities do not count toward the minimum", func(t *testing.T) {
		var activities []models.Activity
		for i := 0; i < 4; i++ {
			activities = append(activities, callActivity(monday, 10, utils.ToPtr(models.OutcomeConnected)))
		}
		for i := 0; i < 10; i++ {
			activities = append(activities, models.Activity{
				ActivityType: models.ActivityTypeEmail,
				OccurredAt:   at(monday, 10, 0),
			})
		}
		assert.Empty(t, LearnFromHistory(activities))
	})
}

func TestLearnFromHistoryBucketFloor(t *testing.T) {
	// Six calls total, but spread so one bucket has only two observations:
	// that bucket must not be reported.
	activities := []models.Activity{
		callActivity(monday, 10, utils.ToPtr(models.OutcomeConnected)),
		callActivity(monday, 10, utils.ToPtr(models.OutcomeNoAnswer)),
		callActivity(monday, 10, utils.ToPtr(models.OutcomeConnected)),
		callActivity(monday, 10, utils.ToPtr(models.OutcomeConnected)),
		callActivity(wednesday, 14, utils.ToPtr(models.OutcomeConnected)),
		callActivity(wednesday, 14, utils.ToPtr(models.OutcomeNoAnswer)),
	}

	slots := LearnFromHistory(activities)
	require.Len(t, slots, 1)
	assert.Equal(t, int(time.Monday), slots[0].Day)
	assert.Equal(t, 10, slots[0].Hour)
	assert.Equal(t, 4, slots[0].Total)
	assert.Equal(t, 3, slots[0].Connects)
	assert.InDelta(t, 0.75, slots[0].ConnectRate, 1e-9)
}

func TestLearnFromHistoryRanking(t *testing.T) {
	var activities []models.Activity

	// Monday 09:00 bucket: 1/3 connects.
	activities = append(activities,
		callActivity(monday, 9, utils.ToPtr(models.OutcomeConnected)),
		callActivity(monday, 9, utils.ToPtr(models.OutcomeNoAnswer)),
		callActivity(monday, 9, utils.ToPtr(models.OutcomeLeftVoicemail)),
	)

	// Wednesday 14:00 bucket: 3/3 connects (meeting_set and interested count).
	activities = append(activities,
		callActivity(wednesday, 14, utils.ToPtr(models.OutcomeMeetingSet)),
		callActivity(wednesday, 14, utils.ToPtr(models.OutcomeInterested)),
		callActivity(wednesday, 14, utils.ToPtr(models.OutcomeConnected)),
	)

	slots := LearnFromHistory(activities)
	require.Len(t, slots, 2)

	assert.Equal(t, int(time.Wednesday), slots[0].Day)
	assert.Equal(t, 14, slots[0].Hour)
	assert.InDelta(t, 1.0, slots[0].ConnectRate, 1e-9)

	assert.Equal(t, int(time.Monday), slots[1].Day)
	assert.InDelta(t, 1.0/3.0, slots[1].ConnectRate, 1e-9)
}

func TestLearnFromHistoryNilOutcomeIsNotAConnect(t *testing.T) {
	var activities []models.Activity
	for i := 0; i < 5; i++ {
		activities = append(activities, callActivity(monday, 11, nil))
	}

	slots := LearnFromHistory(activities)
	require.Len(t, slots, 1)
	assert.Equal(t, 0, slots[0].Connects)
	assert.Equal(t, 0.0, slots[0].ConnectRate)
}

func TestCallSlotTimeLabel(t *testing.T) {
	slot := CallSlot{Day: int(time.Tuesday), Hour: 9}
	assert.Equal(t, "Tue 09:00-10:00", slot.TimeLabel())
}
