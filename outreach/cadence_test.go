package outreach

import (
	"testing"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator() *CadenceGenerator {
	return NewCadenceGenerator(NewTimingModel(DefaultWindowTable()))
}

func TestGenerateEmptyChannelSet(t *testing.T) {
	g := newTestGenerator()

	steps := g.Generate(AvailableChannels{}, nil, nil, monday)
	assert.Empty(t, steps)

	// A recommendation for an unavailable channel cannot rescue an empty set.
	steps = g.Generate(AvailableChannels{}, utils.ToPtr(models.ChannelPhone), nil, monday)
	assert.Empty(t, steps)
}

func TestGenerateStepCountInvariant(t *testing.T) {
	g := newTestGenerator()

	tests := []struct {
		name     string
		avail    AvailableChannels
		expected int
	}{
		{"one channel", AvailableChannels{Phone: true}, 5},
		{"two channels", AvailableChannels{Phone: true, Email: true}, 5},
		{"three channels", AvailableChannels{Phone: true, Email: true, Instagram: true}, 6},
		{"four channels", AvailableChannels{Phone: true, Email: true, Instagram: true, Facebook: true}, 7},
		{"five channels", AvailableChannels{Phone: true, Email: true, Instagram: true, Facebook: true, TikTok: true}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := g.Generate(tt.avail, nil, nil, monday)
			require.Len(t, steps, tt.expected)

			for i, s := range steps {
				assert.Equal(t, i+1, s.StepNumber)
				assert.True(t, s.Channel.Valid())
			}
		})
	}
}

func TestGeneratePhoneLastRule(t *testing.T) {
	g := newTestGenerator()

	// Whatever the recommendation and rotation, the final step is a call when
	// the lead has a phone.
	avails := []AvailableChannels{
		{Phone: true, Email: true},
		{Phone: true, Email: true, Instagram: true, Facebook: true, TikTok: true},
		{Phone: true, Instagram: true},
	}
	recs := []*models.Channel{nil, utils.ToPtr(models.ChannelEmail), utils.ToPtr(models.ChannelInstagram)}

	for _, avail := range avails {
		for _, rec := range recs {
			steps := g.Generate(avail, rec, nil, monday)
			require.NotEmpty(t, steps)
			assert.Equal(t, models.ChannelPhone, steps[len(steps)-1].Channel)
		}
	}
}

func TestGenerateNoPhoneNoPhoneLast(t *testing.T) {
	g := newTestGenerator()

	steps := g.Generate(AvailableChannels{Email: true, Instagram: true}, nil, nil, monday)
	require.Len(t, steps, 5)
	for _, s := range steps {
		assert.NotEqual(t, models.ChannelPhone, s.Channel)
	}
}

func TestGenerateRecommendedChannelSeedsPool(t *testing.T) {
	g := newTestGenerator()

	steps := g.Generate(
		AvailableChannels{Phone: true, Email: true, Instagram: true},
		utils.ToPtr(models.ChannelInstagram),
		nil,
		monday,
	)
	require.NotEmpty(t, steps)
	assert.Equal(t, models.ChannelInstagram, steps[0].Channel)
}

func TestGenerateUnavailableRecommendationIgnored(t *testing.T) {
	g := newTestGenerator()

	steps := g.Generate(
		AvailableChannels{Phone: true, Email: true},
		utils.ToPtr(models.ChannelTikTok),
		nil,
		monday,
	)
	require.NotEmpty(t, steps)
	assert.Equal(t, models.ChannelPhone, steps[0].Channel)
}

func TestGenerateRestaurantScenario(t *testing.T) {
	g := newTestGenerator()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	steps := g.Generate(
		AvailableChannels{Phone: true, Email: true},
		utils.ToPtr(models.ChannelPhone),
		utils.ToPtr("Restaurant"),
		start,
	)

	require.Len(t, steps, 5)
	assert.Equal(t, models.ChannelPhone, steps[0].Channel)
	assert.Equal(t, models.ChannelPhone, steps[4].Channel)

	for _, s := range steps {
		wd := s.ScheduledAt.Weekday()
		assert.NotEqual(t, time.Saturday, wd, "step %d scheduled on Saturday", s.StepNumber)
		assert.NotEqual(t, time.Sunday, wd, "step %d scheduled on Sunday", s.StepNumber)
	}

	// The first call lands in Monday's restaurant window the same day.
	assert.Equal(t, at(start, 14, 0), steps[0].ScheduledAt)
	// The first email snaps to 08:00 two days later (Wednesday, already a weekday).
	assert.Equal(t, at(start.AddDate(0, 0, 2), 8, 0), steps[1].ScheduledAt)
}

func TestGenerateEmailAndSocialWeekendSnap(t *testing.T) {
	g := newTestGenerator()

	// Starting Thursday, the +2 day offset lands the second step on Saturday;
	// email snaps forward to Monday 08:00.
	thursday := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	steps := g.Generate(AvailableChannels{Email: true, Instagram: true}, nil, nil, thursday)
	require.Len(t, steps, 5)

	assert.Equal(t, models.ChannelEmail, steps[0].Channel)
	assert.Equal(t, at(thursday, 8, 0), steps[0].ScheduledAt)

	assert.Equal(t, models.ChannelInstagram, steps[1].Channel)
	// Thursday + 2 = Saturday -> Monday 12:00.
	assert.Equal(t, at(thursday.AddDate(0, 0, 4), 12, 0), steps[1].ScheduledAt)
}

func TestGenerateTemplateRotation(t *testing.T) {
	g := newTestGenerator()

	steps := g.Generate(AvailableChannels{Phone: true}, nil, nil, monday)
	require.Len(t, steps, 5)

	// Five phone touches walk the rotation and cap at the final entry.
	expected := []string{"cold_call_intro", "call_follow_up", "final_call", "final_call", "final_call"}
	for i, s := range steps {
		require.NotNil(t, s.TemplateName)
		assert.Equal(t, expected[i], *s.TemplateName)
	}
}

func TestDayOffsets(t *testing.T) {
	expected := map[int]int{0: 0, 1: 2, 2: 5, 3: 8, 4: 12, 5: 16, 6: 21, 7: 24, 8: 27}
	for idx, want := range expected {
		assert.Equal(t, want, dayOffset(idx), "offset for step index %d", idx)
	}
}

func TestAvailableChannelsForLead(t *testing.T) {
	lead := &models.Lead{
		Phone:           utils.ToPtr("+15551234567"),
		Email:           utils.ToPtr(""),
		InstagramHandle: utils.ToPtr("@tonys"),
	}

	avail := AvailableChannelsForLead(lead)
	assert.True(t, avail.Phone)
	assert.False(t, avail.Email, "empty string is not a usable channel")
	assert.True(t, avail.Instagram)
	assert.False(t, avail.Facebook)
	assert.Equal(t, 2, avail.Count())
}
