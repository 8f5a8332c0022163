package outreach

import (
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/utils"
)

// Cadence sizing. Step count is availableChannels+3 clamped to [5, 7].
const (
	minCadenceSteps = 5
	maxCadenceSteps = 7
)

// cadenceDayOffsets is the fixed spacing of touches in days. Steps beyond the
// table (possible only if the clamp is ever widened) extend at +3 days each.
var cadenceDayOffsets = []int{0, 2, 5, 8, 12, 16, 21}

const extraStepSpacingDays = 3

// channelPriority is the fixed order in which available channels fill the
// rotation pool after the recommended channel is seeded.
var channelPriority = []models.Channel{
	models.ChannelPhone,
	models.ChannelEmail,
	models.ChannelInstagram,
	models.ChannelFacebook,
	models.ChannelTikTok,
}

// Daily anchor times for non-phone steps
const (
	emailSendHour  = 8
	socialSendHour = 12
)

// templateRotation maps each channel to its first-touch / follow-up / final
// template names. A channel repeating past its rotation reuses the last entry.
var templateRotation = map[models.Channel][]string{
	models.ChannelPhone:     {"cold_call_intro", "call_follow_up", "final_call"},
	models.ChannelEmail:     {"intro_email", "follow_up_email", "break_up_email"},
	models.ChannelInstagram: {"instagram_dm_intro", "instagram_dm_follow_up"},
	models.ChannelFacebook:  {"facebook_dm_intro", "facebook_dm_follow_up"},
	models.ChannelTikTok:    {"tiktok_dm_intro", "tiktok_dm_follow_up"},
}

// AvailableChannels is the set of channels a cadence may use for a lead
type AvailableChannels struct {
	Phone     bool
	Email     bool
	Instagram bool
	Facebook  bool
	TikTok    bool
}

// AvailableChannelsForLead derives the channel set from a lead's contact fields
func AvailableChannelsForLead(l *models.Lead) AvailableChannels {
	return AvailableChannels{
		Phone:     l.HasChannel(models.ChannelPhone),
		Email:     l.HasChannel(models.ChannelEmail),
		Instagram: l.HasChannel(models.ChannelInstagram),
		Facebook:  l.HasChannel(models.ChannelFacebook),
		TikTok:    l.HasChannel(models.ChannelTikTok),
	}
}

// Has reports whether the given channel is available
func (a AvailableChannels) Has(c models.Channel) bool {
	switch c {
	case models.ChannelPhone:
		return a.Phone
	case models.ChannelEmail:
		return a.Email
	case models.ChannelInstagram:
		return a.Instagram
	case models.ChannelFacebook:
		return a.Facebook
	case models.ChannelTikTok:
		return a.TikTok
	default:
		return false
	}
}

// Count returns how many channels are available
func (a AvailableChannels) Count() int {
	n := 0
	for _, c := range channelPriority {
		if a.Has(c) {
			n++
		}
	}
	return n
}

// CadenceGenerator produces multi-step outreach sequences, delegating
// instant-level scheduling of phone steps to the timing model.
type CadenceGenerator struct {
	timing *TimingModel
}

// NewCadenceGenerator creates a cadence generator over the given timing model
func NewCadenceGenerator(timing *TimingModel) *CadenceGenerator {
	return &CadenceGenerator{timing: timing}
}

// Generate builds an ordered list of cadence step drafts for a lead reachable
// on the given channels. An empty channel set yields an empty list — the
// caller decides whether that is a user-facing error. Drafts carry no lead or
// rep IDs; the caller fills those before persisting the batch.
func (g *CadenceGenerator) Generate(avail AvailableChannels, recommended *models.Channel, category *string, start time.Time) []models.CadenceStep {
	pool := g.buildChannelPool(avail, recommended)
	if len(pool) == 0 {
		return nil
	}

	stepCount := avail.Count() + 3
	if stepCount < minCadenceSteps {
		stepCount = minCadenceSteps
	}
	if stepCount > maxCadenceSteps {
		stepCount = maxCadenceSteps
	}

	bt := ClassifyBusiness(category)
	phoneInPool := containsChannel(pool, models.ChannelPhone)

	steps := make([]models.CadenceStep, 0, stepCount)
	channelUse := map[models.Channel]int{}

	for i := 0; i < stepCount; i++ {
		var channel models.Channel
		switch {
		case i == 0:
			channel = pool[0]
		case i == stepCount-1 && phoneInPool:
			// Final attempt is always the personal touch when a phone exists.
			channel = models.ChannelPhone
		default:
			channel = pool[i%len(pool)]
		}

		scheduledAt := g.scheduleStep(channel, bt, start, dayOffset(i))
		template := templateFor(channel, channelUse[channel])
		channelUse[channel]++

		steps = append(steps, models.CadenceStep{
			StepNumber:   i + 1,
			Channel:      channel,
			TemplateName: template,
			ScheduledAt:  scheduledAt,
		})
	}

	return steps
}

// buildChannelPool seeds the rotation with the recommended channel when it is
// both provided and actually available, then appends the remaining available
// channels in fixed priority order.
func (g *CadenceGenerator) buildChannelPool(avail AvailableChannels, recommended *models.Channel) []models.Channel {
	var pool []models.Channel
	if recommended != nil && avail.Has(*recommended) {
		pool = append(pool, *recommended)
	}
	for _, c := range channelPriority {
		if avail.Has(c) && !containsChannel(pool, c) {
			pool = append(pool, c)
		}
	}
	return pool
}

// scheduleStep picks the concrete instant for a step at the given day offset.
// Phone steps follow the timing model; emails land at 08:00 and DMs at 12:00
// on the next non-weekend day.
func (g *CadenceGenerator) scheduleStep(channel models.Channel, bt BusinessType, start time.Time, offsetDays int) time.Time {
	anchor := start.AddDate(0, 0, offsetDays)

	switch channel {
	case models.ChannelPhone:
		at, _ := g.timing.NextBestWindow(bt, anchor)
		return at
	case models.ChannelEmail:
		return utils.NextBusinessDay(atFractionalHour(anchor, emailSendHour))
	default:
		return utils.NextBusinessDay(atFractionalHour(anchor, socialSendHour))
	}
}

func dayOffset(stepIndex int) int {
	if stepIndex < len(cadenceDayOffsets) {
		return cadenceDayOffsets[stepIndex]
	}
	last := len(cadenceDayOffsets) - 1
	return cadenceDayOffsets[last] + extraStepSpacingDays*(stepIndex-last)
}

func templateFor(channel models.Channel, occurrence int) *string {
	rotation, ok := templateRotation[channel]
	if !ok || len(rotation) == 0 {
		return nil
	}
	if occurrence >= len(rotation) {
		occurrence = len(rotation) - 1
	}
	name := rotation[occurrence]
	return &name
}

func containsChannel(pool []models.Channel, c models.Channel) bool {
	for _, p := range pool {
		if p == c {
			return true
		}
	}
	return false
}
