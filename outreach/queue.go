package outreach

import (
	"sort"
	"time"

	"github.com/amirphl/Yatagarasu/models"
)

// SessionType selects which cadence channels an outreach work session covers
type SessionType string

const (
	SessionTypeEmail SessionType = "email"
	SessionTypeCall  SessionType = "call"
	SessionTypeDM    SessionType = "dm"
	SessionTypeMixed SessionType = "mixed"
)

// String returns the string representation of the session type
func (s SessionType) String() string {
	return string(s)
}

// Valid checks if the session type is valid
func (s SessionType) Valid() bool {
	switch s {
	case SessionTypeEmail, SessionTypeCall, SessionTypeDM, SessionTypeMixed:
		return true
	default:
		return false
	}
}

// usesTimingScores reports whether queue ordering for this session type uses
// the timing model
func (s SessionType) usesTimingScores() bool {
	return s == SessionTypeCall || s == SessionTypeMixed
}

// Channels returns the whitelist of cadence channels eligible for the session
func (s SessionType) Channels() map[models.Channel]bool {
	switch s {
	case SessionTypeEmail:
		return map[models.Channel]bool{models.ChannelEmail: true}
	case SessionTypeCall:
		return map[models.Channel]bool{models.ChannelPhone: true}
	case SessionTypeDM:
		return map[models.Channel]bool{
			models.ChannelInstagram: true,
			models.ChannelFacebook:  true,
			models.ChannelTikTok:    true,
			models.ChannelLinkedIn:  true,
		}
	case SessionTypeMixed:
		return map[models.Channel]bool{
			models.ChannelPhone:     true,
			models.ChannelEmail:     true,
			models.ChannelInstagram: true,
			models.ChannelFacebook:  true,
			models.ChannelTikTok:    true,
			models.ChannelLinkedIn:  true,
		}
	default:
		return map[models.Channel]bool{}
	}
}

// QueueReason tags why an item entered the session queue
type QueueReason string

const (
	ReasonOverdue     QueueReason = "overdue"
	ReasonToday       QueueReason = "today"
	ReasonUncontacted QueueReason = "uncontacted"
)

// QueueItem is one unit of work in a session queue. Items are ephemeral; the
// queue is rebuilt fresh at each session start.
type QueueItem struct {
	Lead        *models.Lead        `json:"lead"`
	Step        *models.CadenceStep `json:"step,omitempty"`
	Reason      QueueReason         `json:"reason"`
	TimingScore *float64            `json:"timing_score,omitempty"`
}

// compositeScoreTieThreshold is the timing-score gap below which uncontacted
// leads fall back to composite-score ordering in call/mixed sessions
const compositeScoreTieThreshold = 0.1

// QueueBuilder merges pending cadence steps and fresh leads into one ranked
// work queue per outreach session.
type QueueBuilder struct {
	timing *TimingModel
}

// NewQueueBuilder creates a queue builder over the given timing model
func NewQueueBuilder(timing *TimingModel) *QueueBuilder {
	return &QueueBuilder{timing: timing}
}

// Build produces the consumption order for one work session: overdue steps,
// then steps due today, then fresh uncontacted leads. The caller supplies the
// session instant so the builder stays deterministic and side-effect free.
func (b *QueueBuilder) Build(steps []*models.CadenceStep, leads []*models.Lead, sessionType SessionType, repID uint, now time.Time) []QueueItem {
	whitelist := sessionType.Channels()
	scored := sessionType.usesTimingScores()

	leadByID := make(map[uint]*models.Lead, len(leads))
	for _, l := range leads {
		leadByID[l.ID] = l
	}

	// Score cache per lead; every step of the same lead shares one "now" score.
	scores := map[uint]*float64{}
	scoreFor := func(leadID uint) *float64 {
		if !scored {
			return nil
		}
		if s, ok := scores[leadID]; ok {
			return s
		}
		lead, ok := leadByID[leadID]
		if !ok {
			scores[leadID] = nil
			return nil
		}
		s := b.timing.ScoreInstant(ClassifyBusiness(lead.Category), now).Score
		scores[leadID] = &s
		return &s
	}

	var overdue, today []QueueItem
	queuedLeads := map[uint]bool{}

	for _, step := range steps {
		if step.Terminal() || step.SalesRepID != repID || !whitelist[step.Channel] {
			continue
		}

		item := QueueItem{
			Lead:        leadByID[step.LeadID],
			Step:        step,
			TimingScore: scoreFor(step.LeadID),
		}

		switch {
		case step.OverdueAt(now):
			item.Reason = ReasonOverdue
			overdue = append(overdue, item)
			queuedLeads[step.LeadID] = true
		case step.DueTodayAt(now):
			item.Reason = ReasonToday
			today = append(today, item)
			queuedLeads[step.LeadID] = true
		}
		// Steps scheduled after today are not part of this session.
	}

	// Overdue: most overdue first; equal instants in call sessions break on score.
	sort.SliceStable(overdue, func(i, j int) bool {
		if !overdue[i].Step.ScheduledAt.Equal(overdue[j].Step.ScheduledAt) {
			return overdue[i].Step.ScheduledAt.Before(overdue[j].Step.ScheduledAt)
		}
		if scored {
			return scoreValue(overdue[i].TimingScore) > scoreValue(overdue[j].TimingScore)
		}
		return false
	})

	sort.SliceStable(today, func(i, j int) bool {
		if scored {
			si, sj := scoreValue(today[i].TimingScore), scoreValue(today[j].TimingScore)
			if si != sj {
				return si > sj
			}
		}
		return today[i].Step.ScheduledAt.Before(today[j].Step.ScheduledAt)
	})

	uncontacted := b.buildUncontacted(leads, sessionType, repID, queuedLeads, scoreFor)

	queue := make([]QueueItem, 0, len(overdue)+len(today)+len(uncontacted))
	queue = append(queue, overdue...)
	queue = append(queue, today...)
	queue = append(queue, uncontacted...)
	return queue
}

func (b *QueueBuilder) buildUncontacted(leads []*models.Lead, sessionType SessionType, repID uint, queuedLeads map[uint]bool, scoreFor func(uint) *float64) []QueueItem {
	whitelist := sessionType.Channels()
	scored := sessionType.usesTimingScores()

	var items []QueueItem
	for _, lead := range leads {
		if lead.AssignedTo == nil || *lead.AssignedTo != repID {
			continue
		}
		if lead.PipelineStage != models.StageCold || !lead.IsUncontacted() || queuedLeads[lead.ID] {
			continue
		}
		// Single-channel sessions skip leads explicitly recommended for a
		// different channel; leads with no recommendation pass through.
		if sessionType != SessionTypeMixed && lead.AIChannelRec != nil && !whitelist[*lead.AIChannelRec] {
			continue
		}

		items = append(items, QueueItem{
			Lead:        lead,
			Reason:      ReasonUncontacted,
			TimingScore: scoreFor(lead.ID),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if scored {
			si, sj := scoreValue(items[i].TimingScore), scoreValue(items[j].TimingScore)
			// Close timing scores are a wash; let lead quality decide.
			if diff := si - sj; diff >= compositeScoreTieThreshold || diff <= -compositeScoreTieThreshold {
				return si > sj
			}
		}
		return items[i].Lead.CompositeScore > items[j].Lead.CompositeScore
	})

	return items
}

func scoreValue(s *float64) float64 {
	if s == nil {
		return -1
	}
	return *s
}
