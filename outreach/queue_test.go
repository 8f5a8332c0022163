package outreach

import (
	"testing"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRepID uint = 7

func newTestQueueBuilder() *QueueBuilder {
	return NewQueueBuilder(NewTimingModel(DefaultWindowTable()))
}

func queueLead(id uint, category string, composite float64) *models.Lead {
	l := &models.Lead{
		ID:             id,
		AssignedTo:     utils.ToPtr(testRepID),
		Name:           "Lead",
		CompositeScore: composite,
		PipelineStage:  models.StageCold,
		Phone:          utils.ToPtr("+15550000000"),
		Email:          utils.ToPtr("lead@example.com"),
	}
	if category != "" {
		l.Category = &category
	}
	return l
}

func pendingStep(id, leadID uint, channel models.Channel, scheduledAt time.Time) *models.CadenceStep {
	return &models.CadenceStep{
		ID:          id,
		LeadID:      leadID,
		SalesRepID:  testRepID,
		StepNumber:  1,
		Channel:     channel,
		ScheduledAt: scheduledAt,
	}
}

func TestSessionTypeChannels(t *testing.T) {
	assert.True(t, SessionTypeCall.Valid())
	assert.False(t, SessionType("walk_in").Valid())

	assert.Equal(t, map[models.Channel]bool{models.ChannelPhone: true}, SessionTypeCall.Channels())
	assert.Equal(t, map[models.Channel]bool{models.ChannelEmail: true}, SessionTypeEmail.Channels())

	dm := SessionTypeDM.Channels()
	assert.True(t, dm[models.ChannelInstagram])
	assert.True(t, dm[models.ChannelLinkedIn])
	assert.False(t, dm[models.ChannelPhone])
	assert.False(t, dm[models.ChannelEmail])

	mixed := SessionTypeMixed.Channels()
	assert.Len(t, mixed, 6)
	assert.True(t, mixed[models.ChannelPhone])
	assert.True(t, mixed[models.ChannelEmail])
}

func TestBuildBucketOrder(t *testing.T) {
	b := newTestQueueBuilder()
	now := at(wednesday, 9, 30)

	leads := []*models.Lead{
		queueLead(1, "Tony's Pizza", 50),
		queueLead(2, "Bella Salon Spa", 60),
		queueLead(3, "Fresh Start Cleaning", 70),
	}
	// Lead 3 has no step at all, so it queues as uncontacted.
	steps := []*models.CadenceStep{
		pendingStep(10, 1, models.ChannelPhone, at(monday, 14, 0)),    // overdue
		pendingStep(11, 2, models.ChannelPhone, at(wednesday, 13, 0)), // today
	}

	queue := b.Build(steps, leads, SessionTypeCall, testRepID, now)
	require.Len(t, queue, 3)

	assert.Equal(t, ReasonOverdue, queue[0].Reason)
	assert.Equal(t, uint(1), queue[0].Lead.ID)
	assert.Equal(t, ReasonToday, queue[1].Reason)
	assert.Equal(t, uint(2), queue[1].Lead.ID)
	assert.Equal(t, ReasonUncontacted, queue[2].Reason)
	assert.Equal(t, uint(3), queue[2].Lead.ID)
	assert.Nil(t, queue[2].Step)
}

func TestBuildCompletenessAndExclusivity(t *testing.T) {
	b := newTestQueueBuilder()
	now := at(wednesday, 9, 30)

	done := utils.UTCNow()
	leads := []*models.Lead{queueLead(1, "", 50), queueLead(2, "", 60)}
	steps := []*models.CadenceStep{
		pendingStep(10, 1, models.ChannelPhone, at(monday, 10, 0)),
		pendingStep(11, 1, models.ChannelPhone, at(wednesday, 11, 0)),
		pendingStep(12, 2, models.ChannelEmail, at(wednesday, 11, 0)),  // wrong channel for a call session
		pendingStep(13, 2, models.ChannelPhone, at(wednesday, 23, 59)), // due today, included
	}
	steps = append(steps, &models.CadenceStep{
		ID: 14, LeadID: 2, SalesRepID: testRepID, Channel: models.ChannelPhone,
		ScheduledAt: at(monday, 10, 0), CompletedAt: &done, // terminal
	})
	otherRep := pendingStep(15, 2, models.ChannelPhone, at(wednesday, 12, 0))
	otherRep.SalesRepID = testRepID + 1
	steps = append(steps, otherRep)
	// Scheduled after today: not part of this session.
	steps = append(steps, pendingStep(16, 1, models.ChannelPhone, at(wednesday.AddDate(0, 0, 1), 9, 0)))

	queue := b.Build(steps, leads, SessionTypeCall, testRepID, now)
	require.Len(t, queue, 3)

	seen := map[uint]bool{}
	for _, item := range queue {
		require.NotNil(t, item.Step)
		assert.False(t, seen[item.Step.ID], "step %d queued twice", item.Step.ID)
		seen[item.Step.ID] = true
		assert.NotEqual(t, ReasonUncontacted, item.Reason, "stepped leads never re-enter as uncontacted")
	}
	assert.True(t, seen[10] && seen[11] && seen[13])
}

func TestBuildOverdueOrdering(t *testing.T) {
	b := newTestQueueBuilder()
	now := at(wednesday, 9, 30)

	leads := []*models.Lead{queueLead(1, "", 50), queueLead(2, "", 60), queueLead(3, "", 70)}
	leads[0].LastContactedAt = utils.ToPtr(at(monday, 9, 0))
	leads[1].LastContactedAt = utils.ToPtr(at(monday, 9, 0))
	leads[2].LastContactedAt = utils.ToPtr(at(monday, 9, 0))
	steps := []*models.CadenceStep{
		pendingStep(10, 1, models.ChannelPhone, at(monday.AddDate(0, 0, 1), 10, 0)),
		pendingStep(11, 2, models.ChannelPhone, at(monday, 10, 0)),
		pendingStep(12, 3, models.ChannelPhone, at(monday, 14, 0)),
	}

	queue := b.Build(steps, leads, SessionTypeCall, testRepID, now)
	require.Len(t, queue, 3)

	// Most overdue first.
	assert.Equal(t, uint(11), queue[0].Step.ID)
	assert.Equal(t, uint(12), queue[1].Step.ID)
	assert.Equal(t, uint(10), queue[2].Step.ID)
}

func TestBuildTodayOrderingByTimingScore(t *testing.T) {
	b := newTestQueueBuilder()
	// Wednesday 09:30 scores 0.95 for restaurants and well under that for
	// unclassified businesses.
	now := at(wednesday, 9, 30)

	leads := []*models.Lead{
		queueLead(1, "Acme Holdings", 90),
		queueLead(2, "Tony's Pizza", 10),
	}
	leads[0].LastContactedAt = utils.ToPtr(at(monday, 9, 0))
	leads[1].LastContactedAt = utils.ToPtr(at(monday, 9, 0))
	steps := []*models.CadenceStep{
		pendingStep(10, 1, models.ChannelPhone, at(wednesday, 9, 0)),
		pendingStep(11, 2, models.ChannelPhone, at(wednesday, 15, 0)),
	}

	queue := b.Build(steps, leads, SessionTypeCall, testRepID, now)
	require.Len(t, queue, 2)

	// The restaurant outranks the earlier-scheduled step on timing score.
	assert.Equal(t, uint(11), queue[0].Step.ID)
	require.NotNil(t, queue[0].TimingScore)
	assert.Equal(t, 0.95, *queue[0].TimingScore)
	assert.Equal(t, uint(10), queue[1].Step.ID)
}

func TestBuildEmailSessionUnscored(t *testing.T) {
	b := newTestQueueBuilder()
	now := at(wednesday, 9, 30)

	leads := []*models.Lead{
		queueLead(1, "Tony's Pizza", 40),
		queueLead(2, "Bella Salon", 90),
		queueLead(3, "Corner Bakery", 65),
	}
	leads[0].LastContactedAt = utils.ToPtr(at(monday, 9, 0))
	steps := []*models.CadenceStep{
		pendingStep(10, 1, models.ChannelEmail, at(wednesday, 15, 0)),
	}

	queue := b.Build(steps, leads, SessionTypeEmail, testRepID, now)
	require.Len(t, queue, 3)

	// Email sessions never consult the timing model.
	for _, item := range queue {
		assert.Nil(t, item.TimingScore)
	}

	// Uncontacted leads rank by composite score alone.
	assert.Equal(t, uint(2), queue[1].Lead.ID)
	assert.Equal(t, uint(3), queue[2].Lead.ID)
}

func TestBuildUncontactedFiltering(t *testing.T) {
	b := newTestQueueBuilder()
	now := at(wednesday, 9, 30)

	assigned := queueLead(1, "", 50)

	unassigned := queueLead(2, "", 50)
	unassigned.AssignedTo = nil

	otherRep := queueLead(3, "", 50)
	otherRep.AssignedTo = utils.ToPtr(testRepID + 1)

	contacted := queueLead(4, "", 50)
	contacted.LastContactedAt = utils.ToPtr(at(monday, 9, 0))

	warm := queueLead(5, "", 50)
	warm.PipelineStage = models.StageWarm

	recEmail := queueLead(6, "", 50)
	recEmail.AIChannelRec = utils.ToPtr(models.ChannelEmail)

	leads := []*models.Lead{assigned, unassigned, otherRep, contacted, warm, recEmail}

	queue := b.Build(nil, leads, SessionTypeCall, testRepID, now)
	require.Len(t, queue, 1)
	assert.Equal(t, uint(1), queue[0].Lead.ID)

	// A mixed session takes any recommendation.
	queue = b.Build(nil, leads, SessionTypeMixed, testRepID, now)
	ids := map[uint]bool{}
	for _, item := range queue {
		ids[item.Lead.ID] = true
	}
	assert.True(t, ids[1])
	assert.True(t, ids[6])

	// And the email session picks up the email-recommended lead.
	queue = b.Build(nil, leads, SessionTypeEmail, testRepID, now)
	require.Len(t, queue, 2)
}

func TestBuildUncontactedTimingTieThreshold(t *testing.T) {
	b := newTestQueueBuilder()
	now := at(wednesday, 9, 30)

	t.Run("close scores fall back to composite", func(t *testing.T) {
		// Two restaurants share the 0.95 score; the stronger lead goes first.
		leads := []*models.Lead{
			queueLead(1, "Tony's Pizza", 40),
			queueLead(2, "Corner Diner", 80),
		}

		queue := b.Build(nil, leads, SessionTypeCall, testRepID, now)
		require.Len(t, queue, 2)
		assert.Equal(t, uint(2), queue[0].Lead.ID)
	})

	t.Run("distant scores rank on timing", func(t *testing.T) {
		// Restaurant at 0.95 versus general business off its window; timing wins
		// even though the general lead has the better composite score.
		leads := []*models.Lead{
			queueLead(1, "Acme Holdings", 95),
			queueLead(2, "Tony's Pizza", 5),
		}

		queue := b.Build(nil, leads, SessionTypeCall, testRepID, now)
		require.Len(t, queue, 2)
		assert.Equal(t, uint(2), queue[0].Lead.ID)
	})
}

func TestBuildStepWithMissingLead(t *testing.T) {
	b := newTestQueueBuilder()
	now := at(wednesday, 9, 30)

	leads := []*models.Lead{queueLead(1, "Tony's Pizza", 50)}
	leads[0].LastContactedAt = utils.ToPtr(at(monday, 9, 0))
	steps := []*models.CadenceStep{
		pendingStep(10, 1, models.ChannelPhone, at(wednesday, 11, 0)),
		pendingStep(11, 999, models.ChannelPhone, at(wednesday, 8, 0)),
	}

	queue := b.Build(steps, leads, SessionTypeCall, testRepID, now)
	require.Len(t, queue, 2)

	// The orphaned step stays in the queue but carries no lead or score and
	// sorts after scored work.
	assert.Equal(t, uint(10), queue[0].Step.ID)
	assert.Equal(t, uint(11), queue[1].Step.ID)
	assert.Nil(t, queue[1].Lead)
	assert.Nil(t, queue[1].TimingScore)
}
