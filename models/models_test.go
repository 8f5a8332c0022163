package models

import (
	"testing"
	"time"

	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineStageValid(t *testing.T) {
	valid := []PipelineStage{
		StageCold, StageContacted, StageWarm, StageHot, StageProposal,
		StageNegotiation, StageClosedWon, StageClosedLost, StageDead,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, PipelineStage("").Valid())
	assert.False(t, PipelineStage("lukewarm").Valid())
	assert.False(t, PipelineStage("COLD").Valid())
}

func TestPipelineStageTerminal(t *testing.T) {
	assert.True(t, StageClosedWon.Terminal())
	assert.True(t, StageClosedLost.Terminal())
	assert.True(t, StageDead.Terminal())

	for _, s := range []PipelineStage{StageCold, StageContacted, StageWarm, StageHot, StageProposal, StageNegotiation} {
		assert.False(t, s.Terminal(), "expected %s to be non-terminal", s)
	}
}

func TestPipelineStageCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    PipelineStage
		to      PipelineStage
		allowed bool
	}{
		{"cold forward to contacted", StageCold, StageContacted, true},
		{"cold skips ahead to hot", StageCold, StageHot, true},
		{"cold straight to negotiation", StageCold, StageNegotiation, true},
		{"contacted forward to warm", StageContacted, StageWarm, true},
		{"warm forward to proposal", StageWarm, StageProposal, true},
		{"negotiation to closed_won", StageNegotiation, StageClosedWon, true},
		{"any active stage can drop to dead", StageWarm, StageDead, true},
		{"cold can drop to closed_lost", StageCold, StageClosedLost, true},
		{"hot can close won directly", StageHot, StageClosedWon, true},

		{"no backward move warm to contacted", StageWarm, StageContacted, false},
		{"no backward move hot to cold", StageHot, StageCold, false},
		{"no backward move negotiation to proposal", StageNegotiation, StageProposal, false},
		{"self move rejected", StageWarm, StageWarm, false},
		{"terminal stages are frozen", StageClosedWon, StageNegotiation, false},
		{"no reopening dead leads", StageDead, StageCold, false},
		{"no moving between terminal stages", StageClosedLost, StageDead, false},
		{"invalid target rejected", StageCold, PipelineStage("limbo"), false},
		{"empty target rejected", StageHot, PipelineStage(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestChannelValid(t *testing.T) {
	for _, c := range []Channel{ChannelPhone, ChannelEmail, ChannelInstagram, ChannelFacebook, ChannelTikTok, ChannelLinkedIn, ChannelInPerson, ChannelOther} {
		assert.True(t, c.Valid(), "expected %s to be valid", c)
	}
	assert.False(t, Channel("fax").Valid())
	assert.False(t, Channel("").Valid())
}

func TestChannelValueRejectsInvalid(t *testing.T) {
	_, err := Channel("carrier_pigeon").Value()
	require.Error(t, err)

	v, err := ChannelPhone.Value()
	require.NoError(t, err)
	assert.Equal(t, "phone", v)
}

func TestLeadHasChannel(t *testing.T) {
	lead := &Lead{
		Phone:           utils.ToPtr("+15551234567"),
		InstagramHandle: utils.ToPtr("@pizzaplace"),
		Email:           utils.ToPtr(""),
	}

	assert.True(t, lead.HasChannel(ChannelPhone))
	assert.True(t, lead.HasChannel(ChannelInstagram))
	assert.False(t, lead.HasChannel(ChannelEmail), "empty string does not count as a channel")
	assert.False(t, lead.HasChannel(ChannelFacebook))
	assert.False(t, lead.HasChannel(ChannelTikTok))
	assert.False(t, lead.HasChannel(ChannelLinkedIn))
	assert.False(t, lead.HasChannel(ChannelInPerson), "in_person has no handle to check")
	assert.False(t, lead.HasChannel(ChannelOther))
}

func TestLeadIsUncontacted(t *testing.T) {
	lead := &Lead{}
	assert.True(t, lead.IsUncontacted())

	lead.LastContactedAt = utils.UTCNowPtr()
	assert.False(t, lead.IsUncontacted())
}

func TestCadenceStepTerminal(t *testing.T) {
	step := &CadenceStep{ScheduledAt: utils.UTCNow()}
	assert.False(t, step.Terminal())
	assert.True(t, step.Pending())

	completed := &CadenceStep{CompletedAt: utils.UTCNowPtr()}
	assert.True(t, completed.Terminal())
	assert.False(t, completed.Pending())

	skipped := &CadenceStep{Skipped: true}
	assert.True(t, skipped.Terminal())
	assert.False(t, skipped.Pending())
}

func TestCadenceStepOverdueAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	yesterday := &CadenceStep{ScheduledAt: now.Add(-24 * time.Hour)}
	assert.True(t, yesterday.OverdueAt(now))

	// Earlier today is not overdue, only days strictly before today are
	earlierToday := &CadenceStep{ScheduledAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)}
	assert.False(t, earlierToday.OverdueAt(now))

	midnight := &CadenceStep{ScheduledAt: utils.StartOfDay(now)}
	assert.False(t, midnight.OverdueAt(now))

	justBeforeMidnight := &CadenceStep{ScheduledAt: utils.StartOfDay(now).Add(-time.Second)}
	assert.True(t, justBeforeMidnight.OverdueAt(now))
}

func TestCadenceStepDueTodayAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	today := &CadenceStep{ScheduledAt: time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)}
	assert.True(t, today.DueTodayAt(now))

	midnight := &CadenceStep{ScheduledAt: utils.StartOfDay(now)}
	assert.True(t, midnight.DueTodayAt(now))

	tomorrow := &CadenceStep{ScheduledAt: utils.StartOfNextDay(now)}
	assert.False(t, tomorrow.DueTodayAt(now))

	yesterday := &CadenceStep{ScheduledAt: now.Add(-24 * time.Hour)}
	assert.False(t, yesterday.DueTodayAt(now))
}

func TestActivityOutcomeIsConnect(t *testing.T) {
	connects := []ActivityOutcome{OutcomeConnected, OutcomeInterested, OutcomeMeetingSet}
	for _, o := range connects {
		assert.True(t, o.IsConnect(), "expected %s to count as a connect", o)
	}

	misses := []ActivityOutcome{
		OutcomeNoAnswer, OutcomeLeftVoicemail, OutcomeNotInterested,
		OutcomeReplied, OutcomeCallbackRequested, OutcomeProposalRequested,
		OutcomeWrongNumber,
	}
	for _, o := range misses {
		assert.False(t, o.IsConnect(), "expected %s to not count as a connect", o)
	}
}

func TestActivityIsCall(t *testing.T) {
	call := &Activity{ActivityType: ActivityTypeCall}
	assert.True(t, call.IsCall())

	phoneChannel := ChannelPhone
	noteOnPhone := &Activity{ActivityType: ActivityTypeNote, Channel: &phoneChannel}
	assert.True(t, noteOnPhone.IsCall(), "phone channel counts even when logged as a note")

	emailChannel := ChannelEmail
	email := &Activity{ActivityType: ActivityTypeEmail, Channel: &emailChannel}
	assert.False(t, email.IsCall())

	note := &Activity{ActivityType: ActivityTypeNote}
	assert.False(t, note.IsCall())
}

func TestSalesRepFullName(t *testing.T) {
	rep := &SalesRep{FirstName: "Jordan", LastName: "Reyes"}
	assert.Equal(t, "Jordan Reyes", rep.FullName())
}

func TestAuditLogIsFailed(t *testing.T) {
	entry := &AuditLog{Action: AuditActionLoginFailed, Success: utils.ToPtr(false)}
	assert.True(t, entry.IsFailed())

	ok := &AuditLog{Action: AuditActionLeadCreated, Success: utils.ToPtr(true)}
	assert.False(t, ok.IsFailed())

	unset := &AuditLog{Action: AuditActionLeadCreated}
	assert.False(t, unset.IsFailed(), "missing success flag defaults to not failed")
}

func TestAuditLogIsSecurityEvent(t *testing.T) {
	for _, action := range []string{AuditActionLoginSuccessful, AuditActionLoginFailed, AuditActionLogout, AuditActionSessionExpired} {
		entry := &AuditLog{Action: action}
		assert.True(t, entry.IsSecurityEvent(), "expected %s to be a security event", action)
	}

	for _, action := range []string{AuditActionLeadCreated, AuditActionCadenceGenerated, AuditActionQueueBuilt} {
		entry := &AuditLog{Action: action}
		assert.False(t, entry.IsSecurityEvent())
	}
}

func TestSalesRepSessionIsValid(t *testing.T) {
	active := &SalesRepSession{
		IsActive:  utils.ToPtr(true),
		ExpiresAt: utils.UTCNowAdd(time.Hour),
	}
	assert.True(t, active.IsValid())
	assert.False(t, active.IsExpired())

	expired := &SalesRepSession{
		IsActive:  utils.ToPtr(true),
		ExpiresAt: utils.UTCNowAdd(-time.Hour),
	}
	assert.True(t, expired.IsExpired())
	assert.False(t, expired.IsValid())

	inactive := &SalesRepSession{
		IsActive:  utils.ToPtr(false),
		ExpiresAt: utils.UTCNowAdd(time.Hour),
	}
	assert.False(t, inactive.IsValid())

	nilActive := &SalesRepSession{
		ExpiresAt: utils.UTCNowAdd(time.Hour),
	}
	assert.False(t, nilActive.IsValid(), "nil is_active is treated as inactive")
}
