package outreach

import (
	"testing"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStage(t *testing.T) {
	tests := []struct {
		name     string
		current  models.PipelineStage
		outcome  *models.ActivityOutcome
		expected *models.PipelineStage
	}{
		{"cold advances on any contact", models.StageCold, nil, utils.ToPtr(models.StageContacted)},
		{"cold advances even on no_answer", models.StageCold, utils.ToPtr(models.OutcomeNoAnswer), utils.ToPtr(models.StageContacted)},
		{"contacted needs an outcome", models.StageContacted, nil, nil},
		{"contacted to hot on meeting_set", models.StageContacted, utils.ToPtr(models.OutcomeMeetingSet), utils.ToPtr(models.StageHot)},
		{"contacted to hot on proposal_requested", models.StageContacted, utils.ToPtr(models.OutcomeProposalRequested), utils.ToPtr(models.StageHot)},
		{"contacted to warm on connected", models.StageContacted, utils.ToPtr(models.OutcomeConnected), utils.ToPtr(models.StageWarm)},
		{"contacted to warm on replied", models.StageContacted, utils.ToPtr(models.OutcomeReplied), utils.ToPtr(models.StageWarm)},
		{"contacted to warm on callback_requested", models.StageContacted, utils.ToPtr(models.OutcomeCallbackRequested), utils.ToPtr(models.StageWarm)},
		{"contacted stays on no_answer", models.StageContacted, utils.ToPtr(models.OutcomeNoAnswer), nil},
		{"warm to hot on meeting_set", models.StageWarm, utils.ToPtr(models.OutcomeMeetingSet), utils.ToPtr(models.StageHot)},
		{"warm stays on connected", models.StageWarm, utils.ToPtr(models.OutcomeConnected), nil},
		{"hot never auto-advances", models.StageHot, utils.ToPtr(models.OutcomeMeetingSet), nil},
		{"proposal never auto-advances", models.StageProposal, utils.ToPtr(models.OutcomeMeetingSet), nil},
		{"negotiation never auto-advances", models.StageNegotiation, utils.ToPtr(models.OutcomeProposalRequested), nil},
		{"closed_won never auto-advances", models.StageClosedWon, utils.ToPtr(models.OutcomeConnected), nil},
		{"dead never auto-advances", models.StageDead, utils.ToPtr(models.OutcomeMeetingSet), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStage(tt.current, tt.outcome)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestNextStageForwardOnly(t *testing.T) {
	stages := []models.PipelineStage{
		models.StageCold, models.StageContacted, models.StageWarm, models.StageHot,
		models.StageProposal, models.StageNegotiation, models.StageClosedWon,
		models.StageClosedLost, models.StageDead,
	}
	outcomes := []*models.ActivityOutcome{
		nil,
		utils.ToPtr(models.OutcomeNoAnswer),
		utils.ToPtr(models.OutcomeLeftVoicemail),
		utils.ToPtr(models.OutcomeConnected),
		utils.ToPtr(models.OutcomeInterested),
		utils.ToPtr(models.OutcomeNotInterested),
		utils.ToPtr(models.OutcomeReplied),
		utils.ToPtr(models.OutcomeCallbackRequested),
		utils.ToPtr(models.OutcomeMeetingSet),
		utils.ToPtr(models.OutcomeProposalRequested),
		utils.ToPtr(models.OutcomeWrongNumber),
	}

	autoAdvanceable := map[models.PipelineStage]bool{
		models.StageCold: true, models.StageContacted: true, models.StageWarm: true,
	}
	validTargets := map[models.PipelineStage]bool{
		models.StageContacted: true, models.StageWarm: true, models.StageHot: true,
	}

	for _, stage := range stages {
		for _, outcome := range outcomes {
			got := NextStage(stage, outcome)
			if !autoAdvanceable[stage] {
				assert.Nil(t, got, "stage %s must never auto-advance", stage)
				continue
			}
			if got != nil {
				assert.True(t, validTargets[*got], "unexpected target %s from %s", *got, stage)
				assert.True(t, stage.CanTransitionTo(*got), "auto-advance from %s to %s must be a forward move", stage, *got)
			}
		}
	}
}
