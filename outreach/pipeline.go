package outreach

import (
	"github.com/amirphl/Yatagarasu/models"
)

// hotOutcomes jump a lead straight to hot; warmOutcomes move contacted leads
// one stage forward.
var (
	hotOutcomes = map[models.ActivityOutcome]bool{
		models.OutcomeMeetingSet:        true,
		models.OutcomeProposalRequested: true,
	}
	warmOutcomes = map[models.ActivityOutcome]bool{
		models.OutcomeConnected:         true,
		models.OutcomeInterested:        true,
		models.OutcomeReplied:           true,
		models.OutcomeCallbackRequested: true,
	}
)

// NextStage is the pipeline auto-advance rule applied when an activity is
// logged. It only ever moves a lead strictly forward through the early funnel;
// stages at or beyond proposal are advanced by explicit user action only.
// A nil return means no change.
func NextStage(current models.PipelineStage, outcome *models.ActivityOutcome) *models.PipelineStage {
	switch current {
	case models.StageCold:
		// Merely attempting contact counts, whatever the outcome.
		return stagePtr(models.StageContacted)
	case models.StageContacted:
		if outcome == nil {
			return nil
		}
		if hotOutcomes[*outcome] {
			return stagePtr(models.StageHot)
		}
		if warmOutcomes[*outcome] {
			return stagePtr(models.StageWarm)
		}
		return nil
	case models.StageWarm:
		if outcome == nil {
			return nil
		}
		if hotOutcomes[*outcome] {
			return stagePtr(models.StageHot)
		}
		return nil
	default:
		return nil
	}
}

func stagePtr(s models.PipelineStage) *models.PipelineStage {
	return &s
}
