package businessflow

import (
	"context"
	"fmt"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/outreach"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
	"gorm.io/gorm"
)

// CadenceFlow provides use cases for generating and working outreach cadences
type CadenceFlow interface {
	GenerateCadence(ctx context.Context, repID uint, leadUUID string, metadata *ClientMetadata) (*dto.GenerateCadenceResponse, error)
	ListSteps(ctx context.Context, repID uint, leadUUID string) (*dto.ListCadenceResponse, error)
	CompleteStep(ctx context.Context, repID uint, stepID uint, metadata *ClientMetadata) (*dto.CompleteStepResponse, error)
	SkipStep(ctx context.Context, repID uint, stepID uint, metadata *ClientMetadata) (*dto.SkipStepResponse, error)
}

// CadenceFlowImpl implements the cadence business flow
type CadenceFlowImpl struct {
	stepRepo  repository.CadenceStepRepository
	leadRepo  repository.LeadRepository
	auditRepo repository.AuditLogRepository
	generator *outreach.CadenceGenerator
	db        *gorm.DB
}

// NewCadenceFlow creates a new cadence flow instance
func NewCadenceFlow(
	stepRepo repository.CadenceStepRepository,
	leadRepo repository.LeadRepository,
	auditRepo repository.AuditLogRepository,
	generator *outreach.CadenceGenerator,
	db *gorm.DB,
) CadenceFlow {
	return &CadenceFlowImpl{
		stepRepo:  stepRepo,
		leadRepo:  leadRepo,
		auditRepo: auditRepo,
		generator: generator,
		db:        db,
	}
}

// GenerateCadence builds a fresh cadence for the lead. Any pending steps from a
// previous cadence are skipped first so exactly one cadence is in effect.
func (f *CadenceFlowImpl) GenerateCadence(ctx context.Context, repID uint, leadUUID string, metadata *ClientMetadata) (*dto.GenerateCadenceResponse, error) {
	resp, err := f.withGenerateTransaction(ctx, func(ctx context.Context) (*dto.GenerateCadenceResponse, error) {
		lead, err := f.findOwnedLead(ctx, repID, leadUUID)
		if err != nil {
			return nil, err
		}

		avail := outreach.AvailableChannelsForLead(lead)
		if avail.Count() == 0 {
			return nil, ErrNoAvailableChannels
		}

		// Retire the previous cadence
		pending, err := f.stepRepo.ByFilter(ctx, models.CadenceStepFilter{
			LeadID:     &lead.ID,
			SalesRepID: &repID,
			Pending:    utils.ToPtr(true),
		}, "", 0, 0)
		if err != nil {
			return nil, err
		}
		if len(pending) > 0 {
			if err := f.stepRepo.SkipPendingForLead(ctx, lead.ID, repID); err != nil {
				return nil, err
			}
		}

		steps := f.generator.Generate(avail, lead.AIChannelRec, lead.Category, utils.UTCNow())

		saved := make([]*models.CadenceStep, 0, len(steps))
		for i := range steps {
			steps[i].LeadID = lead.ID
			steps[i].SalesRepID = repID
			saved = append(saved, &steps[i])
		}
		if err := f.stepRepo.SaveBatch(ctx, saved); err != nil {
			return nil, err
		}

		items := make([]dto.CadenceStepDTO, 0, len(saved))
		for _, step := range saved {
			items = append(items, ToCadenceStepDTO(*step))
		}

		return &dto.GenerateCadenceResponse{
			LeadUUID:      lead.UUID.String(),
			BusinessType:  outreach.ClassifyBusiness(lead.Category).String(),
			Steps:         items,
			ReplacedSteps: len(pending),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Cadence generation failed: %s", err.Error())
		_ = f.logCadenceAction(ctx, repID, models.AuditActionCadenceGenFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("CADENCE_GENERATION_FAILED", "Cadence generation failed", err)
	}

	msg := fmt.Sprintf("Cadence generated for lead %s: %d steps", resp.LeadUUID, len(resp.Steps))
	_ = f.logCadenceAction(ctx, repID, models.AuditActionCadenceGenerated, msg, true, nil, metadata)

	return resp, nil
}

// ListSteps returns all cadence steps for a lead, in step order
func (f *CadenceFlowImpl) ListSteps(ctx context.Context, repID uint, leadUUID string) (*dto.ListCadenceResponse, error) {
	lead, err := f.findOwnedLead(ctx, repID, leadUUID)
	if err != nil {
		return nil, NewBusinessError("CADENCE_LIST_FAILED", "Cadence listing failed", err)
	}

	steps, err := f.stepRepo.ListByLead(ctx, lead.ID)
	if err != nil {
		return nil, NewBusinessError("CADENCE_LIST_FAILED", "Cadence listing failed", err)
	}

	items := make([]dto.CadenceStepDTO, 0, len(steps))
	for _, step := range steps {
		items = append(items, ToCadenceStepDTO(*step))
	}

	return &dto.ListCadenceResponse{Items: items}, nil
}

// CompleteStep marks a pending step as done
func (f *CadenceFlowImpl) CompleteStep(ctx context.Context, repID uint, stepID uint, metadata *ClientMetadata) (*dto.CompleteStepResponse, error) {
	resp, err := f.withCompleteTransaction(ctx, func(ctx context.Context) (*dto.CompleteStepResponse, error) {
		step, err := f.findOwnedStep(ctx, repID, stepID)
		if err != nil {
			return nil, err
		}

		now := utils.UTCNow()
		if err := f.stepRepo.MarkCompleted(ctx, step.ID, now); err != nil {
			return nil, err
		}
		step.CompletedAt = &now

		return &dto.CompleteStepResponse{Step: ToCadenceStepDTO(*step)}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Step completion failed: %s", err.Error())
		_ = f.logCadenceAction(ctx, repID, models.AuditActionStepCompleted, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("STEP_COMPLETE_FAILED", "Step completion failed", err)
	}

	msg := fmt.Sprintf("Cadence step completed: %d", stepID)
	_ = f.logCadenceAction(ctx, repID, models.AuditActionStepCompleted, msg, true, nil, metadata)

	return resp, nil
}

// SkipStep marks a pending step as skipped
func (f *CadenceFlowImpl) SkipStep(ctx context.Context, repID uint, stepID uint, metadata *ClientMetadata) (*dto.SkipStepResponse, error) {
	resp, err := f.withSkipTransaction(ctx, func(ctx context.Context) (*dto.SkipStepResponse, error) {
		step, err := f.findOwnedStep(ctx, repID, stepID)
		if err != nil {
			return nil, err
		}

		if err := f.stepRepo.MarkSkipped(ctx, step.ID); err != nil {
			return nil, err
		}
		step.Skipped = true

		return &dto.SkipStepResponse{Step: ToCadenceStepDTO(*step)}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Step skip failed: %s", err.Error())
		_ = f.logCadenceAction(ctx, repID, models.AuditActionStepSkipped, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("STEP_SKIP_FAILED", "Step skip failed", err)
	}

	msg := fmt.Sprintf("Cadence step skipped: %d", stepID)
	_ = f.logCadenceAction(ctx, repID, models.AuditActionStepSkipped, msg, true, nil, metadata)

	return resp, nil
}

// Private helper methods

func (f *CadenceFlowImpl) findOwnedLead(ctx context.Context, repID uint, leadUUID string) (*models.Lead, error) {
	lead, err := f.leadRepo.ByUUID(ctx, leadUUID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	if lead.AssignedTo == nil || *lead.AssignedTo != repID {
		return nil, ErrLeadAccessDenied
	}
	return lead, nil
}

func (f *CadenceFlowImpl) findOwnedStep(ctx context.Context, repID uint, stepID uint) (*models.CadenceStep, error) {
	step, err := f.stepRepo.ByID(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if step == nil {
		return nil, ErrStepNotFound
	}
	if step.SalesRepID != repID {
		return nil, ErrStepAccessDenied
	}
	if step.Terminal() {
		return nil, ErrStepAlreadyTerminal
	}
	return step, nil
}

func (f *CadenceFlowImpl) logCadenceAction(ctx context.Context, repID uint, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	ipAddress, userAgent := clientAddr(metadata)

	audit := &models.AuditLog{
		SalesRepID:   &repID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errMsg,
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return f.auditRepo.Save(ctx, audit)
}

func (f *CadenceFlowImpl) withGenerateTransaction(ctx context.Context, fn func(context.Context) (*dto.GenerateCadenceResponse, error)) (*dto.GenerateCadenceResponse, error) {
	var result *dto.GenerateCadenceResponse
	var fnErr error

	err := repository.WithTransaction(ctx, f.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}

func (f *CadenceFlowImpl) withCompleteTransaction(ctx context.Context, fn func(context.Context) (*dto.CompleteStepResponse, error)) (*dto.CompleteStepResponse, error) {
	var result *dto.CompleteStepResponse
	var fnErr error

	err := repository.WithTransaction(ctx, f.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}

func (f *CadenceFlowImpl) withSkipTransaction(ctx context.Context, fn func(context.Context) (*dto.SkipStepResponse, error)) (*dto.SkipStepResponse, error) {
	var result *dto.SkipStepResponse
	var fnErr error

	err := repository.WithTransaction(ctx, f.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}
