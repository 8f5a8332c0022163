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

// ActivityFlow provides use cases for logging contact attempts against leads.
// Logging an activity is the single write path that drives pipeline
// auto-advance, cadence step completion, and the last-contacted marker.
type ActivityFlow interface {
	LogActivity(ctx context.Context, repID uint, leadUUID string, request *dto.LogActivityRequest, metadata *ClientMetadata) (*dto.LogActivityResponse, error)
	ListActivities(ctx context.Context, repID uint, leadUUID string, request *dto.ListActivitiesRequest) (*dto.ListActivitiesResponse, error)
}

// ActivityFlowImpl implements the activity business flow
type ActivityFlowImpl struct {
	activityRepo repository.ActivityRepository
	leadRepo     repository.LeadRepository
	stepRepo     repository.CadenceStepRepository
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
}

// NewActivityFlow creates a new activity flow instance
func NewActivityFlow(
	activityRepo repository.ActivityRepository,
	leadRepo repository.LeadRepository,
	stepRepo repository.CadenceStepRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) ActivityFlow {
	return &ActivityFlowImpl{
		activityRepo: activityRepo,
		leadRepo:     leadRepo,
		stepRepo:     stepRepo,
		auditRepo:    auditRepo,
		db:           db,
	}
}

// LogActivity records a contact attempt and applies its side effects:
// the lead's stage may auto-advance based on the outcome, the referenced
// cadence step is completed, and the last-contacted marker moves forward.
func (f *ActivityFlowImpl) LogActivity(ctx context.Context, repID uint, leadUUID string, request *dto.LogActivityRequest, metadata *ClientMetadata) (*dto.LogActivityResponse, error) {
	activityType := models.ActivityType(request.ActivityType)
	if !activityType.Valid() {
		return nil, NewBusinessError("ACTIVITY_VALIDATION_FAILED", "Activity validation failed", fmt.Errorf("invalid activity type: %s", request.ActivityType))
	}

	resp, err := f.withLogActivityTransaction(ctx, func(ctx context.Context) (*dto.LogActivityResponse, error) {
		lead, err := f.findOwnedLead(ctx, repID, leadUUID)
		if err != nil {
			return nil, err
		}

		activity := &models.Activity{
			LeadID:       lead.ID,
			SalesRepID:   &repID,
			ActivityType: activityType,
			Notes:        request.Notes,
			IsPrivate:    request.IsPrivate,
		}
		if request.Channel != nil {
			ch := models.Channel(*request.Channel)
			activity.Channel = &ch
		}
		if request.Outcome != nil {
			out := models.ActivityOutcome(*request.Outcome)
			activity.Outcome = &out
		}
		if request.OccurredAt != nil {
			activity.OccurredAt = utils.TimeToUTC(*request.OccurredAt)
		}

		if err := f.activityRepo.Save(ctx, activity); err != nil {
			return nil, err
		}

		resp := &dto.LogActivityResponse{
			Activity: ToActivityDTO(*activity),
		}

		// Complete the referenced cadence step, if any. Steps belonging to
		// another rep or lead are rejected rather than silently ignored.
		if request.CadenceStepID != nil {
			step, err := f.stepRepo.ByID(ctx, *request.CadenceStepID)
			if err != nil {
				return nil, err
			}
			if step == nil {
				return nil, ErrStepNotFound
			}
			if step.SalesRepID != repID || step.LeadID != lead.ID {
				return nil, ErrStepAccessDenied
			}
			if step.Terminal() {
				return nil, ErrStepAlreadyTerminal
			}
			if err := f.stepRepo.MarkCompleted(ctx, step.ID, activity.OccurredAt); err != nil {
				return nil, err
			}
			resp.CompletedStepID = &step.ID
		}

		// Notes never count as contact
		if activityType != models.ActivityTypeNote {
			if err := f.leadRepo.TouchLastContacted(ctx, lead.ID, activity.OccurredAt); err != nil {
				return nil, err
			}
		}

		if next := outreach.NextStage(lead.PipelineStage, activity.Outcome); next != nil {
			if err := f.leadRepo.UpdateStage(ctx, lead.ID, *next); err != nil {
				return nil, err
			}
			advanced := next.String()
			resp.StageAdvancedTo = &advanced
		}

		return resp, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Activity logging failed: %s", err.Error())
		_ = f.logActivityAction(ctx, repID, models.AuditActionActivityLogged, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("ACTIVITY_LOG_FAILED", "Activity logging failed", err)
	}

	msg := fmt.Sprintf("Activity logged for lead %s: %s", leadUUID, request.ActivityType)
	_ = f.logActivityAction(ctx, repID, models.AuditActionActivityLogged, msg, true, nil, metadata)

	return resp, nil
}

// ListActivities returns a lead's activity history, newest first
func (f *ActivityFlowImpl) ListActivities(ctx context.Context, repID uint, leadUUID string, request *dto.ListActivitiesRequest) (*dto.ListActivitiesResponse, error) {
	page, pageSize, err := normalizePagination(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("ACTIVITY_LIST_VALIDATION_FAILED", "Activity list validation failed", err)
	}

	lead, err := f.findOwnedLead(ctx, repID, leadUUID)
	if err != nil {
		return nil, NewBusinessError("ACTIVITY_LIST_FAILED", "Activity listing failed", err)
	}

	activities, err := f.activityRepo.ListByLead(ctx, lead.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("ACTIVITY_LIST_FAILED", "Activity listing failed", err)
	}

	total, err := f.activityRepo.Count(ctx, models.ActivityFilter{LeadID: &lead.ID})
	if err != nil {
		return nil, NewBusinessError("ACTIVITY_LIST_FAILED", "Activity listing failed", err)
	}

	items := make([]dto.ActivityDTO, 0, len(activities))
	for _, activity := range activities {
		items = append(items, ToActivityDTO(*activity))
	}

	return &dto.ListActivitiesResponse{
		Items: items,
		Pagination: dto.PaginationDTO{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// Private helper methods

func (f *ActivityFlowImpl) findOwnedLead(ctx context.Context, repID uint, leadUUID string) (*models.Lead, error) {
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

func (f *ActivityFlowImpl) logActivityAction(ctx context.Context, repID uint, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
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

func (f *ActivityFlowImpl) withLogActivityTransaction(ctx context.Context, fn func(context.Context) (*dto.LogActivityResponse, error)) (*dto.LogActivityResponse, error) {
	var result *dto.LogActivityResponse
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
