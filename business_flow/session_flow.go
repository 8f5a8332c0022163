package businessflow

import (
	"context"
	"fmt"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/outreach"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
)

// SessionFlow provides the use case for building a rep's work session queue
type SessionFlow interface {
	BuildQueue(ctx context.Context, repID uint, request *dto.BuildQueueRequest, metadata *ClientMetadata) (*dto.BuildQueueResponse, error)
}

// SessionFlowImpl implements the session business flow
type SessionFlowImpl struct {
	stepRepo  repository.CadenceStepRepository
	leadRepo  repository.LeadRepository
	auditRepo repository.AuditLogRepository
	builder   *outreach.QueueBuilder
}

// NewSessionFlow creates a new session flow instance
func NewSessionFlow(
	stepRepo repository.CadenceStepRepository,
	leadRepo repository.LeadRepository,
	auditRepo repository.AuditLogRepository,
	builder *outreach.QueueBuilder,
) SessionFlow {
	return &SessionFlowImpl{
		stepRepo:  stepRepo,
		leadRepo:  leadRepo,
		auditRepo: auditRepo,
		builder:   builder,
	}
}

// BuildQueue assembles the ordered work queue for one outreach session:
// overdue steps first, then steps due today, then fresh uncontacted leads.
// The queue is ephemeral; nothing is persisted.
func (f *SessionFlowImpl) BuildQueue(ctx context.Context, repID uint, request *dto.BuildQueueRequest, metadata *ClientMetadata) (*dto.BuildQueueResponse, error) {
	sessionType := outreach.SessionType(request.SessionType)
	if !sessionType.Valid() {
		return nil, NewBusinessError("SESSION_VALIDATION_FAILED", "Session validation failed", ErrInvalidSessionType)
	}

	now := utils.UTCNow()

	steps, err := f.stepRepo.ListPendingByRep(ctx, repID, utils.StartOfNextDay(now))
	if err != nil {
		return nil, NewBusinessError("QUEUE_BUILD_FAILED", "Queue build failed", err)
	}

	leads, err := f.leadRepo.ListQueueCandidates(ctx, repID)
	if err != nil {
		return nil, NewBusinessError("QUEUE_BUILD_FAILED", "Queue build failed", err)
	}

	queue := f.builder.Build(steps, leads, sessionType, repID, now)

	resp := &dto.BuildQueueResponse{
		SessionType: sessionType.String(),
		Items:       make([]dto.QueueItemDTO, 0, len(queue)),
	}
	for _, item := range queue {
		d := dto.QueueItemDTO{
			Reason:      string(item.Reason),
			TimingScore: item.TimingScore,
		}
		if item.Lead != nil {
			lead := ToLeadDTO(*item.Lead)
			d.Lead = &lead
		}
		if item.Step != nil {
			step := ToCadenceStepDTO(*item.Step)
			d.Step = &step
		}
		resp.Items = append(resp.Items, d)

		switch item.Reason {
		case outreach.ReasonOverdue:
			resp.Counts.Overdue++
		case outreach.ReasonToday:
			resp.Counts.Today++
		case outreach.ReasonUncontacted:
			resp.Counts.Uncontacted++
		}
	}

	msg := fmt.Sprintf("Session queue built: %s, %d items", sessionType, len(resp.Items))
	_ = f.logQueueBuilt(ctx, repID, msg, metadata)

	return resp, nil
}

func (f *SessionFlowImpl) logQueueBuilt(ctx context.Context, repID uint, description string, metadata *ClientMetadata) error {
	ipAddress, userAgent := clientAddr(metadata)

	audit := &models.AuditLog{
		SalesRepID:  &repID,
		Action:      models.AuditActionQueueBuilt,
		Description: &description,
		Success:     utils.ToPtr(true),
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
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
