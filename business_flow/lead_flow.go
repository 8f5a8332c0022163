package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/outreach"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// LeadFlow provides use cases for managing leads and their funnel position
type LeadFlow interface {
	CreateLead(ctx context.Context, repID uint, request *dto.CreateLeadRequest, metadata *ClientMetadata) (*dto.LeadDTO, error)
	UpdateLead(ctx context.Context, repID uint, leadUUID string, request *dto.UpdateLeadRequest, metadata *ClientMetadata) (*dto.LeadDTO, error)
	GetLead(ctx context.Context, repID uint, leadUUID string) (*dto.LeadDTO, error)
	ListLeads(ctx context.Context, repID uint, request *dto.ListLeadsRequest) (*dto.ListLeadsResponse, error)
	MoveStage(ctx context.Context, repID uint, leadUUID string, request *dto.MoveStageRequest, metadata *ClientMetadata) (*dto.MoveStageResponse, error)
	ExportLeads(ctx context.Context, repID uint, request *dto.ListLeadsRequest, metadata *ClientMetadata) (string, []byte, error)
}

// LeadFlowImpl implements the lead business flow
type LeadFlowImpl struct {
	leadRepo  repository.LeadRepository
	auditRepo repository.AuditLogRepository
	db        *gorm.DB
}

// NewLeadFlow creates a new lead flow instance
func NewLeadFlow(
	leadRepo repository.LeadRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) LeadFlow {
	return &LeadFlowImpl{
		leadRepo:  leadRepo,
		auditRepo: auditRepo,
		db:        db,
	}
}

// CreateLead creates a lead owned by the calling rep
func (f *LeadFlowImpl) CreateLead(ctx context.Context, repID uint, request *dto.CreateLeadRequest, metadata *ClientMetadata) (*dto.LeadDTO, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, NewBusinessError("LEAD_VALIDATION_FAILED", "Lead validation failed", ErrLeadNameRequired)
	}

	lead := &models.Lead{
		AssignedTo:      &repID,
		Name:            strings.TrimSpace(request.Name),
		CompanyName:     request.CompanyName,
		Category:        request.Category,
		Phone:           request.Phone,
		Email:           request.Email,
		InstagramHandle: request.InstagramHandle,
		FacebookHandle:  request.FacebookHandle,
		TikTokHandle:    request.TikTokHandle,
		LinkedInHandle:  request.LinkedInHandle,
		PipelineStage:   models.StageCold,
		Tags:            request.Tags,
		Notes:           request.Notes,
	}
	if request.CompositeScore != nil {
		lead.CompositeScore = *request.CompositeScore
	}
	if request.AIChannelRec != nil {
		rec := models.Channel(*request.AIChannelRec)
		lead.AIChannelRec = &rec
	}

	result, err := f.withLeadTransaction(ctx, func(ctx context.Context) (*dto.LeadDTO, error) {
		if err := f.leadRepo.Save(ctx, lead); err != nil {
			return nil, err
		}
		d := ToLeadDTO(*lead)
		return &d, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Lead creation failed: %s", err.Error())
		_ = f.logLeadAction(ctx, repID, models.AuditActionLeadCreated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("LEAD_CREATE_FAILED", "Lead creation failed", err)
	}

	msg := fmt.Sprintf("Lead created: %s", result.UUID)
	_ = f.logLeadAction(ctx, repID, models.AuditActionLeadCreated, msg, true, nil, metadata)

	return result, nil
}

// UpdateLead applies a partial update to a lead owned by the calling rep
func (f *LeadFlowImpl) UpdateLead(ctx context.Context, repID uint, leadUUID string, request *dto.UpdateLeadRequest, metadata *ClientMetadata) (*dto.LeadDTO, error) {
	if !hasLeadUpdates(request) {
		return nil, NewBusinessError("LEAD_VALIDATION_FAILED", "Lead validation failed", ErrLeadUpdateRequired)
	}

	result, err := f.withLeadTransaction(ctx, func(ctx context.Context) (*dto.LeadDTO, error) {
		lead, err := f.findOwnedLead(ctx, repID, leadUUID)
		if err != nil {
			return nil, err
		}

		applyLeadUpdates(lead, request)
		if err := f.leadRepo.Save(ctx, lead); err != nil {
			return nil, err
		}

		d := ToLeadDTO(*lead)
		return &d, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Lead update failed: %s", err.Error())
		_ = f.logLeadAction(ctx, repID, models.AuditActionLeadUpdated, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("LEAD_UPDATE_FAILED", "Lead update failed", err)
	}

	msg := fmt.Sprintf("Lead updated: %s", result.UUID)
	_ = f.logLeadAction(ctx, repID, models.AuditActionLeadUpdated, msg, true, nil, metadata)

	return result, nil
}

// GetLead fetches a single lead owned by the calling rep
func (f *LeadFlowImpl) GetLead(ctx context.Context, repID uint, leadUUID string) (*dto.LeadDTO, error) {
	lead, err := f.findOwnedLead(ctx, repID, leadUUID)
	if err != nil {
		return nil, NewBusinessError("LEAD_GET_FAILED", "Lead lookup failed", err)
	}

	d := ToLeadDTO(*lead)
	return &d, nil
}

// ListLeads returns the rep's leads, weakest composite score first so the list
// surfaces the prospects that need the most attention
func (f *LeadFlowImpl) ListLeads(ctx context.Context, repID uint, request *dto.ListLeadsRequest) (*dto.ListLeadsResponse, error) {
	page, pageSize, err := normalizePagination(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("LEAD_LIST_VALIDATION_FAILED", "Lead list validation failed", err)
	}

	filter := leadFilterFromRequest(request)
	filter.AssignedTo = &repID

	leads, err := f.leadRepo.ListByRep(ctx, repID, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("LEAD_LIST_FAILED", "Lead listing failed", err)
	}

	total, err := f.leadRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("LEAD_LIST_FAILED", "Lead listing failed", err)
	}

	items := make([]dto.LeadDTO, 0, len(leads))
	for _, lead := range leads {
		items = append(items, ToLeadDTO(*lead))
	}

	return &dto.ListLeadsResponse{
		Items: items,
		Pagination: dto.PaginationDTO{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// MoveStage manually moves a lead through the funnel. Backward moves are
// rejected; drops to dead or closed states are always allowed.
func (f *LeadFlowImpl) MoveStage(ctx context.Context, repID uint, leadUUID string, request *dto.MoveStageRequest, metadata *ClientMetadata) (*dto.MoveStageResponse, error) {
	newStage := models.PipelineStage(request.Stage)
	if !newStage.Valid() {
		return nil, NewBusinessError("STAGE_VALIDATION_FAILED", "Stage validation failed", ErrInvalidStageTransition)
	}

	result, err := f.withMoveStageTransaction(ctx, func(ctx context.Context) (*dto.MoveStageResponse, error) {
		lead, err := f.findOwnedLead(ctx, repID, leadUUID)
		if err != nil {
			return nil, err
		}

		previous := lead.PipelineStage
		if !previous.CanTransitionTo(newStage) {
			return nil, ErrInvalidStageTransition
		}

		if err := f.leadRepo.UpdateStage(ctx, lead.ID, newStage); err != nil {
			return nil, err
		}
		lead.PipelineStage = newStage

		return &dto.MoveStageResponse{
			Lead:          ToLeadDTO(*lead),
			PreviousStage: previous.String(),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Stage move failed: %s", err.Error())
		_ = f.logLeadAction(ctx, repID, models.AuditActionLeadStageMoved, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("STAGE_MOVE_FAILED", "Stage move failed", err)
	}

	msg := fmt.Sprintf("Lead %s moved: %s -> %s", result.Lead.UUID, result.PreviousStage, result.Lead.PipelineStage)
	_ = f.logLeadAction(ctx, repID, models.AuditActionLeadStageMoved, msg, true, nil, metadata)

	return result, nil
}

// ExportLeads builds an Excel workbook with the rep's leads matching the filter
func (f *LeadFlowImpl) ExportLeads(ctx context.Context, repID uint, request *dto.ListLeadsRequest, metadata *ClientMetadata) (string, []byte, error) {
	filter := leadFilterFromRequest(request)
	filter.AssignedTo = &repID

	leads, err := f.leadRepo.ListByRep(ctx, repID, filter, 0, 0)
	if err != nil {
		return "", nil, NewBusinessError("LEAD_EXPORT_FAILED", "Lead export failed", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Leads"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{
		"uuid", "name", "company_name", "category", "business_type",
		"phone", "email", "instagram", "facebook", "tiktok", "linkedin",
		"composite_score", "pipeline_stage", "last_contacted_at", "tags",
		"notes", "created_at",
	}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for i, lead := range leads {
		record := []any{
			lead.UUID.String(),
			lead.Name,
			strValue(lead.CompanyName),
			strValue(lead.Category),
			outreach.ClassifyBusiness(lead.Category).String(),
			strValue(lead.Phone),
			strValue(lead.Email),
			strValue(lead.InstagramHandle),
			strValue(lead.FacebookHandle),
			strValue(lead.TikTokHandle),
			strValue(lead.LinkedInHandle),
			lead.CompositeScore,
			lead.PipelineStage.String(),
			timeValue(lead.LastContactedAt),
			strings.Join(lead.Tags, ","),
			strValue(lead.Notes),
			lead.CreatedAt.Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("LEAD_EXPORT_FAILED", "Lead export failed", err)
	}

	msg := fmt.Sprintf("Exported %d leads", len(leads))
	_ = f.logLeadAction(ctx, repID, models.AuditActionLeadExported, msg, true, nil, metadata)

	filename := fmt.Sprintf("leads_%s.xlsx", utils.UTCNow().Format("20060102_150405"))
	return filename, buf.Bytes(), nil
}

// Private helper methods

func (f *LeadFlowImpl) findOwnedLead(ctx context.Context, repID uint, leadUUID string) (*models.Lead, error) {
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

func (f *LeadFlowImpl) logLeadAction(ctx context.Context, repID uint, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
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

func (f *LeadFlowImpl) withLeadTransaction(ctx context.Context, fn func(context.Context) (*dto.LeadDTO, error)) (*dto.LeadDTO, error) {
	var result *dto.LeadDTO
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

func (f *LeadFlowImpl) withMoveStageTransaction(ctx context.Context, fn func(context.Context) (*dto.MoveStageResponse, error)) (*dto.MoveStageResponse, error) {
	var result *dto.MoveStageResponse
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

func hasLeadUpdates(r *dto.UpdateLeadRequest) bool {
	return r.Name != nil || r.CompanyName != nil || r.Category != nil ||
		r.Phone != nil || r.Email != nil || r.InstagramHandle != nil ||
		r.FacebookHandle != nil || r.TikTokHandle != nil || r.LinkedInHandle != nil ||
		r.CompositeScore != nil || r.AIChannelRec != nil || r.Tags != nil || r.Notes != nil
}

func applyLeadUpdates(lead *models.Lead, r *dto.UpdateLeadRequest) {
	if r.Name != nil {
		lead.Name = strings.TrimSpace(*r.Name)
	}
	if r.CompanyName != nil {
		lead.CompanyName = r.CompanyName
	}
	if r.Category != nil {
		lead.Category = r.Category
	}
	if r.Phone != nil {
		lead.Phone = r.Phone
	}
	if r.Email != nil {
		lead.Email = r.Email
	}
	if r.InstagramHandle != nil {
		lead.InstagramHandle = r.InstagramHandle
	}
	if r.FacebookHandle != nil {
		lead.FacebookHandle = r.FacebookHandle
	}
	if r.TikTokHandle != nil {
		lead.TikTokHandle = r.TikTokHandle
	}
	if r.LinkedInHandle != nil {
		lead.LinkedInHandle = r.LinkedInHandle
	}
	if r.CompositeScore != nil {
		lead.CompositeScore = *r.CompositeScore
	}
	if r.AIChannelRec != nil {
		rec := models.Channel(*r.AIChannelRec)
		lead.AIChannelRec = &rec
	}
	if r.Tags != nil {
		lead.Tags = r.Tags
	}
	if r.Notes != nil {
		lead.Notes = r.Notes
	}
}

func leadFilterFromRequest(r *dto.ListLeadsRequest) models.LeadFilter {
	filter := models.LeadFilter{
		Category:    r.Category,
		Tag:         r.Tag,
		Uncontacted: r.Uncontacted,
		MinScore:    r.MinScore,
		MaxScore:    r.MaxScore,
	}
	if r.PipelineStage != nil {
		stage := models.PipelineStage(*r.PipelineStage)
		filter.PipelineStage = &stage
	}
	return filter
}

func normalizePagination(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = utils.DefaultPageSize
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > utils.MaxPageSize {
		return 0, 0, ErrInvalidPageSize
	}
	return page, pageSize, nil
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
