package handlers

import (
	"fmt"
	"log"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/app/middleware"
	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// LeadHandlerInterface defines the contract for lead handlers
type LeadHandlerInterface interface {
	CreateLead(c fiber.Ctx) error
	UpdateLead(c fiber.Ctx) error
	GetLead(c fiber.Ctx) error
	ListLeads(c fiber.Ctx) error
	MoveStage(c fiber.Ctx) error
	ExportLeads(c fiber.Ctx) error
}

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadFlow  businessflow.LeadFlow
	validator *validator.Validate
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadFlow businessflow.LeadFlow) *LeadHandler {
	return &LeadHandler{
		leadFlow:  leadFlow,
		validator: validator.New(),
	}
}

func (h *LeadHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *LeadHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateLead creates a new lead owned by the authenticated rep
// @Summary Create Lead
// @Description Create a new lead assigned to the calling sales rep
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLeadRequest true "Lead data"
// @Success 201 {object} dto.APIResponse{data=dto.LeadDTO} "Lead created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads [post]
func (h *LeadHandler) CreateLead(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	var req dto.CreateLeadRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.leadFlow.CreateLead(createRequestContext(c, "/api/v1/leads"), repID, &req, metadata)
	if err != nil {
		if businessflow.IsLeadNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Lead name is required", "LEAD_NAME_REQUIRED", nil)
		}

		log.Println("Lead creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Lead creation failed", "LEAD_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Lead created", result)
}

// UpdateLead applies a partial update to a lead
// @Summary Update Lead
// @Description Apply a partial update to a lead owned by the calling rep
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Lead UUID"
// @Param request body dto.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.LeadDTO} "Lead updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 403 {object} dto.APIResponse "Lead access denied"
// @Failure 404 {object} dto.APIResponse "Lead not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/{uuid} [put]
func (h *LeadHandler) UpdateLead(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	leadUUID := c.Params("uuid")

	var req dto.UpdateLeadRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.leadFlow.UpdateLead(createRequestContext(c, "/api/v1/leads/:uuid"), repID, leadUUID, &req, metadata)
	if err != nil {
		return h.leadError(c, "Lead update failed", "LEAD_UPDATE_FAILED", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Lead updated", result)
}

// GetLead fetches a single lead
// @Summary Get Lead
// @Description Fetch one lead owned by the calling rep
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Lead UUID"
// @Success 200 {object} dto.APIResponse{data=dto.LeadDTO} "Lead"
// @Failure 403 {object} dto.APIResponse "Lead access denied"
// @Failure 404 {object} dto.APIResponse "Lead not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/{uuid} [get]
func (h *LeadHandler) GetLead(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	result, err := h.leadFlow.GetLead(createRequestContext(c, "/api/v1/leads/:uuid"), repID, c.Params("uuid"))
	if err != nil {
		return h.leadError(c, "Lead lookup failed", "LEAD_GET_FAILED", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Lead", result)
}

// ListLeads lists the rep's leads with filters and pagination
// @Summary List Leads
// @Description List the calling rep's leads, weakest composite score first
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param pipeline_stage query string false "Filter by pipeline stage"
// @Param category query string false "Filter by category"
// @Param tag query string false "Filter by tag"
// @Param uncontacted query bool false "Only uncontacted leads"
// @Param min_score query number false "Minimum composite score"
// @Param max_score query number false "Maximum composite score"
// @Success 200 {object} dto.APIResponse{data=dto.ListLeadsResponse} "Leads"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads [get]
func (h *LeadHandler) ListLeads(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	var req dto.ListLeadsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	result, err := h.leadFlow.ListLeads(createRequestContext(c, "/api/v1/leads"), repID, &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", nil)
		}

		log.Println("Lead listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Lead listing failed", "LEAD_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Leads", result)
}

// MoveStage manually moves a lead through the funnel
// @Summary Move Pipeline Stage
// @Description Move a lead to a later pipeline stage or drop it to a terminal one
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Lead UUID"
// @Param request body dto.MoveStageRequest true "Target stage"
// @Success 200 {object} dto.APIResponse{data=dto.MoveStageResponse} "Stage moved"
// @Failure 400 {object} dto.APIResponse "Invalid transition"
// @Failure 403 {object} dto.APIResponse "Lead access denied"
// @Failure 404 {object} dto.APIResponse "Lead not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/{uuid}/stage [post]
func (h *LeadHandler) MoveStage(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	var req dto.MoveStageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.leadFlow.MoveStage(createRequestContext(c, "/api/v1/leads/:uuid/stage"), repID, c.Params("uuid"), &req, metadata)
	if err != nil {
		if businessflow.IsInvalidStageTransition(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pipeline stage transition", "INVALID_STAGE_TRANSITION", nil)
		}
		return h.leadError(c, "Stage move failed", "STAGE_MOVE_FAILED", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Stage moved", result)
}

// ExportLeads downloads the rep's leads as an Excel workbook
// @Summary Export Leads
// @Description Download the calling rep's leads matching the filter as an xlsx file
// @Tags Leads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param pipeline_stage query string false "Filter by pipeline stage"
// @Param category query string false "Filter by category"
// @Param tag query string false "Filter by tag"
// @Param uncontacted query bool false "Only uncontacted leads"
// @Success 200 {file} binary "Excel workbook"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/export [get]
func (h *LeadHandler) ExportLeads(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	var req dto.ListLeadsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	filename, payload, err := h.leadFlow.ExportLeads(createRequestContext(c, "/api/v1/leads/export"), repID, &req, metadata)
	if err != nil {
		log.Println("Lead export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Lead export failed", "LEAD_EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(payload)
}

// leadError maps common lead ownership errors to HTTP responses
func (h *LeadHandler) leadError(c fiber.Ctx, message, code string, err error) error {
	if businessflow.IsLeadNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", "LEAD_NOT_FOUND", nil)
	}
	if businessflow.IsLeadAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Lead access denied", "LEAD_ACCESS_DENIED", nil)
	}
	if businessflow.IsLeadUpdateRequired(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "At least one field must be provided", "LEAD_UPDATE_REQUIRED", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
