package handlers

import (
	"log"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/app/middleware"
	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ActivityHandlerInterface defines the contract for activity handlers
type ActivityHandlerInterface interface {
	LogActivity(c fiber.Ctx) error
	ListActivities(c fiber.Ctx) error
}

// ActivityHandler handles activity-related HTTP requests
type ActivityHandler struct {
	activityFlow businessflow.ActivityFlow
	validator    *validator.Validate
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityFlow businessflow.ActivityFlow) *ActivityHandler {
	return &ActivityHandler{
		activityFlow: activityFlow,
		validator:    validator.New(),
	}
}

func (h *ActivityHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ActivityHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// LogActivity records a contact attempt against a lead
// @Summary Log Activity
// @Description Record a contact attempt, optionally completing a cadence step and auto-advancing the pipeline stage
// @Tags Activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Lead UUID"
// @Param request body dto.LogActivityRequest true "Activity data"
// @Success 201 {object} dto.APIResponse{data=dto.LogActivityResponse} "Activity logged"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 403 {object} dto.APIResponse "Lead or step access denied"
// @Failure 404 {object} dto.APIResponse "Lead or step not found"
// @Failure 409 {object} dto.APIResponse "Step already completed or skipped"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/{uuid}/activities [post]
func (h *ActivityHandler) LogActivity(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	var req dto.LogActivityRequest
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

	result, err := h.activityFlow.LogActivity(createRequestContext(c, "/api/v1/leads/:uuid/activities"), repID, c.Params("uuid"), &req, metadata)
	if err != nil {
		if businessflow.IsLeadNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", "LEAD_NOT_FOUND", nil)
		}
		if businessflow.IsLeadAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Lead access denied", "LEAD_ACCESS_DENIED", nil)
		}
		if businessflow.IsStepNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Cadence step not found", "STEP_NOT_FOUND", nil)
		}
		if businessflow.IsStepAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Cadence step access denied", "STEP_ACCESS_DENIED", nil)
		}
		if businessflow.IsStepAlreadyTerminal(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Cadence step already completed or skipped", "STEP_ALREADY_TERMINAL", nil)
		}

		log.Println("Activity logging failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Activity logging failed", "ACTIVITY_LOG_FAILED", nil)
	}

	middleware.RecordActivityLogged(result.Activity.ActivityType)
	if result.StageAdvancedTo != nil {
		middleware.RecordStageAutoAdvance(*result.StageAdvancedTo)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Activity logged", result)
}

// ListActivities lists a lead's activity history
// @Summary List Activities
// @Description List a lead's activities, newest first
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Lead UUID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListActivitiesResponse} "Activities"
// @Failure 403 {object} dto.APIResponse "Lead access denied"
// @Failure 404 {object} dto.APIResponse "Lead not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/{uuid}/activities [get]
func (h *ActivityHandler) ListActivities(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	var req dto.ListActivitiesRequest
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

	result, err := h.activityFlow.ListActivities(createRequestContext(c, "/api/v1/leads/:uuid/activities"), repID, c.Params("uuid"), &req)
	if err != nil {
		if businessflow.IsLeadNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", "LEAD_NOT_FOUND", nil)
		}
		if businessflow.IsLeadAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Lead access denied", "LEAD_ACCESS_DENIED", nil)
		}
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", nil)
		}

		log.Println("Activity listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Activity listing failed", "ACTIVITY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Activities", result)
}
