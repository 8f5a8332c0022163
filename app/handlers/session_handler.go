package handlers

import (
	"log"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/app/middleware"
	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// SessionHandlerInterface defines the contract for session and timing handlers
type SessionHandlerInterface interface {
	BuildQueue(c fiber.Ctx) error
	GetTiming(c fiber.Ctx) error
}

// SessionHandler handles work session and timing HTTP requests
type SessionHandler struct {
	sessionFlow businessflow.SessionFlow
	timingFlow  businessflow.TimingFlow
	validator   *validator.Validate
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionFlow businessflow.SessionFlow, timingFlow businessflow.TimingFlow) *SessionHandler {
	return &SessionHandler{
		sessionFlow: sessionFlow,
		timingFlow:  timingFlow,
		validator:   validator.New(),
	}
}

func (h *SessionHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *SessionHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BuildQueue assembles a prioritized work queue for a focused session
// @Summary Build Session Queue
// @Description Build an ordered work queue of overdue, due-today, and uncontacted leads for the requested session type
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BuildQueueRequest true "Session type"
// @Success 200 {object} dto.APIResponse{data=dto.BuildQueueResponse} "Queue built"
// @Failure 400 {object} dto.APIResponse "Invalid session type"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/sessions/queue [post]
func (h *SessionHandler) BuildQueue(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	var req dto.BuildQueueRequest
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

	result, err := h.sessionFlow.BuildQueue(createRequestContext(c, "/api/v1/sessions/queue"), repID, &req, metadata)
	if err != nil {
		if businessflow.IsInvalidSessionType(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session type", "INVALID_SESSION_TYPE", nil)
		}

		log.Println("Queue build failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Queue build failed", "QUEUE_BUILD_FAILED", nil)
	}

	middleware.RecordQueueBuilt(result.SessionType)

	return h.SuccessResponse(c, fiber.StatusOK, "Queue built", result)
}

// GetTiming returns the best-time-to-call recommendation for a lead
// @Summary Get Timing Recommendation
// @Description Score the current instant for contacting a lead and suggest the next best call windows
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Lead UUID"
// @Success 200 {object} dto.APIResponse{data=dto.TimingRecommendationResponse} "Timing recommendation"
// @Failure 403 {object} dto.APIResponse "Lead access denied"
// @Failure 404 {object} dto.APIResponse "Lead not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/{uuid}/timing [get]
func (h *SessionHandler) GetTiming(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	result, err := h.timingFlow.GetRecommendation(createRequestContext(c, "/api/v1/leads/:uuid/timing"), repID, c.Params("uuid"))
	if err != nil {
		if businessflow.IsLeadNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", "LEAD_NOT_FOUND", nil)
		}
		if businessflow.IsLeadAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Lead access denied", "LEAD_ACCESS_DENIED", nil)
		}

		log.Println("Timing recommendation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Timing recommendation failed", "TIMING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Timing recommendation", result)
}
