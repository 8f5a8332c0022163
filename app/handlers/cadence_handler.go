package handlers

import (
	"log"
	"strconv"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/app/middleware"
	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/gofiber/fiber/v3"
)

// CadenceHandlerInterface defines the contract for cadence handlers
type CadenceHandlerInterface interface {
	GenerateCadence(c fiber.Ctx) error
	ListSteps(c fiber.Ctx) error
	CompleteStep(c fiber.Ctx) error
	SkipStep(c fiber.Ctx) error
}

// CadenceHandler handles cadence-related HTTP requests
type CadenceHandler struct {
	cadenceFlow businessflow.CadenceFlow
}

// NewCadenceHandler creates a new cadence handler
func NewCadenceHandler(cadenceFlow businessflow.CadenceFlow) *CadenceHandler {
	return &CadenceHandler{
		cadenceFlow: cadenceFlow,
	}
}

func (h *CadenceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CadenceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GenerateCadence builds a fresh outreach cadence for a lead
// @Summary Generate Cadence
// @Description Generate a channel-aware cadence for a lead, skipping any pending steps from a previous cadence
// @Tags Cadence
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Lead UUID"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateCadenceResponse} "Cadence generated"
// @Failure 403 {object} dto.APIResponse "Lead access denied"
// @Failure 404 {object} dto.APIResponse "Lead not found"
// @Failure 422 {object} dto.APIResponse "Lead has no reachable channels"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/{uuid}/cadence [post]
func (h *CadenceHandler) GenerateCadence(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.cadenceFlow.GenerateCadence(createRequestContext(c, "/api/v1/leads/:uuid/cadence"), repID, c.Params("uuid"), metadata)
	if err != nil {
		if businessflow.IsLeadNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", "LEAD_NOT_FOUND", nil)
		}
		if businessflow.IsLeadAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Lead access denied", "LEAD_ACCESS_DENIED", nil)
		}
		if businessflow.IsNoAvailableChannels(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Lead has no reachable channels", "NO_AVAILABLE_CHANNELS", nil)
		}

		log.Println("Cadence generation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Cadence generation failed", "CADENCE_GENERATION_FAILED", nil)
	}

	middleware.RecordCadenceGenerated(result.BusinessType)

	return h.SuccessResponse(c, fiber.StatusCreated, "Cadence generated", result)
}

// ListSteps lists a lead's cadence steps
// @Summary List Cadence Steps
// @Description List all cadence steps for a lead in step order
// @Tags Cadence
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Lead UUID"
// @Success 200 {object} dto.APIResponse{data=dto.ListCadenceResponse} "Cadence steps"
// @Failure 403 {object} dto.APIResponse "Lead access denied"
// @Failure 404 {object} dto.APIResponse "Lead not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/leads/{uuid}/cadence [get]
func (h *CadenceHandler) ListSteps(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	result, err := h.cadenceFlow.ListSteps(createRequestContext(c, "/api/v1/leads/:uuid/cadence"), repID, c.Params("uuid"))
	if err != nil {
		if businessflow.IsLeadNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", "LEAD_NOT_FOUND", nil)
		}
		if businessflow.IsLeadAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Lead access denied", "LEAD_ACCESS_DENIED", nil)
		}

		log.Println("Cadence listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Cadence listing failed", "CADENCE_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Cadence steps", result)
}

// CompleteStep marks a cadence step as done
// @Summary Complete Cadence Step
// @Description Mark a pending cadence step as completed
// @Tags Cadence
// @Produce json
// @Security BearerAuth
// @Param id path int true "Step ID"
// @Success 200 {object} dto.APIResponse{data=dto.CompleteStepResponse} "Step completed"
// @Failure 403 {object} dto.APIResponse "Step access denied"
// @Failure 404 {object} dto.APIResponse "Step not found"
// @Failure 409 {object} dto.APIResponse "Step already completed or skipped"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/cadence/steps/{id}/complete [post]
func (h *CadenceHandler) CompleteStep(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	stepID, err := h.stepIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid step ID", "INVALID_STEP_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.cadenceFlow.CompleteStep(createRequestContext(c, "/api/v1/cadence/steps/:id/complete"), repID, stepID, metadata)
	if err != nil {
		return h.stepError(c, "Step completion failed", "STEP_COMPLETE_FAILED", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Step completed", result)
}

// SkipStep marks a cadence step as skipped
// @Summary Skip Cadence Step
// @Description Mark a pending cadence step as skipped
// @Tags Cadence
// @Produce json
// @Security BearerAuth
// @Param id path int true "Step ID"
// @Success 200 {object} dto.APIResponse{data=dto.SkipStepResponse} "Step skipped"
// @Failure 403 {object} dto.APIResponse "Step access denied"
// @Failure 404 {object} dto.APIResponse "Step not found"
// @Failure 409 {object} dto.APIResponse "Step already completed or skipped"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/cadence/steps/{id}/skip [post]
func (h *CadenceHandler) SkipStep(c fiber.Ctx) error {
	repID, ok := middleware.GetSalesRepIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	stepID, err := h.stepIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid step ID", "INVALID_STEP_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.cadenceFlow.SkipStep(createRequestContext(c, "/api/v1/cadence/steps/:id/skip"), repID, stepID, metadata)
	if err != nil {
		return h.stepError(c, "Step skip failed", "STEP_SKIP_FAILED", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Step skipped", result)
}

func (h *CadenceHandler) stepIDParam(c fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}

// stepError maps common step errors to HTTP responses
func (h *CadenceHandler) stepError(c fiber.Ctx, message, code string, err error) error {
	if businessflow.IsStepNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Cadence step not found", "STEP_NOT_FOUND", nil)
	}
	if businessflow.IsStepAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Cadence step access denied", "STEP_ACCESS_DENIED", nil)
	}
	if businessflow.IsStepAlreadyTerminal(err) {
		return h.ErrorResponse(c, fiber.StatusConflict, "Cadence step already completed or skipped", "STEP_ALREADY_TERMINAL", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
