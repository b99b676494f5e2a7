package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/app/middleware"
	businessflow "github.com/linklift/linklift/business_flow"
)

// AnalyticHandlerInterface defines the contract for analytics handlers
type AnalyticHandlerInterface interface {
	GetLinkAnalytics(c fiber.Ctx) error
}

// AnalyticHandler handles analytics HTTP requests
type AnalyticHandler struct {
	analyticFlow businessflow.AnalyticFlow
}

// NewAnalyticHandler creates a new analytic handler
func NewAnalyticHandler(analyticFlow businessflow.AnalyticFlow) AnalyticHandlerInterface {
	return &AnalyticHandler{analyticFlow: analyticFlow}
}

func (h *AnalyticHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AnalyticHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GetLinkAnalytics returns the recorded clicks and aggregates of an owned link
func (h *AnalyticHandler) GetLinkAnalytics(c fiber.Ctx) error {
	linkID, err := parseLinkID(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid link ID", "INVALID_LINK_ID", nil)
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	result, err := h.analyticFlow.GetLinkAnalytics(createRequestContext(c, "/api/v1/analytic"), linkID, userID)
	if err != nil {
		if businessflow.IsLinkNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Link not found", dto.ErrorLinkNotFound, nil)
		}
		if businessflow.IsLinkNotOwned(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Link does not belong to you", dto.ErrorLinkNotOwned, nil)
		}

		log.Println("Analytics lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Analytics lookup failed", "ANALYTICS_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Analytics retrieved successfully", result)
}
