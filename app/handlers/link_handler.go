package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/app/middleware"
	businessflow "github.com/linklift/linklift/business_flow"
)

// LinkHandlerInterface defines the contract for link management handlers
type LinkHandlerInterface interface {
	Create(c fiber.Ctx) error
	EditSlug(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	List(c fiber.Ctx) error
}

// LinkHandler handles link management HTTP requests
type LinkHandler struct {
	linkFlow  businessflow.LinkFlow
	validator *validator.Validate
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkFlow businessflow.LinkFlow) LinkHandlerInterface {
	return &LinkHandler{
		linkFlow:  linkFlow,
		validator: newValidator(),
	}
}

func (h *LinkHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *LinkHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create shortens a URL. Authentication is optional: authenticated callers
// own the link, anonymous callers get an ownerless one.
func (h *LinkHandler) Create(c fiber.Ctx) error {
	var req dto.CreateLinkRequest
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

	var ownerID *uint
	if userID, ok := middleware.GetUserIDFromContext(c); ok && userID != 0 {
		ownerID = &userID
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	result, err := h.linkFlow.CreateLink(createRequestContext(c, "/api/v1/link/create"), &req, ownerID, metadata)
	if err != nil {
		if businessflow.IsSlugAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug already exists", dto.ErrorSlugAlreadyExists, nil)
		}
		if businessflow.IsOriginalURLRequired(err) || businessflow.IsSlugRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid link data", "VALIDATION_ERROR", nil)
		}
		if businessflow.IsSlugGenerationFailed(err) {
			return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Could not generate a unique slug", dto.ErrorSlugExhausted, nil)
		}

		log.Println("Link creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Link creation failed", "LINK_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Link created successfully", result)
}

// EditSlug renames the slug of an owned link
func (h *LinkHandler) EditSlug(c fiber.Ctx) error {
	linkID, err := parseLinkID(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid link ID", "INVALID_LINK_ID", nil)
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	var req dto.EditSlugRequest
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
	metadata.SetRequestID(c.Get("X-Request-ID"))

	result, err := h.linkFlow.EditSlug(createRequestContext(c, "/api/v1/link/edit"), linkID, userID, &req, metadata)
	if err != nil {
		return h.linkError(c, "Link edit failed", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Slug updated successfully", result)
}

// Delete removes an owned link and its analytics
func (h *LinkHandler) Delete(c fiber.Ctx) error {
	linkID, err := parseLinkID(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid link ID", "INVALID_LINK_ID", nil)
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	if err := h.linkFlow.DeleteLink(createRequestContext(c, "/api/v1/link/delete"), linkID, userID, metadata); err != nil {
		return h.linkError(c, "Link deletion failed", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Link deleted successfully", nil)
}

// List returns the authenticated user's links
func (h *LinkHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return middleware.RequireAuth(c)
	}

	result, err := h.linkFlow.ListLinks(createRequestContext(c, "/api/v1/link/getLinks"), userID)
	if err != nil {
		log.Println("Link listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Link listing failed", "LINK_LISTING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Links retrieved successfully", result)
}

// linkError maps shared link business errors to HTTP responses
func (h *LinkHandler) linkError(c fiber.Ctx, message string, err error) error {
	if businessflow.IsLinkNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Link not found", dto.ErrorLinkNotFound, nil)
	}
	if businessflow.IsLinkNotOwned(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Link does not belong to you", dto.ErrorLinkNotOwned, nil)
	}
	if businessflow.IsSlugAlreadyExists(err) {
		return h.ErrorResponse(c, fiber.StatusConflict, "Slug already exists", dto.ErrorSlugAlreadyExists, nil)
	}
	if businessflow.IsSlugRequired(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Slug is required", "VALIDATION_ERROR", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, "LINK_OPERATION_FAILED", nil)
}

func parseLinkID(c fiber.Ctx) (uint, error) {
	raw := c.Params("linkId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
