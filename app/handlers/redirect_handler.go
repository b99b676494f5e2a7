package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/linklift/linklift/app/dto"
	businessflow "github.com/linklift/linklift/business_flow"
)

// RedirectHandlerInterface defines the contract for public slug resolution
type RedirectHandlerInterface interface {
	Visit(c fiber.Ctx) error
}

// RedirectHandler handles public slug resolution requests
type RedirectHandler struct {
	flow businessflow.RedirectFlow
}

// NewRedirectHandler creates a new redirect handler
func NewRedirectHandler(flow businessflow.RedirectFlow) RedirectHandlerInterface {
	return &RedirectHandler{flow: flow}
}

// Visit resolves a slug and returns the destination URL. The response is a
// plain payload so the SPA can navigate itself; no HTTP redirect is issued.
func (h *RedirectHandler) Visit(c fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.APIResponse{
			Success: false,
			Message: "Invalid slug",
			Error:   dto.ErrorDetail{Code: "INVALID_SLUG"},
		})
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetForwardedIP(c.Get("X-Forwarded-For"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	result, err := h.flow.Visit(createRequestContext(c, "/"+slug), slug, metadata)
	if err != nil {
		if businessflow.IsLinkNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
				Success: false,
				Message: "Link not found",
				Error:   dto.ErrorDetail{Code: dto.ErrorLinkNotFound},
			})
		}
		if businessflow.IsSlugRequired(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.APIResponse{
				Success: false,
				Message: "Invalid slug",
				Error:   dto.ErrorDetail{Code: "INVALID_SLUG"},
			})
		}

		log.Println("Slug resolution failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Slug resolution failed",
			Error:   dto.ErrorDetail{Code: "REDIRECT_FAILED"},
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
