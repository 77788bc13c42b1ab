package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashmods/helpdesk/internal/api/dto"
	"github.com/rashmods/helpdesk/internal/domain"
	"github.com/rashmods/helpdesk/internal/service"

	apperrors "github.com/rashmods/helpdesk/pkg/util/errorutil"
)

// PointsHandler serves reputation balances.
type PointsHandler struct {
	service *service.TicketService
}

// NewPointsHandler constructs handler.
func NewPointsHandler(ticketService *service.TicketService) *PointsHandler {
	return &PointsHandler{service: ticketService}
}

// Balance GET /points/:user. Unknown users report zero points.
func (h *PointsHandler) Balance(c *fiber.Ctx) error {
	user := c.Params("user")
	if user == "" {
		return apperrors.NewValidationError("user required", nil)
	}
	return c.JSON(fiber.Map{"data": dto.PointsResponse{
		User:   user,
		Points: h.service.PointsBalance(domain.UserID(user)),
	}})
}
