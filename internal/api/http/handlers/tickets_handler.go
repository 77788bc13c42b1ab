package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rashmods/helpdesk/internal/api/dto"
	"github.com/rashmods/helpdesk/internal/domain"
	"github.com/rashmods/helpdesk/internal/service"

	apperrors "github.com/rashmods/helpdesk/pkg/util/errorutil"
)

// TicketsHandler manages the ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Requester) == "" || strings.TrimSpace(req.Category) == "" {
		return apperrors.NewValidationError("requester, category required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), domain.UserID(req.Requester), req.Category)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(*ticket)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(domain.ChannelID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// CloseTicket POST /tickets/:id/close. The payload is optional; a body-less
// request closes with the default reason.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	var req dto.CloseTicketRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "closed by request"
	}

	if err := h.service.CloseTicket(c.UserContext(), domain.ChannelID(c.Params("id")), reason); err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(domain.ChannelID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// SubmitFeedback POST /tickets/:id/feedback.
func (h *TicketsHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Responder) == "" {
		return apperrors.NewValidationError("responder required", nil)
	}

	ack, err := h.service.SubmitFeedback(
		c.UserContext(),
		domain.ChannelID(c.Params("id")),
		domain.UserID(req.Responder),
		domain.FeedbackChoice(strings.ToLower(strings.TrimSpace(req.Choice))),
	)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FeedbackResponse{Acknowledgment: ack}})
}
