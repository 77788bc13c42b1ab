package dto

import (
	"time"

	"github.com/rashmods/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Requester string `json:"requester"`
	Category  string `json:"category"`
}

// CloseTicketRequest payload.
type CloseTicketRequest struct {
	Reason string `json:"reason"`
}

// FeedbackRequest payload.
type FeedbackRequest struct {
	Responder string `json:"responder"`
	Choice    string `json:"choice"`
}

// FeedbackResponse acknowledges a recorded survey answer.
type FeedbackResponse struct {
	Acknowledgment string `json:"acknowledgment"`
}

// TicketResponse describes a ticket record.
type TicketResponse struct {
	ChannelID string                 `json:"channel_id"`
	Requester string                 `json:"requester"`
	Category  string                 `json:"category"`
	Sequence  int                    `json:"sequence"`
	CreatedAt time.Time              `json:"created_at"`
	ClosedAt  *time.Time             `json:"closed_at,omitempty"`
	Feedback  *domain.FeedbackChoice `json:"feedback,omitempty"`
	Escalated bool                   `json:"escalated"`
	HandledBy *string                `json:"handled_by,omitempty"`
	Deleted   bool                   `json:"deleted"`
}

// FromTicket maps a domain ticket onto the response shape.
func FromTicket(t domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ChannelID: string(t.ChannelID),
		Requester: string(t.Requester),
		Category:  t.Category,
		Sequence:  t.Sequence,
		CreatedAt: t.CreatedAt,
		ClosedAt:  t.ClosedAt,
		Feedback:  t.Feedback,
		Escalated: t.Escalated,
		Deleted:   t.Deleted,
	}
	if t.HandledBy != nil {
		handler := string(*t.HandledBy)
		resp.HandledBy = &handler
	}
	return resp
}
