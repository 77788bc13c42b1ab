package events

import (
	"time"

	"github.com/rashmods/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated     EventType = "ticket_created"
	EventTicketEscalated   EventType = "ticket_escalated"
	EventTicketClosed      EventType = "ticket_closed"
	EventFeedbackSubmitted EventType = "feedback_submitted"
	EventTicketDeleted     EventType = "ticket_deleted"
)

// Event represents a lifecycle event emitted by the ticket service.
type Event struct {
	ID        string           `json:"id"`
	Type      EventType        `json:"type"`
	ChannelID domain.ChannelID `json:"channel_id"`
	Timestamp time.Time        `json:"timestamp"`
	Payload   interface{}      `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Requester domain.UserID `json:"requester"`
	Category  string        `json:"category"`
	Sequence  int           `json:"sequence"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	Category string        `json:"category"`
	Role     domain.RoleID `json:"role"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	Reason string `json:"reason"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	Responder     domain.UserID         `json:"responder"`
	Choice        domain.FeedbackChoice `json:"choice"`
	PointsAwarded int                   `json:"points_awarded"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Reason string `json:"reason"`
}
