package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rashmods/helpdesk/internal/clock"
	"github.com/rashmods/helpdesk/internal/config"
	"github.com/rashmods/helpdesk/internal/domain"
	"github.com/rashmods/helpdesk/internal/events"
	"github.com/rashmods/helpdesk/internal/gateway"
	"github.com/rashmods/helpdesk/internal/observability"
	"github.com/rashmods/helpdesk/internal/repository"
	"github.com/rashmods/helpdesk/internal/scheduler"

	apperrors "github.com/rashmods/helpdesk/pkg/util/errorutil"
)

// TicketService drives the ticket lifecycle: creation, the idle and
// escalation timers, closure, feedback, and feedback-gated deletion.
//
// Every transition runs under a single mutex, so lifecycle events form one
// serialized timeline even when timers and user actions race. Timer callbacks
// re-check ticket state on firing and abstain when a competing transition
// already won.
type TicketService struct {
	cfg        config.TicketConfig
	tickets    repository.TicketRepository
	ledger     repository.LedgerRepository
	counters   repository.CounterRepository
	gateway    gateway.Gateway
	scheduler  scheduler.Scheduler
	clock      clock.Clock
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu sync.Mutex
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	LedgerRepo  repository.LedgerRepository
	CounterRepo repository.CounterRepository
	Gateway     gateway.Gateway
	Scheduler   scheduler.Scheduler
	Clock       clock.Clock
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(cfg config.TicketConfig, deps TicketDependencies) *TicketService {
	return &TicketService{
		cfg:        cfg,
		tickets:    deps.TicketRepo,
		ledger:     deps.LedgerRepo,
		counters:   deps.CounterRepo,
		gateway:    deps.Gateway,
		scheduler:  deps.Scheduler,
		clock:      deps.Clock,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// AnnounceEntry posts the "open a ticket" prompt with the configured category
// list to the entry channel. A no-op when no entry channel is configured.
func (s *TicketService) AnnounceEntry(ctx context.Context) {
	if s.cfg.EntryChannelID == "" {
		return
	}
	prompt := "Select ticket category: " + strings.Join(s.cfg.Categories, ", ")
	s.post(ctx, domain.ChannelID(s.cfg.EntryChannelID), prompt)
}

// CreateTicket opens a private channel for the requester, registers the
// ticket, and starts the idle and escalation timers. Both timers count from
// creation time; there is no activity reset.
func (s *TicketService) CreateTicket(ctx context.Context, requester domain.UserID, category string) (*domain.Ticket, error) {
	if !s.cfg.HasCategory(category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{
			"category": category,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sequence := s.counters.Next(requester)
	name := channelName(requester, sequence)
	role, _ := s.cfg.RoleFor(category)

	channelID, err := s.gateway.CreateChannel(ctx, name, gateway.Visibility{
		Requester: requester,
		Role:      role,
	})
	if err != nil {
		return nil, apperrors.NewGatewayUnavailable(err)
	}

	ticket := &domain.Ticket{
		ChannelID: channelID,
		Requester: requester,
		Category:  category,
		Sequence:  sequence,
		CreatedAt: s.clock.Now(),
	}
	if err := s.tickets.Add(ticket); err != nil {
		return nil, err
	}

	s.post(ctx, channelID, fmt.Sprintf("Hello %s, describe your issue. Mods will assist you soon.", requester))

	id := channelID
	s.scheduler.Schedule("idle:"+string(id), s.cfg.IdleTimeout(), func() {
		s.handleIdleTimeout(id)
	})
	s.scheduler.Schedule("escalation:"+string(id), s.cfg.EscalationDelay(), func() {
		s.handleEscalationCheck(id)
	})

	s.metrics.RecordTicket("created")
	s.publish(ctx, events.Event{
		Type:      events.EventTicketCreated,
		ChannelID: channelID,
		Payload: events.TicketCreatedPayload{
			Requester: requester,
			Category:  category,
			Sequence:  sequence,
		},
	})
	return ticket, nil
}

// CloseTicket closes an open ticket: records the closure time, archives the
// transcript, and posts a closure notice offering the feedback choice.
// Closing an already-closed ticket returns INVALID_STATE and performs no
// further side effects.
func (s *TicketService) CloseTicket(ctx context.Context, id domain.ChannelID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked(ctx, id, reason)
}

// GetTicket returns the ticket record.
func (s *TicketService) GetTicket(id domain.ChannelID) (domain.Ticket, error) {
	return s.tickets.Get(id)
}

// PointsBalance returns the user's accumulated points, zero for unknown users.
func (s *TicketService) PointsBalance(user domain.UserID) int {
	return s.ledger.Balance(user)
}

// SubmitFeedback records the closure survey answer. If the ticket is still
// open it is closed as part of this call. Satisfied feedback credits the
// requester's ledger entry; the responder is recorded as handler only when
// they are not the requester. Channel deletion is scheduled a fixed retention
// delay after feedback. Returns a short acknowledgment for the responder.
func (s *TicketService) SubmitFeedback(ctx context.Context, id domain.ChannelID, responder domain.UserID, choice domain.FeedbackChoice) (string, error) {
	if !choice.Valid() {
		return "", apperrors.NewValidationError("feedback must be satisfied or unsatisfied", map[string]any{
			"choice": string(choice),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		requester    domain.UserID
		closedByCall bool
	)
	err := s.tickets.Update(id, func(t *domain.Ticket) error {
		if t.Feedback != nil {
			return apperrors.NewInvalidState("feedback already submitted", map[string]any{
				"channel_id": string(id),
			})
		}
		if t.ClosedAt == nil {
			now := s.clock.Now()
			t.ClosedAt = &now
			closedByCall = true
		}
		fb := choice
		t.Feedback = &fb
		if responder != t.Requester {
			handler := responder
			t.HandledBy = &handler
		} else {
			t.HandledBy = nil
		}
		requester = t.Requester
		return nil
	})
	if err != nil {
		return "", err
	}

	awarded := 0
	if choice == domain.FeedbackSatisfied {
		awarded = domain.SatisfiedFeedbackPoints
		s.ledger.Credit(requester, awarded)
	}

	if closedByCall {
		s.metrics.RecordTicket("closed")
		s.archiveTranscript(ctx, id)
	}

	s.scheduler.Schedule("delete:"+string(id), s.cfg.RetentionDelay(), func() {
		s.handleDelete(id)
	})

	s.publish(ctx, events.Event{
		Type:      events.EventFeedbackSubmitted,
		ChannelID: id,
		Payload: events.FeedbackSubmittedPayload{
			Responder:     responder,
			Choice:        choice,
			PointsAwarded: awarded,
		},
	})
	return fmt.Sprintf("Thanks for your feedback: %s", choice), nil
}

// handleIdleTimeout fires once, a fixed delay after creation. A ticket that
// is already closed is left alone.
func (s *TicketService) handleIdleTimeout(id domain.ChannelID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.tickets.Get(id)
	if err != nil || ticket.IsClosed() {
		return
	}
	if err := s.closeLocked(context.Background(), id, "idle timeout"); err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "INVALID_STATE" {
			return
		}
		s.logger.Warn("idle close failed", zap.String("channel_id", string(id)), zap.Error(err))
	}
}

// handleEscalationCheck fires once, a fixed delay after creation. It posts an
// escalation notice addressed to the category's responsible role unless the
// ticket closed or escalated in the meantime.
func (s *TicketService) handleEscalationCheck(id domain.ChannelID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var category string
	err := s.tickets.Update(id, func(t *domain.Ticket) error {
		if t.ClosedAt != nil || t.Escalated {
			return errTransitionLost
		}
		t.Escalated = true
		category = t.Category
		return nil
	})
	if err != nil {
		return
	}

	role, _ := s.cfg.RoleFor(category)
	s.post(context.Background(), id, fmt.Sprintf(
		"@%s This ticket has been idle for %d minutes. Please assist!",
		role, s.cfg.EscalationSec/60))

	s.metrics.RecordTicket("escalated")
	s.publish(context.Background(), events.Event{
		Type:      events.EventTicketEscalated,
		ChannelID: id,
		Payload: events.TicketEscalatedPayload{
			Category: category,
			Role:     role,
		},
	})
}

// handleDelete fires once, the retention delay after feedback. The channel
// may already be gone; that is not an error.
func (s *TicketService) handleDelete(id domain.ChannelID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.tickets.Update(id, func(t *domain.Ticket) error {
		if t.Deleted {
			return errTransitionLost
		}
		t.Deleted = true
		return nil
	})
	if err != nil {
		return
	}

	const reason = "ticket closed with feedback"
	if err := s.gateway.DeleteChannel(context.Background(), id, reason); err != nil {
		if !errors.Is(err, gateway.ErrChannelNotFound) {
			s.logger.Warn("channel deletion failed", zap.String("channel_id", string(id)), zap.Error(err))
		}
	}

	s.metrics.RecordTicket("deleted")
	s.publish(context.Background(), events.Event{
		Type:      events.EventTicketDeleted,
		ChannelID: id,
		Payload:   events.TicketDeletedPayload{Reason: reason},
	})
}

// errTransitionLost marks a timer that fired after a competing transition
// already won; the firing is a safe no-op.
var errTransitionLost = errors.New("transition already applied")

// closeLocked performs the closure side-effect set. Caller holds s.mu.
func (s *TicketService) closeLocked(ctx context.Context, id domain.ChannelID, reason string) error {
	err := s.tickets.Update(id, func(t *domain.Ticket) error {
		if t.ClosedAt != nil {
			return apperrors.NewInvalidState("ticket already closed", map[string]any{
				"channel_id": string(id),
			})
		}
		now := s.clock.Now()
		t.ClosedAt = &now
		return nil
	})
	if err != nil {
		return err
	}

	s.archiveTranscript(ctx, id)
	s.post(ctx, id, fmt.Sprintf("Ticket closed: %s. How was your support? Reply satisfied or unsatisfied.", reason))

	s.metrics.RecordTicket("closed")
	s.publish(ctx, events.Event{
		Type:      events.EventTicketClosed,
		ChannelID: id,
		Payload:   events.TicketClosedPayload{Reason: reason},
	})
	return nil
}

// archiveTranscript fetches the channel history, renders it oldest-first as
// "author: content" lines, and delivers it to the configured log
// destination. Gateway failures are logged and swallowed.
func (s *TicketService) archiveTranscript(ctx context.Context, id domain.ChannelID) {
	ticket, err := s.tickets.Get(id)
	if err != nil {
		return
	}
	history, err := s.gateway.FetchHistory(ctx, id)
	if err != nil {
		s.logger.Warn("transcript fetch failed", zap.String("channel_id", string(id)), zap.Error(err))
		return
	}
	name := channelName(ticket.Requester, ticket.Sequence)
	transcript := fmt.Sprintf("Transcript for %s:\n%s", name, RenderTranscript(history))
	if err := s.gateway.ArchiveTranscript(ctx, s.cfg.LogDestination, transcript); err != nil {
		s.logger.Warn("transcript archive failed", zap.String("channel_id", string(id)), zap.Error(err))
	}
}

// post sends a message to the channel, swallowing gateway failures. A missing
// channel is expected when the platform removed it externally.
func (s *TicketService) post(ctx context.Context, id domain.ChannelID, text string) {
	if err := s.gateway.PostMessage(ctx, id, text); err != nil {
		if errors.Is(err, gateway.ErrChannelNotFound) {
			s.logger.Debug("message to removed channel skipped", zap.String("channel_id", string(id)))
			return
		}
		s.logger.Warn("message post failed", zap.String("channel_id", string(id)), zap.Error(err))
	}
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func channelName(requester domain.UserID, sequence int) string {
	return fmt.Sprintf("ticket-%s-%d", requester, sequence)
}
