package repository

import (
	"sync"

	"github.com/rashmods/helpdesk/internal/domain"

	apperrors "github.com/rashmods/helpdesk/pkg/util/errorutil"
)

// TicketRepository is the single source of truth for ticket records. It
// stores and looks up; all business rules live in the lifecycle service.
type TicketRepository interface {
	Add(ticket *domain.Ticket) error
	Get(id domain.ChannelID) (domain.Ticket, error)
	// Update applies fn to the stored record under the repository lock so
	// concurrent readers never observe a half-applied mutation. If fn
	// returns an error the record is left untouched.
	Update(id domain.ChannelID, fn func(*domain.Ticket) error) error
	// All returns a copy of every record. Insertion order is not
	// significant.
	All() []domain.Ticket
}

type ticketRepository struct {
	mu      sync.RWMutex
	tickets map[domain.ChannelID]*domain.Ticket
}

// NewTicketRepository instantiates the in-memory repository. State lives for
// the process lifetime only.
func NewTicketRepository() TicketRepository {
	return &ticketRepository{tickets: make(map[domain.ChannelID]*domain.Ticket)}
}

func (r *ticketRepository) Add(ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tickets[ticket.ChannelID]; exists {
		return apperrors.NewInvalidState("ticket already registered", map[string]any{
			"channel_id": string(ticket.ChannelID),
		})
	}
	stored := *ticket
	r.tickets[ticket.ChannelID] = &stored
	return nil
}

func (r *ticketRepository) Get(id domain.ChannelID) (domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{
			"channel_id": string(id),
		})
	}
	return *ticket, nil
}

func (r *ticketRepository) Update(id domain.ChannelID, fn func(*domain.Ticket) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return apperrors.NewNotFound("ticket", map[string]any{
			"channel_id": string(id),
		})
	}
	scratch := *ticket
	if err := fn(&scratch); err != nil {
		return err
	}
	*ticket = scratch
	return nil
}

func (r *ticketRepository) All() []domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		out = append(out, *ticket)
	}
	return out
}
