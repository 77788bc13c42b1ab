package domain

import "time"

// ChannelID is the opaque conversation handle assigned by the chat platform
// when the ticket channel is created. It is the ticket's identity.
type ChannelID string

// UserID identifies a member of the community server.
type UserID string

// RoleID identifies a platform role that can be mentioned in notices.
type RoleID string

// FeedbackChoice enumerates the closure survey answers.
type FeedbackChoice string

const (
	FeedbackSatisfied   FeedbackChoice = "satisfied"
	FeedbackUnsatisfied FeedbackChoice = "unsatisfied"
)

// Valid reports whether the choice is one of the two survey answers.
func (f FeedbackChoice) Valid() bool {
	return f == FeedbackSatisfied || f == FeedbackUnsatisfied
}

// Ticket is the aggregate for a private support conversation.
//
// ClosedAt is monotonic: once set it is never cleared or changed. Feedback is
// set at most once and only while ClosedAt is non-nil. Escalated only flips
// false->true while the ticket is still open. Deleted marks the terminal
// state after the channel has been removed; the record is retained for
// analytics.
type Ticket struct {
	ChannelID ChannelID
	Requester UserID
	Category  string
	Sequence  int
	CreatedAt time.Time
	ClosedAt  *time.Time
	Feedback  *FeedbackChoice
	Escalated bool
	HandledBy *UserID
	Deleted   bool
}

// IsClosed reports whether the ticket has been closed.
func (t *Ticket) IsClosed() bool {
	return t.ClosedAt != nil
}

// ResponseTime returns the elapsed time between creation and closure,
// and false while the ticket is still open.
func (t *Ticket) ResponseTime() (time.Duration, bool) {
	if t.ClosedAt == nil {
		return 0, false
	}
	return t.ClosedAt.Sub(t.CreatedAt), true
}
