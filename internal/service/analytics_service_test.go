package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashmods/helpdesk/internal/domain"
	"github.com/rashmods/helpdesk/internal/repository"
)

func addTicket(t *testing.T, repo repository.TicketRepository, ticket domain.Ticket) {
	t.Helper()
	require.NoError(t, repo.Add(&ticket))
}

func closedTicket(id string, createdAt time.Time, after time.Duration, choice domain.FeedbackChoice, handledBy domain.UserID) domain.Ticket {
	closedAt := createdAt.Add(after)
	ticket := domain.Ticket{
		ChannelID: domain.ChannelID(id),
		Requester: "alice",
		Category:  "Bugs",
		Sequence:  1,
		CreatedAt: createdAt,
		ClosedAt:  &closedAt,
		Feedback:  &choice,
	}
	if handledBy != "" {
		ticket.HandledBy = &handledBy
	}
	return ticket
}

func TestSnapshotDashboardExample(t *testing.T) {
	tickets := repository.NewTicketRepository()
	ledger := repository.NewLedgerRepository()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	addTicket(t, tickets, domain.Ticket{
		ChannelID: "open-1",
		Requester: "dave",
		Category:  "Bugs",
		Sequence:  1,
		CreatedAt: base,
	})
	addTicket(t, tickets, closedTicket("closed-1", base, 120*time.Second, domain.FeedbackSatisfied, "mod-bob"))
	addTicket(t, tickets, closedTicket("closed-2", base, 300*time.Second, domain.FeedbackUnsatisfied, "mod-bob"))
	ledger.Credit("alice", domain.SatisfiedFeedbackPoints)

	snapshot := NewAnalyticsService(tickets, ledger).Snapshot()

	assert.Equal(t, 1, snapshot.OpenTickets)
	assert.Equal(t, 2, snapshot.ClosedTickets)
	assert.InDelta(t, 3.5, snapshot.AvgResponseMinutes, 1e-9)
	assert.Equal(t, 1, snapshot.FeedbackSatisfied)
	assert.Equal(t, 1, snapshot.FeedbackUnsatisfied)
	assert.Equal(t, map[domain.UserID]int{"mod-bob": 2}, snapshot.ClosedByResponder)
	require.Len(t, snapshot.Leaderboard, 1)
	assert.Equal(t, LeaderboardEntry{User: "alice", Points: 5}, snapshot.Leaderboard[0])
}

func TestSnapshotEmptyStore(t *testing.T) {
	snapshot := NewAnalyticsService(repository.NewTicketRepository(), repository.NewLedgerRepository()).Snapshot()

	assert.Zero(t, snapshot.OpenTickets)
	assert.Zero(t, snapshot.ClosedTickets)
	assert.Zero(t, snapshot.AvgResponseMinutes)
	assert.Empty(t, snapshot.Leaderboard)
}

func TestLeaderboardTopTenDeterministicOrder(t *testing.T) {
	tickets := repository.NewTicketRepository()
	ledger := repository.NewLedgerRepository()

	for i := 0; i < 12; i++ {
		user := domain.UserID(fmt.Sprintf("user-%02d", i))
		ledger.Credit(user, 5*(i%6)) // duplicate totals force tie-breaking
	}

	board := NewAnalyticsService(tickets, ledger).Snapshot().Leaderboard
	require.Len(t, board, 10)

	for i := 1; i < len(board); i++ {
		if board[i-1].Points == board[i].Points {
			assert.Less(t, board[i-1].User, board[i].User, "ties ordered by user ID")
		} else {
			assert.Greater(t, board[i-1].Points, board[i].Points)
		}
	}
}
