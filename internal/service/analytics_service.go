package service

import (
	"sort"

	"github.com/rashmods/helpdesk/internal/domain"
	"github.com/rashmods/helpdesk/internal/repository"
)

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	User   domain.UserID
	Points int
}

// DashboardSnapshot is the derived analytics view over the ticket store and
// points ledger. All values are computed; nothing here mutates state.
type DashboardSnapshot struct {
	OpenTickets         int
	ClosedTickets       int
	ClosedByResponder   map[domain.UserID]int
	AvgResponseMinutes  float64
	FeedbackSatisfied   int
	FeedbackUnsatisfied int
	Leaderboard         []LeaderboardEntry
}

// AnalyticsService computes dashboard snapshots.
type AnalyticsService struct {
	tickets repository.TicketRepository
	ledger  repository.LedgerRepository
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(tickets repository.TicketRepository, ledger repository.LedgerRepository) *AnalyticsService {
	return &AnalyticsService{tickets: tickets, ledger: ledger}
}

const leaderboardSize = 10

// Snapshot scans the store and ledger and aggregates the dashboard values.
// It reads consistent copies, so it may run concurrently with lifecycle
// mutations; results are at worst stale by one event.
func (s *AnalyticsService) Snapshot() DashboardSnapshot {
	snapshot := DashboardSnapshot{
		ClosedByResponder: make(map[domain.UserID]int),
	}

	var totalResponseMinutes float64
	for _, ticket := range s.tickets.All() {
		if !ticket.IsClosed() {
			snapshot.OpenTickets++
			continue
		}
		snapshot.ClosedTickets++
		if elapsed, ok := ticket.ResponseTime(); ok {
			totalResponseMinutes += elapsed.Minutes()
		}
		if ticket.HandledBy != nil {
			snapshot.ClosedByResponder[*ticket.HandledBy]++
		}
		if ticket.Feedback != nil {
			switch *ticket.Feedback {
			case domain.FeedbackSatisfied:
				snapshot.FeedbackSatisfied++
			case domain.FeedbackUnsatisfied:
				snapshot.FeedbackUnsatisfied++
			}
		}
	}
	if snapshot.ClosedTickets > 0 {
		snapshot.AvgResponseMinutes = totalResponseMinutes / float64(snapshot.ClosedTickets)
	}

	snapshot.Leaderboard = topBalances(s.ledger.Snapshot(), leaderboardSize)
	return snapshot
}

// topBalances returns the n highest balances, descending; equal balances are
// ordered by user ID so the leaderboard is deterministic.
func topBalances(entries []domain.LedgerEntry, n int) []LeaderboardEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points == entries[j].Points {
			return entries[i].User < entries[j].User
		}
		return entries[i].Points > entries[j].Points
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, LeaderboardEntry{User: entry.User, Points: entry.Points})
	}
	return out
}
