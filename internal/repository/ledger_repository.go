package repository

import (
	"sync"

	"github.com/rashmods/helpdesk/internal/domain"
)

// LedgerRepository tracks accumulated reputation points per user. Balances
// only increase; there is no decrement operation.
type LedgerRepository interface {
	// Credit adds amount to the user's balance, creating the entry at zero
	// if absent. Negative amounts are ignored.
	Credit(user domain.UserID, amount int)
	// Balance returns the user's balance, zero for unknown users.
	Balance(user domain.UserID) int
	// Snapshot returns a copy of every entry.
	Snapshot() []domain.LedgerEntry
}

type ledgerRepository struct {
	mu     sync.RWMutex
	points map[domain.UserID]int
}

// NewLedgerRepository instantiates the in-memory ledger.
func NewLedgerRepository() LedgerRepository {
	return &ledgerRepository{points: make(map[domain.UserID]int)}
}

func (r *ledgerRepository) Credit(user domain.UserID, amount int) {
	if amount < 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points[user] += amount
}

func (r *ledgerRepository) Balance(user domain.UserID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.points[user]
}

func (r *ledgerRepository) Snapshot() []domain.LedgerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.LedgerEntry, 0, len(r.points))
	for user, points := range r.points {
		out = append(out, domain.LedgerEntry{User: user, Points: points})
	}
	return out
}
