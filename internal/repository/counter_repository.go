package repository

import (
	"sync"

	"github.com/rashmods/helpdesk/internal/domain"
)

// CounterRepository issues per-user ticket sequence numbers. Counters only
// ever increase and are never reset, so a user's third ticket is always
// number 3 regardless of interleaving with other users.
type CounterRepository interface {
	Next(user domain.UserID) int
}

type counterRepository struct {
	mu       sync.Mutex
	counters map[domain.UserID]int
}

// NewCounterRepository instantiates the in-memory counter store.
func NewCounterRepository() CounterRepository {
	return &counterRepository{counters: make(map[domain.UserID]int)}
}

func (r *counterRepository) Next(user domain.UserID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[user]++
	return r.counters[user]
}
