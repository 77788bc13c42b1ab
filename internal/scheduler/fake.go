package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/rashmods/helpdesk/internal/clock"
)

type fakeTask struct {
	name string
	due  time.Time
	seq  int
	fn   func()
}

// FakeScheduler executes scheduled tasks synchronously as a FakeClock is
// advanced, so tests can simulate elapsed time without sleeping. Tasks run in
// due order; ties run in scheduling order.
type FakeScheduler struct {
	mu    sync.Mutex
	clock *clock.FakeClock
	seq   int
	tasks []fakeTask
}

// NewFakeScheduler binds a fake scheduler to the given fake clock.
func NewFakeScheduler(c *clock.FakeClock) *FakeScheduler {
	return &FakeScheduler{clock: c}
}

// Schedule queues fn to run once the bound clock passes now+delay.
func (s *FakeScheduler) Schedule(name string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.tasks = append(s.tasks, fakeTask{
		name: name,
		due:  s.clock.Now().Add(delay),
		seq:  s.seq,
		fn:   fn,
	})
}

// Advance moves the clock forward by d, running every task that falls due.
// The clock is stepped to each task's due time before the task runs, so
// callbacks observe the time at which they would really have fired, and tasks
// scheduled by callbacks are picked up within the same advance.
func (s *FakeScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)
	for {
		task, ok := s.popDueBefore(target)
		if !ok {
			break
		}
		if step := task.due.Sub(s.clock.Now()); step > 0 {
			s.clock.Advance(step)
		}
		task.fn()
	}
	if remaining := target.Sub(s.clock.Now()); remaining > 0 {
		s.clock.Advance(remaining)
	}
}

// Pending returns the number of tasks not yet due.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// PendingNames returns the names of tasks not yet due, in scheduling order.
func (s *FakeScheduler) PendingNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		names = append(names, t.name)
	}
	return names
}

func (s *FakeScheduler) popDueBefore(target time.Time) (fakeTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return fakeTask{}, false
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due.Equal(s.tasks[j].due) {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].due.Before(s.tasks[j].due)
	})
	if s.tasks[0].due.After(target) {
		return fakeTask{}, false
	}
	task := s.tasks[0]
	s.tasks = s.tasks[1:]
	return task, true
}
