// Package scheduler provides fire-and-forget delayed callbacks for the
// ticket lifecycle. Timers are never cancelled explicitly; callbacks check
// ticket state on firing and no-op when stale.
package scheduler

import (
	"time"

	"go.uber.org/zap"
)

// Scheduler runs fn once after delay. The name identifies the task in logs.
type Scheduler interface {
	Schedule(name string, delay time.Duration, fn func())
}

// TimerScheduler schedules on real wall-clock timers. A panicking callback is
// recovered and logged so one ticket's timer cannot take down the process.
type TimerScheduler struct {
	logger *zap.Logger
}

// NewTimerScheduler constructs the production scheduler.
func NewTimerScheduler(logger *zap.Logger) *TimerScheduler {
	return &TimerScheduler{logger: logger}
}

// Schedule runs fn once, delay after now.
func (s *TimerScheduler) Schedule(name string, delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("scheduled task panicked",
					zap.String("task", name),
					zap.Any("panic", r))
			}
		}()
		fn()
	})
}
