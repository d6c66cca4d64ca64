// Package tick implements the single-threaded cooperative runtime all game
// state lives on. Everything scheduled here runs on the loop goroutine.
package tick

import (
	"fmt"
	"github.com/lefinal/flier/errors"
	"go.uber.org/zap"
)

// Task is a scheduled callback. It receives its own Handle so that it can
// cancel itself.
type Task func(h *Handle)

// Handle is a task scheduled with Scheduler.Schedule.
type Handle struct {
	task Task
	// next is the tick number the task runs next.
	next uint64
	// period is the number of ticks between runs. Zero runs the task once.
	period uint64
	// cancelled is set by Cancel.
	cancelled bool
}

// Cancel the task. Cancelling multiple times is allowed.
func (h *Handle) Cancel() {
	h.cancelled = true
}

// Cancelled reports whether the task was cancelled or has finished.
func (h *Handle) Cancelled() bool {
	return h.cancelled
}

// Scheduler runs tasks in tick granularity. It is not safe for concurrent use.
type Scheduler struct {
	logger *zap.Logger
	// current is the number of the tick that last ran.
	current uint64
	tasks   []*Handle
}

// NewScheduler creates a Scheduler with no tasks.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]*Handle, 0),
	}
}

// Current returns the number of ticks run so far.
func (s *Scheduler) Current() uint64 {
	return s.current
}

// Schedule the given task to run after delay ticks and then every period
// ticks. A period of zero runs the task exactly once.
func (s *Scheduler) Schedule(delay uint64, period uint64, task Task) *Handle {
	h := &Handle{
		task:   task,
		next:   s.current + delay,
		period: period,
	}
	s.tasks = append(s.tasks, h)
	return h
}

// Pending returns the number of tasks that are neither cancelled nor finished.
func (s *Scheduler) Pending() int {
	pending := 0
	for _, h := range s.tasks {
		if !h.cancelled {
			pending++
		}
	}
	return pending
}

// Tick advances the scheduler by one tick and runs all due tasks in the order
// they were scheduled. Tasks scheduled while ticking run at the earliest in
// the next tick.
func (s *Scheduler) Tick() {
	s.current++
	due := s.tasks
	for _, h := range due {
		if h.cancelled || h.next > s.current {
			continue
		}
		s.run(h)
		if h.period == 0 {
			h.cancelled = true
		} else {
			h.next = s.current + h.period
		}
	}
	// Forget cancelled.
	remaining := make([]*Handle, 0, len(s.tasks))
	for _, h := range s.tasks {
		if !h.cancelled {
			remaining = append(remaining, h)
		}
	}
	s.tasks = remaining
}

// run the task and recover from panics. A panicking task is cancelled.
func (s *Scheduler) run(h *Handle) {
	defer func() {
		if r := recover(); r != nil {
			h.cancelled = true
			errors.Log(s.logger, errors.NewInternalError("task panicked", errors.Details{
				"recovered": fmt.Sprintf("%v", r),
				"tick":      s.current,
			}))
		}
	}()
	h.task(h)
}
