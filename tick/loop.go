package tick

import (
	"context"
	"fmt"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/service"
	"go.uber.org/zap"
	"time"
)

// Interval is the duration of one host tick (20 Hz).
const Interval = 50 * time.Millisecond

// commandBufferSize is the number of submitted commands that can wait for the
// next tick without blocking.
const commandBufferSize = 256

// Ticker is called once per tick on the loop goroutine.
type Ticker interface {
	Tick()
}

// TickerFunc allows using a function as Ticker.
type TickerFunc func()

func (f TickerFunc) Tick() {
	f()
}

// Loop drives the Scheduler and all registered tickers. Commands submitted
// from other goroutines are executed on the loop goroutine before each tick,
// so that all state mutation is serial.
type Loop struct {
	logger    *zap.Logger
	scheduler *Scheduler
	interval  time.Duration
	// commands to run before the next tick.
	commands chan func()
	// tickers are run each tick in registration order before the scheduler.
	tickers []Ticker
}

// NewLoop creates a Loop with the given Scheduler. Run it with Run.
func NewLoop(logger *zap.Logger, scheduler *Scheduler, interval time.Duration) *Loop {
	return &Loop{
		logger:    logger,
		scheduler: scheduler,
		interval:  interval,
		commands:  make(chan func(), commandBufferSize),
		tickers:   make([]Ticker, 0),
	}
}

var _ service.Service = (*Loop)(nil)

// Scheduler returns the scheduler driven by the loop.
func (l *Loop) Scheduler() *Scheduler {
	return l.scheduler
}

// AddTicker registers a Ticker. Only call this from the loop goroutine or
// before Run.
func (l *Loop) AddTicker(t Ticker) {
	l.tickers = append(l.tickers, t)
}

// RemoveTicker unregisters the given Ticker. Tickers are compared by value, so
// only pointer tickers can be removed. Only call this from the loop goroutine.
func (l *Loop) RemoveTicker(t Ticker) {
	remaining := make([]Ticker, 0, len(l.tickers))
	for _, registered := range l.tickers {
		if registered != t {
			remaining = append(remaining, registered)
		}
	}
	l.tickers = remaining
}

// Submit the given command for being run on the loop goroutine before the
// next tick.
func (l *Loop) Submit(ctx context.Context, command func()) error {
	select {
	case <-ctx.Done():
		return errors.Error{
			Code:    errors.ErrAborted,
			Err:     ctx.Err(),
			Message: "submit command",
		}
	case l.commands <- command:
		return nil
	}
}

// Do submits the command and waits until it has been run.
func (l *Loop) Do(ctx context.Context, command func()) error {
	done := make(chan struct{})
	err := l.Submit(ctx, func() {
		defer close(done)
		command()
	})
	if err != nil {
		return errors.Wrap(err, "submit", nil)
	}
	select {
	case <-ctx.Done():
		return errors.Error{
			Code:    errors.ErrAborted,
			Err:     ctx.Err(),
			Message: "wait for command",
		}
	case <-done:
		return nil
	}
}

// Run the loop until the given context.Context is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	l.logger.Debug(fmt.Sprintf("ticking every %s", l.interval))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Step()
		}
	}
}

// Step runs all pending commands and then one tick. Run calls this on every
// tick.
func (l *Loop) Step() {
	l.runCommands()
	for _, t := range l.tickers {
		l.safely("ticker", t.Tick)
	}
	l.scheduler.Tick()
}

// runCommands runs all commands that are currently waiting.
func (l *Loop) runCommands() {
	for {
		select {
		case command := <-l.commands:
			l.safely("command", command)
		default:
			return
		}
	}
}

// safely runs the given function and logs a recovered panic, so that a single
// faulty callback never stops the loop.
func (l *Loop) safely(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			errors.Log(l.logger, errors.NewInternalError(fmt.Sprintf("%s panicked", what), errors.Details{
				"recovered": fmt.Sprintf("%v", r),
			}))
		}
	}()
	fn()
}
