// Package matchfeed publishes the events reported by games.
package matchfeed

import (
	"context"
	"github.com/lefinal/flier/event"
	"github.com/lefinal/flier/portal"
	"go.uber.org/zap"
)

// bufferSize is the number of reported events that are buffered until
// publishing. Further reports are dropped.
const bufferSize = 512

// Feed buffers reported events and publishes them from its own goroutine so
// that reporting never blocks the tick loop.
type Feed struct {
	logger *zap.Logger
	// portal is used for publishing. If nil, events are only logged.
	portal portal.Portal
	events chan event.Event
}

// New creates a Feed that publishes to the given portal.Portal. If the portal
// is nil, events are logged only. Run it with Feed.Run.
func New(logger *zap.Logger, portal portal.Portal) *Feed {
	return &Feed{
		logger: logger,
		portal: portal,
		events: make(chan event.Event, bufferSize),
	}
}

// Topic returns the topic the given event is published to.
func Topic(e event.Event) portal.Topic {
	return portal.BaseTopic.Sub("games", e.Game, string(e.Type))
}

// Report the given event. If the buffer is full, the event is dropped.
func (f *Feed) Report(e event.Event) {
	select {
	case f.events <- e:
	default:
		f.logger.Warn("drop event because of full buffer",
			zap.String("game", e.Game),
			zap.String("event_type", string(e.Type)))
	}
}

// Run publishes reported events until the given context.Context is done.
func (f *Feed) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-f.events:
			f.logger.Debug("event",
				zap.String("game", e.Game),
				zap.String("event_type", string(e.Type)),
				zap.Any("payload", e.Payload))
			if f.portal != nil {
				f.portal.Publish(ctx, Topic(e), e.Payload)
			}
		}
	}
}
