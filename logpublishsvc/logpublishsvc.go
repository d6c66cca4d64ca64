// Package logpublishsvc publishes log entries over the portal. Entries of game
// loggers go to the match feed of their game.
package logpublishsvc

import (
	"context"
	"github.com/gobuffalo/nulls"
	"github.com/lefinal/flier/event"
	"github.com/lefinal/flier/logging"
	"github.com/lefinal/flier/matchfeed"
	"github.com/lefinal/flier/portal"
	"github.com/lefinal/flier/service"
	"go.uber.org/zap"
	"time"
)

// topicLogPublish is the topic for entries not belonging to a game.
var topicLogPublish = portal.BaseTopic.Sub("log", "next")

// gameField is the log field holding the game id.
const gameField = "game"

// collectDelay is how long entries are collected before publishing them as a
// batch.
const collectDelay = 100 * time.Millisecond

// maxBatchSize limits the entries published at once.
const maxBatchSize = 64

type logPublishService struct {
	logger  *zap.Logger
	portal  portal.Portal
	entries <-chan logging.LogEntry
}

// New creates the service that publishes entries read from the given channel.
func New(logger *zap.Logger, portal portal.Portal, entries <-chan logging.LogEntry) service.Service {
	return &logPublishService{
		logger:  logger,
		portal:  portal,
		entries: entries,
	}
}

// Run until the context is done or the entry channel is closed.
func (s *logPublishService) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case entry, more := <-s.entries:
			if !more {
				return nil
			}
			for _, e := range s.collect(ctx, entry) {
				s.publish(ctx, e)
			}
		}
	}
}

// collect returns the given entry together with the ones arriving within
// collectDelay. The batch is dropped if the context is done.
func (s *logPublishService) collect(ctx context.Context, first logging.LogEntry) []logging.LogEntry {
	batch := []logging.LogEntry{first}
	timer := time.NewTimer(collectDelay)
	defer timer.Stop()
	for len(batch) < maxBatchSize {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return batch
		case entry, more := <-s.entries:
			if !more {
				return batch
			}
			batch = append(batch, entry)
		}
	}
	return batch
}

func (s *logPublishService) publish(ctx context.Context, entry logging.LogEntry) {
	payload := event.LogEntry{
		Time:    entry.Time,
		Message: entry.Message,
		Level:   entry.Level.String(),
		Logger:  entry.LoggerName,
		Fields:  entry.Fields,
	}
	topic := topicLogPublish
	if game, ok := entry.Fields[gameField].(string); ok && game != "" {
		payload.Game = nulls.NewString(game)
		topic = matchfeed.Topic(event.Event{Game: game, Type: event.TypeLog})
	}
	s.portal.Publish(ctx, topic, payload)
}
