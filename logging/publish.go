package logging

import (
	"go.uber.org/zap/zapcore"
	"time"
)

// publishBufferSize is the number of entries that are buffered for
// publishing. Entries are dropped if the buffer is full.
const publishBufferSize = 256

// LogEntry is an entry that is published.
type LogEntry struct {
	Time       time.Time
	Message    string
	Level      zapcore.Level
	LoggerName string
	Fields     map[string]interface{}
}

// publishCore is a zapcore.Core that forwards entries to a channel without
// blocking the logging goroutine.
type publishCore struct {
	zapcore.LevelEnabler
	fields  []zapcore.Field
	entries chan<- LogEntry
}

// NewPublishCore creates a zapcore.Core that forwards entries with at least the
// given level to the returned channel. Entries are dropped when the consumer
// does not keep up.
func NewPublishCore(minLevel zapcore.Level) (zapcore.Core, <-chan LogEntry) {
	entries := make(chan LogEntry, publishBufferSize)
	return &publishCore{
		LevelEnabler: minLevel,
		entries:      entries,
	}, entries
}

func (c *publishCore) With(fields []zapcore.Field) zapcore.Core {
	combined := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	combined = append(combined, c.fields...)
	combined = append(combined, fields...)
	return &publishCore{
		LevelEnabler: c.LevelEnabler,
		fields:       combined,
		entries:      c.entries,
	}
}

func (c *publishCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *publishCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(enc)
	}
	for _, field := range fields {
		field.AddTo(enc)
	}
	select {
	case c.entries <- LogEntry{
		Time:       entry.Time,
		Message:    entry.Message,
		Level:      entry.Level,
		LoggerName: entry.LoggerName,
		Fields:     enc.Fields,
	}:
	default:
	}
	return nil
}

func (c *publishCore) Sync() error {
	return nil
}
