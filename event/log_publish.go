package event

import (
	"github.com/gobuffalo/nulls"
	"time"
)

// LogEntry is a published log entry.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
	Level   string    `json:"level"`
	Logger  string    `json:"logger"`
	// Game is the id of the game the entry was logged for, if any.
	Game   nulls.String           `json:"game"`
	Fields map[string]interface{} `json:"fields"`
}
