package errors

type Code string

const (
	ErrAborted       Code = "aborted"
	ErrBadRequest    Code = "bad-request"
	ErrCommunication Code = "communication"
	ErrFatal         Code = "fatal"
	ErrNotFound      Code = "not-found"
	ErrInternal      Code = "internal"
	// ErrLoading is used for configuration that could not be loaded. Loading
	// errors abort creation of whatever was being loaded.
	ErrLoading    Code = "loading"
	ErrUnexpected Code = "unexpected"
)

type Kind string

const (
	KindDB          Kind = "db"
	KindDBQuery     Kind = "db-query"
	KindDBScan      Kind = "db-scan"
	KindQueryToSQL  Kind = "query-to-sql"
	KindEncodeJSON  Kind = "encode-json"
	KindDecodeYAML  Kind = "decode-yaml"
	KindUnexpected  Kind = "unexpected"
	KindNotRunning  Kind = "not-running"
	KindGameEnded   Kind = "game-ended"
	KindUnknownGame Kind = "unknown-game"
	// KindMissingValue is used when a required configuration value is not set.
	KindMissingValue Kind = "missing-value"
	// KindInvalidValue is used when a configuration value has the wrong type or
	// is out of range.
	KindInvalidValue Kind = "invalid-value"
	// KindEmptySpawnList is used when a game or team has no spawn locations.
	KindEmptySpawnList Kind = "empty-spawn-list"
	// KindUnknownColor is used for color names that are not part of the palette.
	KindUnknownColor Kind = "unknown-color"
	// KindMissingTeams is used for team games without any team definitions.
	KindMissingTeams Kind = "missing-teams"
	// KindNoArena is used when a game needs an arena at load time but none was
	// provided.
	KindNoArena Kind = "no-arena"
	// KindUnknownLocation is used when an arena does not know a named location
	// or location set.
	KindUnknownLocation  Kind = "unknown-location"
	KindResourceNotFound Kind = "resource-not-found"
)
