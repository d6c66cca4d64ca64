// Package event holds the payloads games report about what happens in a match.

package event

import (
	"github.com/gobuffalo/nulls"
	"github.com/google/uuid"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/world"
)

// Type describes the kind of reported event. It is used as the last topic
// level when publishing.
type Type string

// All event types.
const (
	// TypePlayerJoined for PlayerJoined.
	TypePlayerJoined Type = "player-joined"
	// TypePlayerLeft for PlayerLeft.
	TypePlayerLeft Type = "player-left"
	// TypeKill for Kill.
	TypeKill Type = "kill"
	// TypeScoreChanged for ScoreChanged.
	TypeScoreChanged Type = "score-changed"
	// TypeTeamAssigned for TeamAssigned.
	TypeTeamAssigned Type = "team-assigned"
	// TypePlayerSpawn for PlayerSpawn.
	TypePlayerSpawn Type = "player-spawn"
	// TypeGameEnded for GameEnded.
	TypeGameEnded Type = "game-ended"
	// TypeError for ErrorEventPayload.
	TypeError Type = "error"
	// TypeLog for LogEntry of game loggers.
	TypeLog Type = "log"
)

// Event is a reported event of a game.
type Event struct {
	// Game is the id of the game the event happened in.
	Game string
	// Type of the event.
	Type Type
	// Payload is the JSON-encodable payload.
	Payload interface{}
}

// Player identifies a player in event payloads.
type Player struct {
	// ID is the unique id of the player.
	ID uuid.UUID `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
}

// PlayerFrom creates the Player for the given world.Player.
func PlayerFrom(p world.Player) Player {
	return Player{
		ID:   p.ID(),
		Name: p.Name(),
	}
}

// PlayerJoined is used when a player joins a game.
type PlayerJoined struct {
	Player Player `json:"player"`
}

// PlayerLeft is used when a player leaves a game.
type PlayerLeft struct {
	Player Player `json:"player"`
}

// Kill is used when a player died in a game.
type Kill struct {
	// Killed is the player that died.
	Killed Player `json:"killed"`
	// KillerID is the id of the player that caused the death. It is not set
	// for deaths without an attacker.
	KillerID nulls.String `json:"killer_id"`
	// KillerName is the display name of the killer.
	KillerName nulls.String `json:"killer_name"`
	// Cause is the damage cause reported by the host.
	Cause string `json:"cause"`
}

// ScoreChanged is used when the score of a player or team changed.
type ScoreChanged struct {
	// Player is the id of the player whose score changed in solo games.
	Player nulls.String `json:"player"`
	// Team is the name of the team whose score changed in team games.
	Team nulls.String `json:"team"`
	// Delta is the applied change.
	Delta int `json:"delta"`
	// Score is the new score.
	Score int `json:"score"`
}

// TeamAssigned is used when a player is assigned to a team.
type TeamAssigned struct {
	Player Player `json:"player"`
	// Team is the id of the team.
	Team string `json:"team"`
	// Color is the team color.
	Color palette.Color `json:"color"`
}

// PlayerSpawn is raised on the host event bus and reported when a player
// spawned in a team game.
type PlayerSpawn struct {
	// Game is the id of the game.
	Game   string `json:"game"`
	Player Player `json:"player"`
	// Team is the id of the player's team.
	Team string `json:"team"`
	// Location is the spawn location.
	Location world.Location `json:"location"`
}

// GameEnded is used when a game ended.
type GameEnded struct {
	// Winners holds the names of all winning players or teams.
	Winners []string `json:"winners"`
	// Score is the winning score.
	Score int `json:"score"`
}

// ErrorEventPayload is used for errors that need to be reported, for example
// games that failed to load.
type ErrorEventPayload struct {
	// Code is the error code from errors.Error.
	Code string `json:"code"`
	// Err is the error from errors.Error.
	Err string `json:"err"`
	// Message is the message from errors.Error.
	Message string `json:"message"`
	// Details are error details from errors.Error.
	Details map[string]interface{} `json:"details"`
}

// ErrorEventPayloadFromError creates a ErrorEventPayload from the given error.
func ErrorEventPayloadFromError(err error) ErrorEventPayload {
	e, _ := errors.Cast(err)
	if !errors.BlameUser(err) {
		return ErrorEventPayload{
			Code:    string(e.Code),
			Message: "internal server error",
		}
	}
	return ErrorEventPayload{
		Code:    string(e.Code),
		Err:     e.Error(),
		Message: e.Message,
		Details: e.Details,
	}
}
