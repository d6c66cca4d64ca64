// Package game holds the deathmatch and team deathmatch games.
package game

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/lefinal/flier/arena"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/event"
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/tick"
	"github.com/lefinal/flier/world"
	"go.uber.org/zap"
)

// Attitude is the relation between two players.
type Attitude int

const (
	// Friendly players are on the same side.
	Friendly Attitude = iota
	// Hostile players are enemies.
	Hostile
	// Neutral players are neither.
	Neutral
)

func (a Attitude) String() string {
	switch a {
	case Friendly:
		return "friendly"
	case Hostile:
		return "hostile"
	case Neutral:
		return "neutral"
	}
	return "unknown"
}

// DamageCause is the cause of a death as reported by the host.
type DamageCause string

// Damage causes.
const (
	CauseEntityAttack DamageCause = "ENTITY_ATTACK"
	CauseProjectile   DamageCause = "PROJECTILE"
	CauseExplosion    DamageCause = "ENTITY_EXPLOSION"
	CauseFall         DamageCause = "FALL"
	CauseFlyIntoWall  DamageCause = "FLY_INTO_WALL"
	CauseVoid         DamageCause = "VOID"
	CauseCustom       DamageCause = "CUSTOM"
)

// Kind is the type of game as configured with the type key.
type Kind string

const (
	// KindDeathMatch for DeathMatch.
	KindDeathMatch Kind = "deathmatch"
	// KindTeamDeathMatch for TeamDeathMatch.
	KindTeamDeathMatch Kind = "team_deathmatch"
)

// Title timings in ticks.
const (
	titleFadeIn  = 10
	titleStay    = 70
	titleFadeOut = 20
)

// Lang provides localized messages.
type Lang interface {
	Message(p world.Player, key string, args ...string) string
}

// Feed receives reported events. Reporting must not block.
type Feed interface {
	Report(e event.Event)
}

// Lobby owns running games.
type Lobby interface {
	// EndGame tears down the given game.
	EndGame(g Game)
}

// WaitingRoom parks players between their death and the next respawn.
type WaitingRoom interface {
	// Move the player to the waiting room.
	Move(p *InGamePlayer)
	// Remove the player from the waiting room if present.
	Remove(p *InGamePlayer)
	// FinishRound respawns parked players admitted by the game.
	FinishRound()
}

// Host provides the collaborators of a game.
type Host struct {
	Logger    *zap.Logger
	World     world.World
	Scheduler *tick.Scheduler
	Lang      Lang
	Feed      Feed
	Lobby     Lobby
}

// Game is a match.
type Game interface {
	// ID is the unique id of the game.
	ID() string
	// Host returns the collaborators of the game.
	Host() Host
	// Rounds describes whether the game is played in rounds.
	Rounds() bool
	// Arena the game is played in. It may be nil.
	Arena() *arena.Arena
	// SetArena sets the arena and resolves spawn locations.
	SetArena(a *arena.Arena) error
	// SetWaitingRoom sets the waiting room.
	SetWaitingRoom(w WaitingRoom)
	// Tick is called every host tick.
	Tick()
	// AddPlayer adds a player to the game and moves it to the waiting room.
	AddPlayer(p world.Player) *InGamePlayer
	// RemovePlayer removes a player from the game.
	RemovePlayer(p world.Player)
	// Player returns the InGamePlayer with the given id.
	Player(id uuid.UUID) (*InGamePlayer, bool)
	// Players returns all players in join order.
	Players() []*InGamePlayer
	// HandleDamage records the attacker of the target.
	HandleDamage(target *InGamePlayer, damager Damager, source *InGamePlayer)
	// HandleKill handles the death of the given player.
	HandleKill(killed *InGamePlayer, cause DamageCause)
	// HandleRespawn spawns the given player in the arena.
	HandleRespawn(p *InGamePlayer)
	// PlayersForRespawn returns the players of the given ones that are
	// allowed to respawn.
	PlayersForRespawn(respawning []*InGamePlayer) []*InGamePlayer
	// Attitude of a towards b.
	Attitude(a *InGamePlayer, b *InGamePlayer) Attitude
	// ModifyPoints adds the amount to the score of the player or its team.
	// It returns false if there is no score to modify.
	ModifyPoints(id uuid.UUID, amount int) bool
	// Colors returns the colors of all players by name.
	Colors() map[string]palette.Color
	// Track registers a task that is cancelled when the game ends.
	Track(h *tick.Handle)
	// EndGame ends the game, shows the winners and hands over to the lobby.
	EndGame()
}

// New loads a game from its configuration section. The type key selects the
// kind of game. The arena may be nil for games that allow setting it later.
func New(host Host, section config.Section, a *arena.Arena) (Game, error) {
	kind, err := section.String("type")
	if err != nil {
		return nil, errors.Wrap(err, "load type", errors.Details{"game": section.Name()})
	}
	var g Game
	switch Kind(kind) {
	case KindDeathMatch:
		g, err = NewDeathMatch(host, section, a)
	case KindTeamDeathMatch:
		g, err = NewTeamDeathMatch(host, section, a)
	default:
		return nil, errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("unknown game type '%s'", kind),
			errors.Details{"game": section.Name()})
	}
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("error in '%s' game", section.Name()),
			errors.Details{"game": section.Name()})
	}
	return g, nil
}
