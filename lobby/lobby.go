// Package lobby holds the running games and the waiting rooms of their
// players.
package lobby

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/game"
	"github.com/lefinal/flier/tick"
	"github.com/lefinal/flier/world"
	"go.uber.org/zap"
)

// DefaultRespawnDelay is the respawn delay in ticks used when none is
// configured.
const DefaultRespawnDelay = 60

// Config for the Lobby.
type Config struct {
	// RespawnDelay is the number of ticks players of continuous games wait
	// before respawning.
	RespawnDelay uint64 `yaml:"respawn_delay"`
	// Location players are teleported to when waiting or when their game ended.
	// Optional.
	Location *world.Location `yaml:"location"`
}

// running is a game in the Lobby.
type running struct {
	game game.Game
	room *WaitingRoom
}

// Lobby owns the running games. It is not safe for concurrent use and must only
// be used from the tick loop.
type Lobby struct {
	logger *zap.Logger
	world  world.World
	config Config
	games  map[string]*running
	// order holds the ids of running games in the order they were added.
	order []string
	// players maps the ids of playing players to their game id.
	players map[uuid.UUID]string
}

var _ game.Lobby = (*Lobby)(nil)

var _ tick.Ticker = (*Lobby)(nil)

// New creates an empty Lobby.
func New(logger *zap.Logger, w world.World, config Config) *Lobby {
	if config.RespawnDelay == 0 {
		config.RespawnDelay = DefaultRespawnDelay
	}
	return &Lobby{
		logger:  logger,
		world:   w,
		config:  config,
		games:   make(map[string]*running),
		order:   make([]string, 0),
		players: make(map[uuid.UUID]string),
	}
}

// AddGame adds a game and creates its WaitingRoom.
func (l *Lobby) AddGame(g game.Game) error {
	if _, ok := l.games[g.ID()]; ok {
		return errors.Error{
			Code:    errors.ErrBadRequest,
			Message: fmt.Sprintf("game '%s' already running", g.ID()),
			Details: errors.Details{"game": g.ID()},
		}
	}
	l.games[g.ID()] = &running{
		game: g,
		room: NewWaitingRoom(l.logger.Named("waiting-room").Named(g.ID()), g, l.config),
	}
	l.order = append(l.order, g.ID())
	l.logger.Info("game added", zap.String("game", g.ID()))
	return nil
}

// Game returns the running game with the given id.
func (l *Lobby) Game(id string) (game.Game, bool) {
	r, ok := l.games[id]
	if !ok {
		return nil, false
	}
	return r.game, true
}

// Games returns all running games in the order they were added.
func (l *Lobby) Games() []game.Game {
	games := make([]game.Game, 0, len(l.order))
	for _, id := range l.order {
		games = append(games, l.games[id].game)
	}
	return games
}

// WaitingRoom returns the WaitingRoom of the running game with the given id.
func (l *Lobby) WaitingRoom(gameID string) (*WaitingRoom, bool) {
	r, ok := l.games[gameID]
	if !ok {
		return nil, false
	}
	return r.room, true
}

// Join adds the player to the game with the given id. If nobody plays a
// rounded game yet, the first round is started.
func (l *Lobby) Join(gameID string, p world.Player) (*game.InGamePlayer, error) {
	r, ok := l.games[gameID]
	if !ok {
		return nil, errors.Error{
			Code:    errors.ErrNotFound,
			Kind:    errors.KindUnknownGame,
			Message: fmt.Sprintf("unknown game '%s'", gameID),
			Details: errors.Details{"game": gameID},
		}
	}
	if current, ok := l.players[p.ID()]; ok {
		return nil, errors.Error{
			Code:    errors.ErrBadRequest,
			Message: fmt.Sprintf("player already plays '%s'", current),
			Details: errors.Details{"game": gameID, "player": p.Name(), "current": current},
		}
	}
	l.players[p.ID()] = gameID
	igp := r.game.AddPlayer(p)
	l.logger.Debug("player joined", zap.String("game", gameID), zap.String("player", p.Name()))
	if r.game.Rounds() && !anyPlaying(r.game) {
		r.room.FinishRound()
	}
	return igp, nil
}

func anyPlaying(g game.Game) bool {
	for _, p := range g.Players() {
		if p.IsPlaying() {
			return true
		}
	}
	return false
}

// Leave removes the player from its game. It returns false if the player does
// not play.
func (l *Lobby) Leave(p world.Player) bool {
	gameID, ok := l.players[p.ID()]
	if !ok {
		return false
	}
	delete(l.players, p.ID())
	if r, ok := l.games[gameID]; ok {
		r.game.RemovePlayer(p)
	}
	l.logger.Debug("player left", zap.String("game", gameID), zap.String("player", p.Name()))
	return true
}

// EndGame removes all players from the game and stops running it.
func (l *Lobby) EndGame(g game.Game) {
	r, ok := l.games[g.ID()]
	if !ok || r.game != g {
		return
	}
	delete(l.games, g.ID())
	for i, id := range l.order {
		if id == g.ID() {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	for _, p := range g.Players() {
		delete(l.players, p.ID())
		g.RemovePlayer(p.Player())
		if l.config.Location != nil {
			l.world.Teleport(p.Player(), *l.config.Location)
		}
	}
	l.logger.Info("game ended", zap.String("game", g.ID()))
}

// Tick ticks all running games.
func (l *Lobby) Tick() {
	ids := make([]string, len(l.order))
	copy(ids, l.order)
	for _, id := range ids {
		if r, ok := l.games[id]; ok {
			r.game.Tick()
		}
	}
}

// Stats returns the number of running games and of players in them.
func (l *Lobby) Stats() (games int, players int) {
	return len(l.games), len(l.players)
}
