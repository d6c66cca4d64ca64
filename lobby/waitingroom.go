package lobby

import (
	"github.com/lefinal/flier/game"
	"github.com/lefinal/flier/tick"
	"github.com/lefinal/flier/world"
	"go.uber.org/zap"
)

// WaitingRoom parks the players of a game between their death and the next
// respawn. Players of rounded games respawn when the round finishes. Players of
// continuous games respawn after the respawn delay.
type WaitingRoom struct {
	logger *zap.Logger
	game   game.Game
	world  world.World
	// scheduler is used for delayed respawns in continuous games.
	scheduler *tick.Scheduler
	// respawnDelay is the number of ticks parked players of continuous games
	// wait.
	respawnDelay uint64
	// location players are teleported to when parked. Optional.
	location *world.Location
	// parked players in the order they were moved.
	parked []*game.InGamePlayer
}

var _ game.WaitingRoom = (*WaitingRoom)(nil)

// NewWaitingRoom creates a WaitingRoom for the given game and sets it as the
// game's waiting room.
func NewWaitingRoom(logger *zap.Logger, g game.Game, config Config) *WaitingRoom {
	host := g.Host()
	r := &WaitingRoom{
		logger:       logger,
		game:         g,
		world:        host.World,
		scheduler:    host.Scheduler,
		respawnDelay: config.RespawnDelay,
		location:     config.Location,
		parked:       make([]*game.InGamePlayer, 0),
	}
	g.SetWaitingRoom(r)
	return r
}

// IsParked checks whether the player waits in the room.
func (r *WaitingRoom) IsParked(p *game.InGamePlayer) bool {
	return r.index(p) != -1
}

// Parked returns all parked players in the order they were moved.
func (r *WaitingRoom) Parked() []*game.InGamePlayer {
	parked := make([]*game.InGamePlayer, len(r.parked))
	copy(parked, r.parked)
	return parked
}

func (r *WaitingRoom) index(p *game.InGamePlayer) int {
	for i, parked := range r.parked {
		if parked == p {
			return i
		}
	}
	return -1
}

// Move parks the player. For continuous games the respawn is scheduled.
func (r *WaitingRoom) Move(p *game.InGamePlayer) {
	if r.IsParked(p) {
		return
	}
	r.parked = append(r.parked, p)
	if r.location != nil {
		r.world.Teleport(p.Player(), *r.location)
	}
	r.logger.Debug("player parked", zap.String("game", r.game.ID()), zap.String("player", p.Name()))
	if r.game.Rounds() {
		return
	}
	r.game.Track(r.scheduler.Schedule(r.respawnDelay, r.respawnDelay, func(h *tick.Handle) {
		if !r.IsParked(p) {
			h.Cancel()
			return
		}
		if len(r.respawn([]*game.InGamePlayer{p})) > 0 {
			h.Cancel()
		}
		// Not admitted, so try again after the next delay.
	}))
}

func (r *WaitingRoom) Remove(p *game.InGamePlayer) {
	i := r.index(p)
	if i == -1 {
		return
	}
	r.parked = append(r.parked[:i], r.parked[i+1:]...)
}

// FinishRound respawns all parked players the game admits.
func (r *WaitingRoom) FinishRound() {
	admitted := r.respawn(r.Parked())
	r.logger.Debug("round finished", zap.String("game", r.game.ID()),
		zap.Int("respawned", len(admitted)), zap.Int("waiting", len(r.parked)))
}

// respawn asks the game which of the given players may respawn and respawns
// them. It returns the respawned players.
func (r *WaitingRoom) respawn(candidates []*game.InGamePlayer) []*game.InGamePlayer {
	admitted := r.game.PlayersForRespawn(candidates)
	for _, p := range admitted {
		r.Remove(p)
		r.game.HandleRespawn(p)
	}
	return admitted
}
