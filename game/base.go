package game

import (
	"github.com/gobuffalo/nulls"
	"github.com/google/uuid"
	"github.com/lefinal/flier/arena"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/event"
	"github.com/lefinal/flier/sidebar"
	"github.com/lefinal/flier/tick"
	"github.com/lefinal/flier/world"
	"go.uber.org/zap"
	"strings"
)

// base holds what all games have in common. Games embed it and set self to
// themselves.
type base struct {
	id     string
	host   Host
	logger *zap.Logger
	// self is the embedding Game.
	self        Game
	rounds      bool
	pointsToWin int
	arena       *arena.Arena
	waitingRoom WaitingRoom
	// dataMap holds all players by their id.
	dataMap map[uuid.UUID]*InGamePlayer
	// order holds the player ids in join order.
	order []uuid.UUID
	// tasks holds tracked tasks that are cancelled when the game ends.
	tasks []*tick.Handle
	// ended is set when EndGame is called.
	ended bool
}

func newBase(host Host, section config.Section) (base, error) {
	rounds, err := section.BoolOr("rounds", false)
	if err != nil {
		return base{}, errors.Wrap(err, "load rounds", nil)
	}
	pointsToWin, err := section.PositiveInt("points_to_win")
	if err != nil {
		return base{}, errors.Wrap(err, "load points to win", nil)
	}
	return base{
		id:          section.Name(),
		host:        host,
		logger:      host.Logger.Named(section.Name()),
		rounds:      rounds,
		pointsToWin: pointsToWin,
		waitingRoom: nopWaitingRoom{},
		dataMap:     make(map[uuid.UUID]*InGamePlayer),
		order:       make([]uuid.UUID, 0),
		tasks:       make([]*tick.Handle, 0),
	}, nil
}

func (b *base) ID() string {
	return b.id
}

func (b *base) Host() Host {
	return b.host
}

func (b *base) Rounds() bool {
	return b.rounds
}

func (b *base) Arena() *arena.Arena {
	return b.arena
}

func (b *base) SetWaitingRoom(w WaitingRoom) {
	b.waitingRoom = w
}

func (b *base) Player(id uuid.UUID) (*InGamePlayer, bool) {
	p, ok := b.dataMap[id]
	return p, ok
}

func (b *base) Players() []*InGamePlayer {
	players := make([]*InGamePlayer, 0, len(b.order))
	for _, id := range b.order {
		players = append(players, b.dataMap[id])
	}
	return players
}

// addPlayer creates the InGamePlayer with the default sidebar lines.
func (b *base) addPlayer(p world.Player) *InGamePlayer {
	if data, ok := b.dataMap[p.ID()]; ok {
		return data
	}
	data := newInGamePlayer(p, b.self)
	data.AddLines(sidebar.NewHealth(data.wings), sidebar.NewSpeed(p.Velocity))
	b.dataMap[p.ID()] = data
	b.order = append(b.order, p.ID())
	b.report(event.TypePlayerJoined, event.PlayerJoined{Player: event.PlayerFrom(p)})
	b.logger.Debug("player joined", zap.String("game", b.id), zap.String("player", p.Name()))
	return data
}

// removePlayer removes the player from the game and the waiting room. It
// returns false if the player did not participate.
func (b *base) removePlayer(p world.Player) (*InGamePlayer, bool) {
	data, ok := b.dataMap[p.ID()]
	if !ok {
		return nil, false
	}
	b.waitingRoom.Remove(data)
	delete(b.dataMap, p.ID())
	for i, id := range b.order {
		if id == p.ID() {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.report(event.TypePlayerLeft, event.PlayerLeft{Player: event.PlayerFrom(p)})
	b.logger.Debug("player left", zap.String("game", b.id), zap.String("player", p.Name()))
	return data, true
}

func (b *base) HandleDamage(target *InGamePlayer, damager Damager, source *InGamePlayer) {
	target.SetAttacker(&Attacker{
		Creator: source,
		Damager: damager,
	})
}

// kill marks the player as not playing and returns the player responsible for
// the death. The killer is nil if there is none.
func (b *base) kill(killed *InGamePlayer, cause DamageCause) *InGamePlayer {
	killed.SetPlaying(false)
	var killer *InGamePlayer
	if attacker := killed.Attacker(); attacker != nil {
		killer = attacker.Creator
	}
	payload := event.Kill{
		Killed: event.PlayerFrom(killed.Player()),
		Cause:  string(cause),
	}
	fields := []zap.Field{zap.String("game", b.id), zap.String("killed", killed.Name()), zap.String("cause", string(cause))}
	if killer != nil {
		payload.KillerID = nulls.NewString(killer.ID().String())
		payload.KillerName = nulls.NewString(killer.Name())
		fields = append(fields, zap.String("killer", killer.Name()))
	}
	b.report(event.TypeKill, payload)
	b.logger.Debug("player killed", fields...)
	return killer
}

// respawn marks the player as playing again.
func (b *base) respawn(p *InGamePlayer) {
	p.SetPlaying(true)
	p.SetAttacker(nil)
	b.logger.Debug("player respawned", zap.String("game", b.id), zap.String("player", p.Name()))
}

// moveToWaitingRoom stops the player from playing and parks it.
func (b *base) moveToWaitingRoom(p *InGamePlayer) {
	p.SetPlaying(false)
	b.waitingRoom.Move(p)
}

func (b *base) Track(h *tick.Handle) {
	alive := b.tasks[:0]
	for _, task := range b.tasks {
		if !task.Cancelled() {
			alive = append(alive, task)
		}
	}
	b.tasks = append(alive, h)
}

// endGame cancels all tracked tasks and hands the game over to the lobby.
func (b *base) endGame() {
	b.ended = true
	for _, task := range b.tasks {
		task.Cancel()
	}
	b.tasks = b.tasks[:0]
	b.logger.Debug("game ended", zap.String("game", b.id))
	if b.host.Lobby != nil {
		b.host.Lobby.EndGame(b.self)
	}
}

// message returns the localized message for the player.
func (b *base) message(p *InGamePlayer, key string, args ...string) string {
	return b.host.Lang.Message(p.Player(), key, args...)
}

// sendMessage sends the localized message to the player.
func (b *base) sendMessage(p *InGamePlayer, key string, args ...string) {
	b.host.World.SendMessage(p.Player(), b.message(p, key, args...))
}

// sendTitle sends a title with the default timings.
func (b *base) sendTitle(p *InGamePlayer, title string, subtitle string) {
	b.host.World.SendTitle(p.Player(), title, subtitle, titleFadeIn, titleStay, titleFadeOut)
}

// report reports the event to the feed if one is set.
func (b *base) report(t event.Type, payload interface{}) {
	if b.host.Feed == nil {
		return
	}
	b.host.Feed.Report(event.Event{
		Game:    b.id,
		Type:    t,
		Payload: payload,
	})
}

// translateName translates names that start with $ as message keys.
func (b *base) translateName(p *InGamePlayer, name string) string {
	if strings.HasPrefix(name, "$") {
		return b.message(p, name[1:])
	}
	return name
}

// refreshSidebars pushes the sidebars of all players that changed since the
// last refresh.
func (b *base) refreshSidebars() {
	for _, p := range b.Players() {
		if lines, changed := p.refreshSidebar(); changed {
			b.host.World.SetSidebar(p.Player(), lines)
		}
	}
}

// nopWaitingRoom is used until a waiting room is set.
type nopWaitingRoom struct{}

func (nopWaitingRoom) Move(_ *InGamePlayer) {}

func (nopWaitingRoom) Remove(_ *InGamePlayer) {}

func (nopWaitingRoom) FinishRound() {}
