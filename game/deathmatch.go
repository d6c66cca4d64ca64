package game

import (
	"fmt"
	"github.com/gobuffalo/nulls"
	"github.com/google/uuid"
	"github.com/lefinal/flier/arena"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/event"
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/sidebar"
	"github.com/lefinal/flier/world"
	"go.uber.org/zap"
	"strings"
)

// DeathMatch is a game where every player plays for itself.
type DeathMatch struct {
	base
	scores map[uuid.UUID]int
	// colors holds the assigned colors by player name.
	colors       map[string]palette.Color
	spawnNames   []string
	locations    []world.Location
	spawnCounter int
	usedColors   []palette.Color
	colorCounter int
	suicideScore int
	killScore    int
	// roundFinished is set when the round ended and the waiting room is told
	// to finish it on the next tick.
	roundFinished bool
}

// NewDeathMatch loads a DeathMatch from the given section. The arena is
// optional and can be set later with SetArena.
func NewDeathMatch(host Host, section config.Section, a *arena.Arena) (*DeathMatch, error) {
	b, err := newBase(host, section)
	if err != nil {
		return nil, err
	}
	g := &DeathMatch{
		base:   b,
		scores: make(map[uuid.UUID]int),
		colors: make(map[string]palette.Color),
	}
	g.self = g
	g.suicideScore, err = section.IntOr("suicide_score", 0)
	if err != nil {
		return nil, errors.Wrap(err, "load suicide score", nil)
	}
	g.killScore, err = section.IntOr("kill_score", 1)
	if err != nil {
		return nil, errors.Wrap(err, "load kill score", nil)
	}
	g.spawnNames, err = section.StringList("spawns")
	if err != nil {
		return nil, errors.Wrap(err, "load spawns", nil)
	}
	colorNames, err := section.StringList("colors")
	if err != nil {
		return nil, errors.Wrap(err, "load colors", nil)
	}
	if len(colorNames) > 0 {
		g.usedColors = make([]palette.Color, 0, len(colorNames))
		for _, name := range colorNames {
			color, err := palette.Parse(name)
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("color '%s' does not exist", name), nil)
			}
			g.usedColors = append(g.usedColors, color)
		}
	} else {
		g.usedColors = palette.All()
	}
	if len(g.spawnNames) == 0 {
		return nil, errors.NewLoadingError(errors.KindEmptySpawnList, "spawn list cannot be empty", nil)
	}
	if a != nil {
		err = g.SetArena(a)
		if err != nil {
			return nil, errors.Wrap(err, "set arena", nil)
		}
	}
	return g, nil
}

// SetArena sets the arena and resolves the spawn locations.
func (g *DeathMatch) SetArena(a *arena.Arena) error {
	locations := make([]world.Location, 0, len(g.spawnNames))
	for _, name := range g.spawnNames {
		loc, err := a.Location(name)
		if err != nil {
			return errors.Wrap(err, "resolve spawn", errors.Details{"spawn": name})
		}
		locations = append(locations, loc)
	}
	g.arena = a
	g.locations = locations
	return nil
}

// Tick finishes the round in the waiting room if requested and refreshes the
// sidebars.
func (g *DeathMatch) Tick() {
	if g.roundFinished {
		g.roundFinished = false
		g.waitingRoom.FinishRound()
	}
	g.refreshSidebars()
}

// AddPlayer adds the player with a zero score and parks it in the waiting
// room.
func (g *DeathMatch) AddPlayer(p world.Player) *InGamePlayer {
	if data, ok := g.dataMap[p.ID()]; ok {
		return data
	}
	data := g.addPlayer(p)
	g.scores[p.ID()] = 0
	g.moveToWaitingRoom(data)
	return data
}

// RemovePlayer removes the player with its color and score.
func (g *DeathMatch) RemovePlayer(p world.Player) {
	if _, ok := g.removePlayer(p); !ok {
		return
	}
	delete(g.colors, p.Name())
	delete(g.scores, p.ID())
	g.updateColors()
}

// HandleKill scores the kill. In rounded games, the round is won by the last
// player alive.
func (g *DeathMatch) HandleKill(killed *InGamePlayer, cause DamageCause) {
	killer := g.kill(killed, cause)
	if g.rounds {
		alive := make([]*InGamePlayer, 0)
		for _, p := range g.Players() {
			if p.IsPlaying() {
				alive = append(alive, p)
			}
		}
		if len(alive) == 1 {
			g.score(alive[0], 1)
			if g.ended {
				return
			}
			for _, p := range alive {
				g.moveToWaitingRoom(p)
			}
		}
		g.moveToWaitingRoom(killed)
		// Also for test games with only one player.
		if len(alive) <= 1 {
			g.roundFinished = true
		}
		return
	}
	if killer == nil || killer == killed {
		g.score(killed, g.suicideScore)
	} else {
		g.score(killer, g.killScore)
	}
	if g.ended {
		return
	}
	g.moveToWaitingRoom(killed)
}

// score adds the delta to the player's score and ends the game if the player
// reached the points to win.
func (g *DeathMatch) score(p *InGamePlayer, delta int) {
	s := g.scores[p.ID()] + delta
	g.scores[p.ID()] = s
	g.report(event.TypeScoreChanged, event.ScoreChanged{
		Player: nulls.NewString(p.ID().String()),
		Delta:  delta,
		Score:  s,
	})
	if s >= g.pointsToWin {
		g.EndGame()
	}
}

// ModifyPoints adds the amount to the player's score.
func (g *DeathMatch) ModifyPoints(id uuid.UUID, amount int) bool {
	p, ok := g.dataMap[id]
	if !ok {
		return false
	}
	g.score(p, amount)
	return true
}

// HandleRespawn assigns a color on the first spawn and teleports the player
// to the next spawn.
func (g *DeathMatch) HandleRespawn(p *InGamePlayer) {
	g.respawn(p)
	if _, ok := g.colors[p.Name()]; !ok {
		// Player starting game.
		color := g.usedColors[g.colorCounter%len(g.usedColors)]
		g.colorCounter++
		g.colors[p.Name()] = color
		p.SetColor(color)
		if _, ok := g.scores[p.ID()]; !ok {
			g.scores[p.ID()] = 0
		}
		id := p.ID()
		p.AddLines(
			sidebar.NewScore(g.message(p, "your_score"), func() int { return g.scores[id] }),
			sidebar.NewBestScore(g.message(p, "best_score"), g.bestScore))
		g.updateColors()
	}
	if len(g.locations) == 0 {
		g.logger.Warn("no spawn locations because of missing arena",
			zap.String("game", g.id), zap.String("player", p.Name()))
		return
	}
	loc := g.locations[g.spawnCounter%len(g.locations)]
	g.spawnCounter++
	g.host.World.Teleport(p.Player(), loc)
	g.report(event.TypePlayerSpawn, event.PlayerSpawn{
		Game:     g.id,
		Player:   event.PlayerFrom(p.Player()),
		Location: loc,
	})
}

// PlayersForRespawn allows all players to respawn.
func (g *DeathMatch) PlayersForRespawn(respawning []*InGamePlayer) []*InGamePlayer {
	return respawning
}

// Attitude is friendly only towards oneself.
func (g *DeathMatch) Attitude(a *InGamePlayer, b *InGamePlayer) Attitude {
	if a == b {
		return Friendly
	}
	return Hostile
}

// Colors returns the colors of all players that spawned at least once.
func (g *DeathMatch) Colors() map[string]palette.Color {
	colors := make(map[string]palette.Color, len(g.colors))
	for name, color := range g.colors {
		colors[name] = color
	}
	return colors
}

func (g *DeathMatch) updateColors() {
	colors := g.Colors()
	for _, p := range g.Players() {
		p.UpdateColors(colors)
	}
}

// Score returns the score of the player.
func (g *DeathMatch) Score(id uuid.UUID) (int, bool) {
	s, ok := g.scores[id]
	return s, ok
}

func (g *DeathMatch) bestScore() int {
	best := 0
	first := true
	for _, s := range g.scores {
		if first || s > best {
			best = s
			first = false
		}
	}
	return best
}

// EndGame shows the winners to all players and hands the game over to the
// lobby.
func (g *DeathMatch) EndGame() {
	maxPoints := g.bestScore()
	winners := make([]*InGamePlayer, 0)
	names := make([]string, 0)
	for _, p := range g.Players() {
		if s, ok := g.scores[p.ID()]; ok && s == maxPoints {
			winners = append(winners, p)
			names = append(names, p.Name())
		}
	}
	winnerNames := strings.Join(names, ", ")
	for _, p := range g.Players() {
		word := g.message(p, "lose")
		for _, winner := range winners {
			if winner == p {
				word = g.message(p, "win")
				break
			}
		}
		win := g.message(p, "player_win", winnerNames)
		g.sendTitle(p, p.Color().Code()+word, win)
		g.sendMessage(p, "game_ends")
		g.host.World.SendMessage(p.Player(), win)
	}
	g.report(event.TypeGameEnded, event.GameEnded{
		Winners: names,
		Score:   maxPoints,
	})
	g.endGame()
}
