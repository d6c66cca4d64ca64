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
	"unicode"
	"unicode/utf8"
)

// TeamDeathMatch is a game where players play in teams.
type TeamDeathMatch struct {
	base
	// teams in configuration order.
	teams []*Team
	// players maps player ids to their team.
	players map[uuid.UUID]*Team
	// queue orders players for equal team admission. The front waits first.
	queue             []*InGamePlayer
	equalTeams        bool
	suicideScore      int
	friendlyKillScore int
	enemyKillScore    int
}

// NewTeamDeathMatch loads a TeamDeathMatch from the given section. The arena
// is required for resolving team spawns.
func NewTeamDeathMatch(host Host, section config.Section, a *arena.Arena) (*TeamDeathMatch, error) {
	b, err := newBase(host, section)
	if err != nil {
		return nil, err
	}
	g := &TeamDeathMatch{
		base:    b,
		teams:   make([]*Team, 0),
		players: make(map[uuid.UUID]*Team),
		queue:   make([]*InGamePlayer, 0),
	}
	g.self = g
	if a == nil {
		return nil, errors.NewLoadingError(errors.KindNoArena, "team games require an arena", nil)
	}
	g.arena = a
	g.equalTeams, err = section.BoolOr("equal_teams", false)
	if err != nil {
		return nil, errors.Wrap(err, "load equal teams", nil)
	}
	g.suicideScore, err = section.IntOr("suicide_score", 0)
	if err != nil {
		return nil, errors.Wrap(err, "load suicide score", nil)
	}
	g.friendlyKillScore, err = section.IntOr("friendly_kill_score", 0)
	if err != nil {
		return nil, errors.Wrap(err, "load friendly kill score", nil)
	}
	g.enemyKillScore, err = section.IntOr("enemy_kill_score", 1)
	if err != nil {
		return nil, errors.Wrap(err, "load enemy kill score", nil)
	}
	teamConfig, _ := section.Section("teams")
	for _, teamID := range teamConfig.Keys() {
		teamSection, ok := teamConfig.Section(teamID)
		if !ok {
			return nil, errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("error in '%s' team", teamID),
				errors.Details{"team": teamID})
		}
		team, err := loadTeam(teamSection, a)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("error in '%s' team", teamID), errors.Details{"team": teamID})
		}
		g.teams = append(g.teams, team)
	}
	if len(g.teams) == 0 {
		return nil, errors.NewLoadingError(errors.KindMissingTeams, "teams must be defined", nil)
	}
	return g, nil
}

// SetArena is not supported after loading because team spawns are resolved
// when loading.
func (g *TeamDeathMatch) SetArena(a *arena.Arena) error {
	if a == g.arena {
		return nil
	}
	return errors.NewLoadingError(errors.KindInvalidValue, "arena of team games cannot be changed",
		errors.Details{"game": g.id})
}

// Tick refreshes the sidebars. Rounds are finished immediately.
func (g *TeamDeathMatch) Tick() {
	g.refreshSidebars()
}

// Teams returns all teams in configuration order.
func (g *TeamDeathMatch) Teams() []*Team {
	teams := make([]*Team, len(g.teams))
	copy(teams, g.teams)
	return teams
}

// Team returns the team of the given player. Players without a team get a new
// neutral team.
func (g *TeamDeathMatch) Team(p *InGamePlayer) *Team {
	if p == nil {
		return neutralTeam()
	}
	if team, ok := g.players[p.ID()]; ok {
		return team
	}
	return neutralTeam()
}

// AddPlayer adds the player to the front of the queue and parks it in the
// waiting room.
func (g *TeamDeathMatch) AddPlayer(p world.Player) *InGamePlayer {
	if data, ok := g.dataMap[p.ID()]; ok {
		return data
	}
	data := g.addPlayer(p)
	g.queue = append([]*InGamePlayer{data}, g.queue...)
	g.moveToWaitingRoom(data)
	return data
}

// RemovePlayer removes the player from the game, its team and the queue.
func (g *TeamDeathMatch) RemovePlayer(p world.Player) {
	data, ok := g.removePlayer(p)
	if !ok {
		return
	}
	g.removeFromQueue(data)
	delete(g.players, p.ID())
	g.updateColors()
}

func (g *TeamDeathMatch) removeFromQueue(p *InGamePlayer) {
	for i, queued := range g.queue {
		if queued == p {
			g.queue = append(g.queue[:i], g.queue[i+1:]...)
			return
		}
	}
}

// ModifyPoints adds the amount to the score of the player's team.
func (g *TeamDeathMatch) ModifyPoints(id uuid.UUID, amount int) bool {
	team, ok := g.players[id]
	if !ok {
		return false
	}
	g.score(team, amount)
	return true
}

// HandleKill scores the kill for the involved teams. In rounded games, the
// round is won by the last team with players alive.
func (g *TeamDeathMatch) HandleKill(killed *InGamePlayer, cause DamageCause) {
	killer := g.kill(killed, cause)
	if g.rounds {
		aliveTeams := make([]*Team, 0)
		for _, team := range g.teams {
			for _, p := range g.Players() {
				if p != killed && g.players[p.ID()] == team && p.IsPlaying() {
					aliveTeams = append(aliveTeams, team)
					break
				}
			}
		}
		if len(aliveTeams) == 1 {
			winningTeam := aliveTeams[0]
			g.score(winningTeam, 1)
			if g.ended {
				return
			}
			for _, p := range g.Players() {
				if g.players[p.ID()] == winningTeam {
					g.moveToWaitingRoom(p)
				}
			}
		}
		g.moveToWaitingRoom(killed)
		// Also for test games with only one team playing.
		if len(aliveTeams) <= 1 {
			g.waitingRoom.FinishRound()
		}
		return
	}
	if killer == nil {
		g.score(g.Team(killed), g.suicideScore)
		if !g.ended {
			// Deaths without a killer skip the waiting room.
			g.HandleRespawn(killed)
		}
		return
	}
	switch g.Attitude(killer, killed) {
	case Friendly:
		g.score(g.Team(killed), g.friendlyKillScore)
	case Hostile:
		g.score(g.Team(killer), g.enemyKillScore)
	}
	if g.ended {
		return
	}
	g.moveToWaitingRoom(killed)
}

// score adds the delta to the team's score and ends the game if the team
// reached the points to win. Neutral teams are not scored.
func (g *TeamDeathMatch) score(team *Team, delta int) {
	if team.IsNeutral() {
		return
	}
	team.score += delta
	g.report(event.TypeScoreChanged, event.ScoreChanged{
		Team:  nulls.NewString(team.id),
		Delta: delta,
		Score: team.score,
	})
	if team.score >= g.pointsToWin {
		g.EndGame()
	}
}

// HandleRespawn teleports the player to the next spawn of its team and raises
// event.PlayerSpawn.
func (g *TeamDeathMatch) HandleRespawn(p *InGamePlayer) {
	g.respawn(p)
	team, ok := g.players[p.ID()]
	if !ok {
		team = g.chooseTeam()
		g.setTeam(p, team)
	}
	loc := team.nextSpawn()
	g.host.World.Teleport(p.Player(), loc)
	spawn := event.PlayerSpawn{
		Game:     g.id,
		Player:   event.PlayerFrom(p.Player()),
		Team:     team.id,
		Location: loc,
	}
	g.host.World.CallEvent(spawn)
	g.report(event.TypePlayerSpawn, spawn)
}

// PlayersForRespawn assigns teams to all players without one. With equal
// teams, players of teams with more members than the smallest team wait in
// queue order and are moved to the back of the queue.
func (g *TeamDeathMatch) PlayersForRespawn(respawning []*InGamePlayer) []*InGamePlayer {
	// Compute teams for all players without them.
	teamPlayers := make(map[*Team]int, len(g.teams))
	for _, p := range g.Players() {
		team, ok := g.players[p.ID()]
		if !ok {
			team = g.chooseTeam()
			g.setTeam(p, team)
		}
		teamPlayers[team]++
	}
	// Return unchanged if unequal teams are allowed.
	if !g.equalTeams {
		return respawning
	}
	// Calculate the team with the least amount of players.
	leastPlayers := -1
	for _, count := range teamPlayers {
		if leastPlayers == -1 || count < leastPlayers {
			leastPlayers = count
		}
	}
	// Calculate how many more players the other teams have.
	overLimits := make(map[*Team]int, len(teamPlayers))
	for team, count := range teamPlayers {
		overLimits[team] = count - leastPlayers
	}
	isRespawning := make(map[*InGamePlayer]struct{}, len(respawning))
	for _, p := range respawning {
		isRespawning[p] = struct{}{}
	}
	// First players in the queue wait.
	allowed := make([]*InGamePlayer, 0, len(respawning))
	queue := make([]*InGamePlayer, len(g.queue))
	copy(queue, g.queue)
	for _, p := range queue {
		if _, ok := isRespawning[p]; !ok {
			continue
		}
		team := g.players[p.ID()]
		if overLimits[team] == 0 {
			allowed = append(allowed, p)
			continue
		}
		overLimits[team]--
		// Move to the back so that the player does not wait next time.
		g.removeFromQueue(p)
		g.queue = append(g.queue, p)
		g.sendMessage(p, "unequal_teams")
	}
	return allowed
}

// chooseTeam returns the team with the least players. Ties are broken by
// configuration order.
func (g *TeamDeathMatch) chooseTeam() *Team {
	counts := make(map[*Team]int, len(g.teams))
	for _, team := range g.players {
		counts[team]++
	}
	var rarest *Team
	for _, team := range g.teams {
		if rarest == nil || counts[team] < counts[rarest] {
			rarest = team
		}
	}
	return rarest
}

// setTeam assigns the player to the team, adds the team lines and shows the
// team name.
func (g *TeamDeathMatch) setTeam(p *InGamePlayer, team *Team) {
	g.players[p.ID()] = team
	p.SetColor(team.color)
	for _, t := range g.teams {
		t := t
		p.AddLines(sidebar.NewTeam(t.color, g.translateName(p, t.name), func() int { return t.score }))
	}
	g.sendTitle(p, team.color.Code()+capitalize(g.translateName(p, team.name)), "")
	g.updateColors()
	g.report(event.TypeTeamAssigned, event.TeamAssigned{
		Player: event.PlayerFrom(p.Player()),
		Team:   team.id,
		Color:  team.color,
	})
	g.logger.Debug("team assigned", zap.String("game", g.id), zap.String("player", p.Name()),
		zap.String("team", team.id))
}

// Attitude is friendly towards players of the same team. Players without a
// team are hostile to everyone.
func (g *TeamDeathMatch) Attitude(a *InGamePlayer, b *InGamePlayer) Attitude {
	if g.Team(a) == g.Team(b) {
		return Friendly
	}
	return Hostile
}

// Colors returns the team colors of all players with a team.
func (g *TeamDeathMatch) Colors() map[string]palette.Color {
	colors := make(map[string]palette.Color)
	for _, p := range g.Players() {
		if team, ok := g.players[p.ID()]; ok {
			colors[p.Name()] = team.color
		}
	}
	return colors
}

func (g *TeamDeathMatch) updateColors() {
	colors := g.Colors()
	for _, p := range g.Players() {
		p.UpdateColors(colors)
	}
}

// Queue returns the players in admission queue order.
func (g *TeamDeathMatch) Queue() []*InGamePlayer {
	queue := make([]*InGamePlayer, len(g.queue))
	copy(queue, g.queue)
	return queue
}

// EndGame shows the winning teams to all players and hands the game over to
// the lobby.
func (g *TeamDeathMatch) EndGame() {
	maxPoints := 0
	for i, team := range g.teams {
		if i == 0 || team.score > maxPoints {
			maxPoints = team.score
		}
	}
	winners := make([]*Team, 0)
	winnerIDs := make([]string, 0)
	for _, team := range g.teams {
		if team.score == maxPoints {
			winners = append(winners, team)
			winnerIDs = append(winnerIDs, team.id)
		}
	}
	for _, p := range g.Players() {
		team, ok := g.players[p.ID()]
		if !ok {
			continue
		}
		word := g.message(p, "lose")
		names := make([]string, 0, len(winners))
		for _, winner := range winners {
			if winner == team {
				word = g.message(p, "win")
			}
			names = append(names, g.translateName(p, winner.name))
		}
		win := g.message(p, "team_win", strings.Join(names, ", "))
		g.sendTitle(p, team.color.Code()+word, win)
		g.sendMessage(p, "game_ends")
		g.host.World.SendMessage(p.Player(), win)
	}
	g.report(event.TypeGameEnded, event.GameEnded{
		Winners: winnerIDs,
		Score:   maxPoints,
	})
	g.endGame()
}

// capitalize returns the text with the first letter in upper case.
func capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}
