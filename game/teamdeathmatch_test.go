package game

import (
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/event"
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"testing"
)

const teamDeathMatchDoc = `
tdm:
  type: team_deathmatch
  points_to_win: 3
  friendly_kill_score: 0
  enemy_kill_score: 1
  suicide_score: -1
  teams:
    red:
      color: red
      name: $red
      spawns: red
    blue:
      color: blue
      name: "&9Blue"
      spawns: blue
tdm-suicide-end:
  type: team_deathmatch
  points_to_win: 1
  suicide_score: 1
  teams:
    red: {color: red, name: Red, spawns: red}
    blue: {color: blue, name: Blue, spawns: blue}
tdm-equal:
  type: team_deathmatch
  points_to_win: 3
  equal_teams: true
  teams:
    red: {color: red, name: Red, spawns: red}
    blue: {color: blue, name: Blue, spawns: blue}
tdm-rounds:
  type: team_deathmatch
  points_to_win: 3
  rounds: true
  teams:
    red: {color: red, name: Red, spawns: red}
    blue: {color: blue, name: Blue, spawns: blue}
tdm-no-teams:
  type: team_deathmatch
  points_to_win: 3
tdm-bad-color:
  type: team_deathmatch
  points_to_win: 3
  teams:
    red: {color: reddish, name: Red, spawns: red}
tdm-bad-spawns:
  type: team_deathmatch
  points_to_win: 3
  teams:
    red: {color: red, name: Red, spawns: green}
tdm-empty-spawns:
  type: team_deathmatch
  points_to_win: 3
  teams:
    red: {color: red, name: Red, spawns: empty}
tdm-team-missing-name:
  type: team_deathmatch
  points_to_win: 3
  teams:
    red: {color: red, spawns: red}
`

func TestNewTeamDeathMatchErrors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		kind errors.Kind
		team string
	}{
		{name: "no teams", id: "tdm-no-teams", kind: errors.KindMissingTeams},
		{name: "unknown color", id: "tdm-bad-color", kind: errors.KindUnknownColor, team: "red"},
		{name: "unknown spawns", id: "tdm-bad-spawns", kind: errors.KindUnknownLocation, team: "red"},
		{name: "empty spawns", id: "tdm-empty-spawns", kind: errors.KindEmptySpawnList, team: "red"},
		{name: "missing name", id: "tdm-team-missing-name", kind: errors.KindMissingValue, team: "red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			_, err := NewTeamDeathMatch(env.host, gameSection(t, teamDeathMatchDoc, tt.id), testArena())
			require.Error(t, err, "should fail")
			e, _ := errors.Cast(err)
			assert.Equal(t, errors.ErrLoading, e.Code, "should be loading error")
			assert.Equal(t, tt.kind, e.Kind, "should have correct kind")
			if tt.team != "" {
				assert.Equal(t, tt.team, e.Details["team"], "should name team")
			}
		})
	}
}

func TestNewTeamDeathMatchWithoutArena(t *testing.T) {
	env := newTestEnv()
	_, err := NewTeamDeathMatch(env.host, gameSection(t, teamDeathMatchDoc, "tdm"), nil)
	require.Error(t, err, "should fail")
	e, _ := errors.Cast(err)
	assert.Equal(t, errors.KindNoArena, e.Kind)
}

// teamDeathMatchSuite tests TeamDeathMatch.
type teamDeathMatchSuite struct {
	suite.Suite
	env  *testEnv
	game *TeamDeathMatch
	red  *Team
	blue *Team
}

func (suite *teamDeathMatchSuite) load(id string) {
	var err error
	suite.env = newTestEnv()
	suite.game, err = NewTeamDeathMatch(suite.env.host, gameSection(suite.T(), teamDeathMatchDoc, id), testArena())
	suite.Require().NoError(err, "load should not fail")
	suite.game.SetWaitingRoom(suite.env.waitingRoom)
	teams := suite.game.Teams()
	suite.Require().Len(teams, 2)
	suite.red, suite.blue = teams[0], teams[1]
}

func (suite *teamDeathMatchSuite) SetupTest() {
	suite.load("tdm")
}

// join adds a player, assigns the team and respawns the player.
func (suite *teamDeathMatchSuite) join(name string, team *Team) *InGamePlayer {
	p := suite.game.AddPlayer(sim.NewPlayer(name))
	suite.game.setTeam(p, team)
	suite.game.HandleRespawn(p)
	return p
}

func (suite *teamDeathMatchSuite) killBy(killer *InGamePlayer, killed *InGamePlayer) {
	if killer != nil {
		suite.game.HandleDamage(killed, nil, killer)
	}
	suite.game.HandleKill(killed, CauseProjectile)
}

func (suite *teamDeathMatchSuite) TestTeamsKeepConfigOrder() {
	suite.Equal("red", suite.red.ID())
	suite.Equal("blue", suite.blue.ID())
	suite.Equal("§9Blue", suite.blue.Name(), "should translate color codes")
	suite.Equal(palette.Blue, suite.blue.Color())
}

func (suite *teamDeathMatchSuite) TestFriendlyFireDiscount() {
	a := suite.join("A", suite.red)
	a2 := suite.join("A2", suite.red)
	b := suite.join("B", suite.blue)
	suite.killBy(a, a2)
	suite.Equal(0, suite.red.Score(), "friendly kill should not score")
	suite.killBy(a, b)
	suite.Equal(1, suite.red.Score(), "enemy kill should score")
	suite.Equal(0, suite.blue.Score())
	suite.False(b.IsPlaying())
	suite.env.waitingRoom.AssertCalled(suite.T(), "Move", b)
}

func (suite *teamDeathMatchSuite) TestSuicide() {
	a := suite.join("A", suite.red)
	suite.env.waitingRoom.Calls = nil
	suite.killBy(nil, a)
	suite.Equal(-1, suite.red.Score())
	suite.env.waitingRoom.AssertNotCalled(suite.T(), "Move", a)
	suite.True(a.IsPlaying(), "should respawn right away")
}

func (suite *teamDeathMatchSuite) TestSuicideEndingGame() {
	suite.load("tdm-suicide-end")
	a := suite.join("A", suite.red)
	suite.env.waitingRoom.Calls = nil
	suite.killBy(nil, a)
	suite.env.waitingRoom.AssertNotCalled(suite.T(), "Move", a)
	suite.False(a.IsPlaying(), "should not respawn after game end")
}

func (suite *teamDeathMatchSuite) TestKillByUnassignedPlayer() {
	a := suite.join("A", suite.red)
	lonely := suite.game.AddPlayer(sim.NewPlayer("Lonely"))
	suite.killBy(lonely, a)
	suite.Equal(0, suite.red.Score())
	suite.Equal(0, suite.blue.Score())
}

func (suite *teamDeathMatchSuite) TestThresholdEndsGame() {
	a := suite.join("A", suite.red)
	b := suite.join("B", suite.blue)
	for i := 0; i < 3; i++ {
		suite.killBy(a, b)
		suite.game.HandleRespawn(b)
	}
	suite.env.lobby.AssertNumberOfCalls(suite.T(), "EndGame", 1)
	aTitles := suite.env.world.TitlesFor(a.Player())
	suite.Require().NotEmpty(aTitles)
	suite.Equal(palette.Red.Code()+"Win", aTitles[len(aTitles)-1].Title)
	suite.Equal("red team won", aTitles[len(aTitles)-1].Subtitle)
	bTitles := suite.env.world.TitlesFor(b.Player())
	suite.Equal(palette.Blue.Code()+"Lose", bTitles[len(bTitles)-1].Title)
	ended := suite.env.feed.ofType(event.TypeGameEnded)
	suite.Require().Len(ended, 1)
	suite.Equal(event.GameEnded{Winners: []string{"red"}, Score: 3}, ended[0].Payload)
}

func (suite *teamDeathMatchSuite) TestRoundedLastTeamStanding() {
	suite.load("tdm-rounds")
	r1 := suite.join("R1", suite.red)
	r2 := suite.join("R2", suite.red)
	b1 := suite.join("B1", suite.blue)
	suite.killBy(r1, b1)
	suite.Equal(1, suite.red.Score())
	suite.False(r1.IsPlaying(), "winners should be moved to waiting room")
	suite.False(r2.IsPlaying(), "winners should be moved to waiting room")
	suite.env.waitingRoom.AssertCalled(suite.T(), "Move", r1)
	suite.env.waitingRoom.AssertCalled(suite.T(), "Move", r2)
	suite.env.waitingRoom.AssertCalled(suite.T(), "Move", b1)
	suite.env.waitingRoom.AssertNumberOfCalls(suite.T(), "FinishRound", 1)
}

func (suite *teamDeathMatchSuite) TestRoundedTeamsStillAlive() {
	suite.load("tdm-rounds")
	r1 := suite.join("R1", suite.red)
	b1 := suite.join("B1", suite.blue)
	suite.join("B2", suite.blue)
	suite.killBy(r1, b1)
	suite.Equal(0, suite.red.Score())
	suite.Equal(0, suite.blue.Score())
	suite.env.waitingRoom.AssertNotCalled(suite.T(), "FinishRound")
}

func (suite *teamDeathMatchSuite) TestEqualTeamsAdmission() {
	suite.load("tdm-equal")
	// Joined players are pushed to the front.
	b1 := suite.game.AddPlayer(sim.NewPlayer("B1"))
	r3 := suite.game.AddPlayer(sim.NewPlayer("R3"))
	r2 := suite.game.AddPlayer(sim.NewPlayer("R2"))
	r1 := suite.game.AddPlayer(sim.NewPlayer("R1"))
	suite.Require().Equal([]*InGamePlayer{r1, r2, r3, b1}, suite.game.Queue())
	suite.game.setTeam(r1, suite.red)
	suite.game.setTeam(r2, suite.red)
	suite.game.setTeam(r3, suite.red)
	suite.game.setTeam(b1, suite.blue)
	admitted := suite.game.PlayersForRespawn([]*InGamePlayer{r1, r2, r3, b1})
	suite.Equal([]*InGamePlayer{r3, b1}, admitted)
	suite.Equal([]*InGamePlayer{r3, b1, r1, r2}, suite.game.Queue(), "should move waiting players to the back")
	suite.Contains(suite.env.world.MessagesFor(r1.Player()), "Sorry")
	suite.Contains(suite.env.world.MessagesFor(r2.Player()), "Sorry")
	suite.NotContains(suite.env.world.MessagesFor(r3.Player()), "Sorry")
}

func (suite *teamDeathMatchSuite) TestEqualTeamsOnlyRespawning() {
	suite.load("tdm-equal")
	b1 := suite.game.AddPlayer(sim.NewPlayer("B1"))
	r2 := suite.game.AddPlayer(sim.NewPlayer("R2"))
	r1 := suite.game.AddPlayer(sim.NewPlayer("R1"))
	suite.game.setTeam(r1, suite.red)
	suite.game.setTeam(r2, suite.red)
	suite.game.setTeam(b1, suite.blue)
	admitted := suite.game.PlayersForRespawn([]*InGamePlayer{r2, b1})
	// R1 is not respawning, so R2 is the first red one in the queue and waits.
	suite.Equal([]*InGamePlayer{b1}, admitted)
	suite.Equal([]*InGamePlayer{r1, b1, r2}, suite.game.Queue())
}

func (suite *teamDeathMatchSuite) TestEqualTeamsBalanced() {
	suite.load("tdm-equal")
	players := make([]*InGamePlayer, 0)
	for _, name := range []string{"P1", "P2", "P3", "P4"} {
		players = append(players, suite.game.AddPlayer(sim.NewPlayer(name)))
	}
	admitted := suite.game.PlayersForRespawn(players)
	suite.Len(admitted, 4, "balanced teams should all respawn")
}

func (suite *teamDeathMatchSuite) TestAssignRarestTeam() {
	p1 := suite.game.AddPlayer(sim.NewPlayer("P1"))
	p2 := suite.game.AddPlayer(sim.NewPlayer("P2"))
	p3 := suite.game.AddPlayer(sim.NewPlayer("P3"))
	respawning := []*InGamePlayer{p1, p2, p3}
	admitted := suite.game.PlayersForRespawn(respawning)
	suite.Equal(respawning, admitted, "should admit all without equal teams")
	suite.Same(suite.red, suite.game.Team(p1), "ties should go to first team")
	suite.Same(suite.blue, suite.game.Team(p2))
	suite.Same(suite.red, suite.game.Team(p3))
	suite.Equal(palette.Red, p1.Color())
	// Title and lines.
	titles := suite.env.world.TitlesFor(p1.Player())
	suite.Require().Len(titles, 1)
	suite.Equal(palette.Red.Code()+"Red team", titles[0].Title)
	suite.Equal([]string{"H: 0.0%", "S: 0.0~", "§cred team§f: 0", "§9§9Blue§f: 0"}, p1.Sidebar())
	suite.Equal(map[string]palette.Color{
		"P1": palette.Red,
		"P2": palette.Blue,
		"P3": palette.Red,
	}, p1.Colors())
	suite.Len(suite.env.feed.ofType(event.TypeTeamAssigned), 3)
}

func (suite *teamDeathMatchSuite) TestTickPushesChangedSidebars() {
	a := suite.join("A", suite.red)
	b := suite.join("B", suite.blue)
	suite.game.Tick()
	suite.game.Tick()
	suite.Len(suite.env.world.SidebarsFor(a.Player()), 1, "should push unchanged sidebar once")
	suite.killBy(a, b)
	suite.game.HandleRespawn(b)
	suite.game.Tick()
	sidebars := suite.env.world.SidebarsFor(a.Player())
	suite.Require().Len(sidebars, 2, "should push changed sidebar")
	suite.Equal([]string{"H: 0.0%", "S: 0.0~", "§cred team§f: 1", "§9§9Blue§f: 0"}, sidebars[1])
}

func (suite *teamDeathMatchSuite) TestRespawnWithoutTeamAssignsOne() {
	p := suite.game.AddPlayer(sim.NewPlayer("P"))
	suite.game.HandleRespawn(p)
	suite.Same(suite.red, suite.game.Team(p))
	suite.True(p.IsPlaying())
}

func (suite *teamDeathMatchSuite) TestRespawnRotation() {
	a := suite.join("A", suite.red)
	suite.Equal(loc(10), a.Player().Location())
	suite.game.HandleRespawn(a)
	suite.Equal(loc(11), a.Player().Location())
	suite.game.HandleRespawn(a)
	suite.Equal(loc(10), a.Player().Location())
	suite.Require().Len(suite.env.world.Events, 3)
	spawn, ok := suite.env.world.Events[0].(event.PlayerSpawn)
	suite.Require().True(ok, "should raise spawn event")
	suite.Equal("red", spawn.Team)
	suite.Equal(a.ID(), spawn.Player.ID)
	suite.Equal("tdm", spawn.Game)
}

func (suite *teamDeathMatchSuite) TestAttitude() {
	a := suite.join("A", suite.red)
	a2 := suite.join("A2", suite.red)
	b := suite.join("B", suite.blue)
	x := suite.game.AddPlayer(sim.NewPlayer("X"))
	y := suite.game.AddPlayer(sim.NewPlayer("Y"))
	suite.Equal(Friendly, suite.game.Attitude(a, a2))
	suite.Equal(Hostile, suite.game.Attitude(a, b))
	suite.Equal(Hostile, suite.game.Attitude(x, a))
	suite.Equal(Hostile, suite.game.Attitude(x, y), "players without team should not share one")
	suite.Equal(Hostile, suite.game.Attitude(x, x), "neutral team is never shared")
	suite.True(suite.game.Team(x).IsNeutral())
	suite.Equal(palette.White, suite.game.Team(x).Color())
}

func (suite *teamDeathMatchSuite) TestLeave() {
	a := suite.join("A", suite.red)
	b := suite.join("B", suite.blue)
	suite.game.RemovePlayer(a.Player())
	suite.Equal([]*InGamePlayer{b}, suite.game.Queue())
	suite.False(suite.game.ModifyPoints(a.ID(), 1), "should have removed team")
	suite.Equal(map[string]palette.Color{"B": palette.Blue}, b.Colors())
	suite.env.waitingRoom.AssertCalled(suite.T(), "Remove", a)
}

func (suite *teamDeathMatchSuite) TestModifyPoints() {
	a := suite.join("A", suite.red)
	suite.True(suite.game.ModifyPoints(a.ID(), 2))
	suite.Equal(2, suite.red.Score())
	unassigned := suite.game.AddPlayer(sim.NewPlayer("X"))
	suite.False(suite.game.ModifyPoints(unassigned.ID(), 2))
	suite.env.lobby.AssertNotCalled(suite.T(), "EndGame", mock.Anything)
}

func (suite *teamDeathMatchSuite) TestSetArena() {
	suite.NoError(suite.game.SetArena(suite.game.Arena()))
	suite.Error(suite.game.SetArena(testArena()))
}

func TestTeamDeathMatch(t *testing.T) {
	suite.Run(t, new(teamDeathMatchSuite))
}
