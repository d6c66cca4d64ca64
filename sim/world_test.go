package sim

import (
	"github.com/lefinal/flier/world"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"testing"
)

// worldSuite tests World.
type worldSuite struct {
	suite.Suite
	w *World
}

func (suite *worldSuite) SetupTest() {
	suite.w = NewWorld(zap.New(zapcore.NewNopCore()))
}

func (suite *worldSuite) TestEntityMovesWithoutGravity() {
	e, err := suite.w.SpawnEntity(world.Location{}, "ARROW")
	suite.Require().NoError(err, "spawn should not fail")
	e.SetGravity(false)
	e.SetVelocity(world.Vector{X: 1})
	suite.w.Tick()
	suite.w.Tick()
	suite.Equal(world.Vector{X: 2}, e.Location().Pos, "should have moved")
	suite.Equal(2, e.TicksLived(), "should count ticks")
}

func (suite *worldSuite) TestEntityFallsWithGravity() {
	e, _ := suite.w.SpawnEntity(world.Location{}, "ARROW")
	suite.w.Tick()
	suite.Less(e.Location().Pos.Y, 0.0, "should fall")
}

func (suite *worldSuite) TestRemovedEntityForgotten() {
	e, _ := suite.w.SpawnEntity(world.Location{}, "ARROW")
	e.Remove()
	suite.w.Tick()
	suite.Empty(suite.w.Entities(), "should have forgotten entity")
	suite.Equal(0, e.TicksLived(), "should not tick removed entity")
}

func (suite *worldSuite) TestFrozenEntityStays() {
	e, _ := suite.w.SpawnEntity(world.Location{}, "ARROW")
	e.SetVelocity(world.Vector{X: 1})
	e.(*Entity).Freeze()
	suite.w.Tick()
	suite.Equal(world.Vector{}, e.Location().Pos, "should not move")
	suite.Equal(1, e.TicksLived(), "should still count ticks")
}

func (suite *worldSuite) TestAltitude() {
	suite.w.GroundY = 10
	suite.Equal(2.0, suite.w.Altitude(world.Location{Pos: world.Vector{Y: 12}}, 4))
	suite.Equal(4.0, suite.w.Altitude(world.Location{Pos: world.Vector{Y: 100}}, 4), "should cap")
	suite.Equal(0.0, suite.w.Altitude(world.Location{Pos: world.Vector{Y: 5}}, 4), "should not be negative")
}

func (suite *worldSuite) TestTeleport() {
	p := NewPlayer("steve")
	p.Vel = world.Vector{X: 3}
	target := world.Location{World: "arena", Pos: world.Vector{X: 5}}
	suite.w.Teleport(p, target)
	suite.Equal(target, p.Location(), "should move player")
	suite.Equal(world.Vector{}, p.Velocity(), "should reset velocity")
	suite.Len(suite.w.Teleports, 1, "should record teleport")
}

func (suite *worldSuite) TestRecordings() {
	p := NewPlayer("alex")
	other := NewPlayer("steve")
	suite.w.SendTitle(p, "win", "alex", 0, 0, 0)
	suite.w.SendTitle(other, "lose", "alex", 0, 0, 0)
	suite.w.SendMessage(p, "hello")
	suite.Len(suite.w.TitlesFor(p), 1, "should filter titles")
	suite.Equal([]string{"hello"}, suite.w.MessagesFor(p), "should filter messages")
	suite.Empty(suite.w.MessagesFor(other), "should not return foreign messages")
}

func (suite *worldSuite) TestSidebars() {
	p := NewPlayer("alex")
	other := NewPlayer("steve")
	lines := []string{"Score: 1"}
	suite.w.SetSidebar(p, lines)
	suite.w.SetSidebar(other, []string{"Score: 2"})
	lines[0] = "changed"
	suite.Equal([][]string{{"Score: 1"}}, suite.w.SidebarsFor(p), "should record copy of lines")
}

func TestWorld(t *testing.T) {
	suite.Run(t, new(worldSuite))
}
