package arena

import (
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"testing"
)

const testArenas = `
arenas:
  sky:
    locations:
      a: {world: sky, x: 1, y: 80, z: 2, yaw: 90, pitch: 0}
      b: {world: sky, x: -1, y: 81, z: -2}
    sets:
      red: [a, b]
      blue: [b]
  broken:
    locations:
      a: {world: sky, x: 1, y: 80, z: 2}
    sets:
      red: [a, c]
`

func loadArena(t *testing.T, name string) (*Arena, error) {
	root, err := config.Parse([]byte(testArenas))
	require.NoError(t, err, "parse should not fail")
	arenas, ok := root.Section("arenas")
	require.True(t, ok)
	s, ok := arenas.Section(name)
	require.True(t, ok)
	return FromSection(s)
}

// arenaSuite tests Arena.
type arenaSuite struct {
	suite.Suite
	arena *Arena
}

func (suite *arenaSuite) SetupTest() {
	var err error
	suite.arena, err = loadArena(suite.T(), "sky")
	suite.Require().NoError(err, "load should not fail")
}

func (suite *arenaSuite) TestName() {
	suite.Equal("sky", suite.arena.Name())
}

func (suite *arenaSuite) TestLocation() {
	loc, err := suite.arena.Location("a")
	suite.Require().NoError(err)
	suite.Equal(world.Location{
		World: "sky",
		Pos:   world.Vector{X: 1, Y: 80, Z: 2},
		Yaw:   90,
	}, loc)
}

func (suite *arenaSuite) TestUnknownLocation() {
	_, err := suite.arena.Location("z")
	suite.Require().Error(err)
	e, _ := errors.Cast(err)
	suite.Equal(errors.KindUnknownLocation, e.Kind)
}

func (suite *arenaSuite) TestLocationSet() {
	set, err := suite.arena.LocationSet("red")
	suite.Require().NoError(err)
	suite.Len(set, 2)
	suite.Equal(-1.0, set[1].Pos.X)
}

func (suite *arenaSuite) TestLocationSetIsCopy() {
	set, err := suite.arena.LocationSet("red")
	suite.Require().NoError(err)
	set[0].Pos.X = 100
	again, _ := suite.arena.LocationSet("red")
	suite.Equal(1.0, again[0].Pos.X, "should not modify arena")
}

func (suite *arenaSuite) TestSingleLocationAsSet() {
	set, err := suite.arena.LocationSet("a")
	suite.Require().NoError(err)
	suite.Len(set, 1)
}

func (suite *arenaSuite) TestUnknownSet() {
	_, err := suite.arena.LocationSet("green")
	suite.Error(err)
}

func TestArena(t *testing.T) {
	suite.Run(t, new(arenaSuite))
}

func TestFromSectionUnknownSetMember(t *testing.T) {
	_, err := loadArena(t, "broken")
	require.Error(t, err, "should fail")
	e, _ := errors.Cast(err)
	assert.Equal(t, errors.KindUnknownLocation, e.Kind, "should keep kind")
}
