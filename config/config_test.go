package config

import (
	"github.com/lefinal/flier/errors"
	"github.com/stretchr/testify/suite"
	"testing"
)

const testDoc = `
games:
  dm:
    type: deathmatch
    points_to_win: 3
    suicide_score: -1
    speed: 1.5
    rounds: true
    spawns: [a, b, c]
    teams:
      red:
        color: red
      blue:
        color: blue
      green:
        color: green
    negative: -3
    word: hello
`

// sectionSuite tests Section.
type sectionSuite struct {
	suite.Suite
	root Section
	dm   Section
}

func (suite *sectionSuite) SetupTest() {
	var err error
	suite.root, err = Parse([]byte(testDoc))
	suite.Require().NoError(err, "parse should not fail")
	games, ok := suite.root.Section("games")
	suite.Require().True(ok, "should find games")
	suite.dm, ok = games.Section("dm")
	suite.Require().True(ok, "should find game")
}

func (suite *sectionSuite) TestPathAndName() {
	suite.Equal("games.dm", suite.dm.Path())
	suite.Equal("dm", suite.dm.Name())
}

func (suite *sectionSuite) TestKeysKeepOrder() {
	teams, ok := suite.dm.Section("teams")
	suite.Require().True(ok)
	suite.Equal([]string{"red", "blue", "green"}, teams.Keys(), "should keep document order")
}

func (suite *sectionSuite) TestMissingSection() {
	_, ok := suite.dm.Section("nope")
	suite.False(ok, "should not find missing section")
	_, ok = suite.dm.Section("word")
	suite.False(ok, "should not treat scalar as section")
}

func (suite *sectionSuite) TestInt() {
	v, err := suite.dm.Int("suicide_score")
	suite.NoError(err)
	suite.Equal(-1, v)
}

func (suite *sectionSuite) TestIntOrDefault() {
	v, err := suite.dm.IntOr("kill_score", 1)
	suite.NoError(err)
	suite.Equal(1, v, "should use default")
}

func (suite *sectionSuite) TestPositiveIntMissing() {
	_, err := suite.dm.PositiveInt("lifetime")
	suite.Require().Error(err, "should fail")
	e, _ := errors.Cast(err)
	suite.Equal(errors.ErrLoading, e.Code)
	suite.Equal(errors.KindMissingValue, e.Kind)
	suite.Equal("games.dm.lifetime", e.Details["path"])
}

func (suite *sectionSuite) TestPositiveIntNegative() {
	_, err := suite.dm.PositiveInt("negative")
	suite.Require().Error(err, "should fail")
	e, _ := errors.Cast(err)
	suite.Equal(errors.KindInvalidValue, e.Kind)
}

func (suite *sectionSuite) TestIntInvalid() {
	_, err := suite.dm.Int("word")
	suite.Require().Error(err, "should fail")
	e, _ := errors.Cast(err)
	suite.Equal(errors.KindInvalidValue, e.Kind)
}

func (suite *sectionSuite) TestPositiveFloat() {
	v, err := suite.dm.PositiveFloat("speed")
	suite.NoError(err)
	suite.Equal(1.5, v)
	v, err = suite.dm.PositiveFloatOr("volume", 1)
	suite.NoError(err)
	suite.Equal(1.0, v, "should use default")
}

func (suite *sectionSuite) TestBool() {
	v, err := suite.dm.BoolOr("rounds", false)
	suite.NoError(err)
	suite.True(v)
	v, err = suite.dm.BoolOr("equal_teams", false)
	suite.NoError(err)
	suite.False(v, "should use default")
}

func (suite *sectionSuite) TestStringList() {
	v, err := suite.dm.StringList("spawns")
	suite.NoError(err)
	suite.Equal([]string{"a", "b", "c"}, v)
	v, err = suite.dm.StringList("colors")
	suite.NoError(err)
	suite.Empty(v, "should return empty list for missing key")
}

func (suite *sectionSuite) TestZeroSection() {
	var s Section
	suite.Empty(s.Keys())
	suite.False(s.Has("anything"))
	v, err := s.IntOr("x", 4)
	suite.NoError(err)
	suite.Equal(4, v)
}

func TestSection(t *testing.T) {
	suite.Run(t, new(sectionSuite))
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	if err == nil {
		t.Errorf("Parse() should fail for non-mapping root")
	}
	_, err = Parse([]byte("a: [b"))
	if err == nil {
		t.Errorf("Parse() should fail for malformed yaml")
	}
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(s.Keys()) != 0 {
		t.Errorf("Parse() keys = %v, want none", s.Keys())
	}
}
