package lang

import (
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/sim"
	"github.com/stretchr/testify/suite"
	"testing"
)

const testMessages = `
default: en
en:
  your_score: "&eScore: {score}"
  player_win: "{1} won the game!"
  team_win: "{1} won, {2} lost"
  red: red team
de:
  player_win: "{1} hat gewonnen!"
`

// catalogSuite tests Catalog.
type catalogSuite struct {
	suite.Suite
	catalog *Catalog
}

func (suite *catalogSuite) SetupTest() {
	s, err := config.Parse([]byte(testMessages))
	suite.Require().NoError(err, "parse should not fail")
	suite.catalog, err = FromSection(s)
	suite.Require().NoError(err, "load should not fail")
}

func (suite *catalogSuite) TestTranslateColors() {
	suite.Equal("§eScore: {score}", suite.catalog.Translate("en", "your_score"))
}

func (suite *catalogSuite) TestPlaceholders() {
	suite.Equal("Alice won the game!", suite.catalog.Translate("en", "player_win", "Alice"))
	suite.Equal("a won, b lost", suite.catalog.Translate("en", "team_win", "a", "b"))
}

func (suite *catalogSuite) TestLanguage() {
	suite.Equal("Bob hat gewonnen!", suite.catalog.Translate("de", "player_win", "Bob"))
}

func (suite *catalogSuite) TestRegionFallsBackToLanguage() {
	suite.Equal("Bob hat gewonnen!", suite.catalog.Translate("de-DE", "player_win", "Bob"))
}

func (suite *catalogSuite) TestFallbackLanguage() {
	suite.Equal("red team", suite.catalog.Translate("de", "red"))
	suite.Equal("red team", suite.catalog.Translate("fr", "red"))
}

func (suite *catalogSuite) TestMissingKey() {
	suite.Equal("nope", suite.catalog.Translate("en", "nope", "x"))
}

func (suite *catalogSuite) TestMessageUsesPlayerLocale() {
	p := sim.NewPlayer("Carl")
	p.SetLocale("de_AT")
	suite.Equal("Carl hat gewonnen!", suite.catalog.Message(p, "player_win", p.Name()))
}

func TestCatalog(t *testing.T) {
	suite.Run(t, new(catalogSuite))
}

func TestFromSectionInvalidLanguage(t *testing.T) {
	s, err := config.Parse([]byte("en: hello\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	_, err = FromSection(s)
	if err == nil {
		t.Errorf("FromSection() should fail for scalar language")
	}
}
