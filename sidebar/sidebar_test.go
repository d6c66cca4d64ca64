package sidebar

import (
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"testing"
	"unicode/utf8"
)

// cachedLineSuite tests cachedLine.
type cachedLineSuite struct {
	suite.Suite
	key         int
	renderCalls int
	line        *cachedLine[int]
}

func (suite *cachedLineSuite) SetupTest() {
	suite.key = 0
	suite.renderCalls = 0
	suite.line = newCachedLine(func() int { return suite.key }, func(k int) string {
		suite.renderCalls++
		return "value"
	})
}

func (suite *cachedLineSuite) TestRenderFirst() {
	suite.Equal("value", suite.line.Text(), "should render")
	suite.Equal(1, suite.renderCalls, "should render once")
}

func (suite *cachedLineSuite) TestCacheUnchangedKey() {
	suite.line.Text()
	suite.line.Text()
	suite.line.Text()
	suite.Equal(1, suite.renderCalls, "should not re-render for same key")
}

func (suite *cachedLineSuite) TestInvalidateChangedKey() {
	suite.line.Text()
	suite.key = 2
	suite.line.Text()
	suite.Equal(2, suite.renderCalls, "should re-render for changed key")
	suite.line.Text()
	suite.Equal(2, suite.renderCalls, "should cache again")
}

func TestCachedLine(t *testing.T) {
	suite.Run(t, new(cachedLineSuite))
}

func TestNewScore(t *testing.T) {
	score := 3
	line := NewScore("Your score: {score}", func() int { return score })
	assert.Equal(t, "Your score: 3", line.Text())
	score = -1
	assert.Equal(t, "Your score: -1", line.Text(), "should update after change")
}

func TestNewBestScore(t *testing.T) {
	line := NewBestScore("Best: {score}", func() int { return 0 })
	assert.Equal(t, "Best: 0", line.Text())
}

func TestNewTeam(t *testing.T) {
	tests := []struct {
		name  string
		team  string
		score int
		want  string
	}{
		{
			name:  "short name",
			team:  "Red",
			score: 2,
			want:  "§cRed§f: 2",
		},
		{
			name:  "truncated name",
			team:  "Reddish Rockets",
			score: 12,
			want:  "§cReddish §f: 12",
		},
		{
			name:  "huge score",
			team:  "Red",
			score: 1234567890,
			want:  "§c§f: 1234567890",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := tt.score
			got := NewTeam(palette.Red, tt.team, func() int { return score }).Text()
			assert.Equal(t, tt.want, got, "should render correct text")
			assert.LessOrEqual(t, utf8.RuneCountInString(got), 16, "should not exceed max length")
		})
	}
}

func TestNewHealth(t *testing.T) {
	tests := []struct {
		name   string
		wings  Wings
		expect string
	}{
		{
			name:   "no wings",
			wings:  func() (float64, float64, bool) { return 0, 0, false },
			expect: "H: 0.0%",
		},
		{
			name:   "half",
			wings:  func() (float64, float64, bool) { return 25, 50, true },
			expect: "H: 50.0%",
		},
		{
			name:   "fraction",
			wings:  func() (float64, float64, bool) { return 1, 3, true },
			expect: "H: 33.3%",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, NewHealth(tt.wings).Text())
		})
	}
}

func TestNewSpeed(t *testing.T) {
	tests := []struct {
		name     string
		velocity world.Vector
		expect   string
	}{
		{name: "standing", velocity: world.Vector{}, expect: "S: 0.0~"},
		{name: "below one", velocity: world.Vector{X: 0.05}, expect: "S: 0.0~"},
		{name: "flying", velocity: world.Vector{X: 0.3, Z: 0.4}, expect: "S: 5.0~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.velocity
			assert.Equal(t, tt.expect, NewSpeed(func() world.Vector { return v }).Text())
		})
	}
}
