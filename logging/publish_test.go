package logging

import (
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"testing"
)

// publishCoreSuite tests publishCore.
type publishCoreSuite struct {
	suite.Suite
	logger  *zap.Logger
	entries <-chan LogEntry
}

func (suite *publishCoreSuite) SetupTest() {
	c, entries := NewPublishCore(zap.WarnLevel)
	suite.logger = zap.New(c)
	suite.entries = entries
}

func (suite *publishCoreSuite) TestBelowLevel() {
	suite.logger.Info("meow")
	suite.Len(suite.entries, 0, "should not forward info")
}

func (suite *publishCoreSuite) TestForwardWithFields() {
	suite.logger.Named("games").With(zap.String("game", "dm")).Warn("meow", zap.Int("score", 3))
	suite.Require().Len(suite.entries, 1, "should forward warning")
	entry := <-suite.entries
	suite.Equal("meow", entry.Message)
	suite.Equal(zap.WarnLevel, entry.Level)
	suite.Equal("games", entry.LoggerName)
	suite.Equal("dm", entry.Fields["game"])
	suite.EqualValues(3, entry.Fields["score"])
}

func (suite *publishCoreSuite) TestDropWhenFull() {
	for i := 0; i < publishBufferSize+10; i++ {
		suite.logger.Error("meow")
	}
	suite.Len(suite.entries, publishBufferSize, "should drop entries when full")
}

func TestPublishCore(t *testing.T) {
	suite.Run(t, new(publishCoreSuite))
}
