package tick

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"sync"
	"testing"
	"time"
)

const timeout = 3 * time.Second

// countingTicker counts its ticks.
type countingTicker struct {
	ticks int
	order *[]string
	name  string
}

func (t *countingTicker) Tick() {
	t.ticks++
	if t.order != nil {
		*t.order = append(*t.order, t.name)
	}
}

// loopSuite tests Loop.
type loopSuite struct {
	suite.Suite
	loop *Loop
}

func (suite *loopSuite) SetupTest() {
	logger := zap.New(zapcore.NewNopCore())
	suite.loop = NewLoop(logger, NewScheduler(logger), time.Millisecond)
}

func (suite *loopSuite) TestStepOrder() {
	order := make([]string, 0)
	suite.loop.AddTicker(&countingTicker{order: &order, name: "world"})
	suite.loop.AddTicker(&countingTicker{order: &order, name: "game"})
	suite.loop.Scheduler().Schedule(1, 0, func(_ *Handle) { order = append(order, "task") })
	suite.Require().NoError(suite.loop.Submit(context.Background(), func() { order = append(order, "command") }))
	suite.loop.Step()
	suite.Equal([]string{"command", "world", "game", "task"}, order, "should run in correct order")
}

func (suite *loopSuite) TestRemoveTicker() {
	t := &countingTicker{}
	suite.loop.AddTicker(t)
	suite.loop.Step()
	suite.loop.RemoveTicker(t)
	suite.loop.Step()
	suite.Equal(1, t.ticks, "should not tick after removal")
}

func (suite *loopSuite) TestPanickingCommand() {
	suite.Require().NoError(suite.loop.Submit(context.Background(), func() { panic("oh no") }))
	t := &countingTicker{}
	suite.loop.AddTicker(t)
	suite.NotPanics(suite.loop.Step, "should recover")
	suite.Equal(1, t.ticks, "should still tick")
}

func (suite *loopSuite) TestRunExecutesCommands() {
	timeout, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	runCtx, stop := context.WithCancel(timeout)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		suite.NoError(suite.loop.Run(runCtx), "should not fail")
	}()
	executed := atomic.NewBool(false)
	err := suite.loop.Do(timeout, func() { executed.Store(true) })
	suite.NoError(err, "do should not fail")
	suite.True(executed.Load(), "should have executed command")
	stop()
	wg.Wait()
	suite.NoError(timeout.Err(), "should not time out")
}

func (suite *loopSuite) TestSubmitAborted() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Fill buffer so that submit needs to block.
	for i := 0; i < commandBufferSize; i++ {
		suite.Require().NoError(suite.loop.Submit(context.Background(), func() {}))
	}
	suite.Error(suite.loop.Submit(ctx, func() {}), "should fail for done context")
}

func TestLoop(t *testing.T) {
	suite.Run(t, new(loopSuite))
}

func TestTickerFunc(t *testing.T) {
	called := false
	TickerFunc(func() { called = true }).Tick()
	assert.True(t, called, "should call function")
}
