// Package debugstats periodically logs system and game stats.
package debugstats

import (
	"context"
	"fmt"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/service"
	"go.uber.org/zap"
	"runtime"
	"time"
)

// GameStats describes the state of the game runtime.
type GameStats struct {
	RunningGames int
	Players      int
	PendingTasks int
}

// GameStatsSource retrieves the current GameStats.
type GameStatsSource func(ctx context.Context) (GameStats, error)

type Config struct {
	// IsEnabled describes whether periodic debug stats logging is desired.
	IsEnabled bool
	// Interval in which to log debug stats.
	Interval time.Duration
	// GameStats is optional.
	GameStats GameStatsSource
	// WithStack includes the stack of all goroutines.
	WithStack bool
}

type debugStatsService struct {
	logger *zap.Logger
	config Config
}

// NewService creates the service. The interval must be positive if enabled.
func NewService(logger *zap.Logger, config Config) (service.Service, error) {
	if config.IsEnabled && config.Interval <= 0 {
		return nil, errors.Error{
			Code:    errors.ErrBadRequest,
			Message: fmt.Sprintf("interval must be positive but was %v", config.Interval),
		}
	}
	return &debugStatsService{
		logger: logger,
		config: config,
	}, nil
}

func (s *debugStatsService) Run(ctx context.Context) error {
	if !s.config.IsEnabled {
		return nil
	}
	s.logger.Debug(fmt.Sprintf("logging system state every %gs", s.config.Interval.Seconds()))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.config.Interval):
			s.logSystemDebugStats()
			s.logGameStats(ctx)
		}
	}
}

// logSystemDebugStats logs the current system state like memory stats, current
// stack, etc.
func (s *debugStatsService) logSystemDebugStats() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	fields := []zap.Field{
		zap.Int("num_cpu", runtime.NumCPU()),
		zap.Int("num_goroutine", runtime.NumGoroutine()),
		zap.Uint64("memory_in_use_mb", memStats.Sys/1000/1000),
	}
	if s.config.WithStack {
		buf := make([]byte, 1<<16)
		stackSize := runtime.Stack(buf, true)
		fields = append(fields, zap.String("stack", string(buf[:stackSize])))
	}
	s.logger.Debug("system stats", fields...)
}

func (s *debugStatsService) logGameStats(ctx context.Context) {
	if s.config.GameStats == nil {
		return
	}
	stats, err := s.config.GameStats(ctx)
	if err != nil {
		errors.Log(s.logger, errors.Wrap(err, "retrieve game stats", nil))
		return
	}
	s.logger.Debug("game stats",
		zap.Int("running_games", stats.RunningGames),
		zap.Int("players", stats.Players),
		zap.Int("pending_tasks", stats.PendingTasks))
}
