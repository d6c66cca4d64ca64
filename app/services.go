package app

import (
	"context"
	"fmt"
	"github.com/lefinal/flier/debugstats"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/logging"
	"github.com/lefinal/flier/logpublishsvc"
	"github.com/lefinal/flier/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"time"
)

type services map[string]service.Service

func createServices(appConfig Config, logger *zap.Logger, s *server, logEntriesIn <-chan logging.LogEntry) (services, error) {
	services := make(services)
	// Debug stats service.
	debugStats, err := debugstats.NewService(logger.Named("debug-stats"), debugstats.Config{
		IsEnabled: appConfig.Log.SystemDebugStatsInterval.Valid && appConfig.Log.SystemDebugStatsInterval.Int > 0,
		Interval:  time.Duration(appConfig.Log.SystemDebugStatsInterval.Int) * time.Minute,
		GameStats: s.gameStats,
	})
	if err != nil {
		return nil, errors.Wrap(err, "new debug stats service", nil)
	}
	services["debug-stats"] = debugStats
	// Tick loop.
	services["tick"] = s.loop
	// Match feed.
	services["match-feed"] = s.feed
	if s.portalBase != nil {
		// Portal connection.
		services["portal"] = service.Func(s.portalBase.Open)
		// Log publishing service.
		services["log-publish"] = logpublishsvc.New(logger.Named("log-publish"), s.portalBase.NewPortal("log-publish"), logEntriesIn)
	}
	return services, nil
}

func (s services) run(ctx context.Context, logger *zap.Logger) error {
	wg, lifetime := errgroup.WithContext(ctx)
	// Run each.
	for name, serviceToRun := range s {
		// Copy values.
		name, serviceToRun := name, serviceToRun
		wg.Go(func() error {
			logger.Debug(fmt.Sprintf("service %s up", name))
			defer logger.Debug(fmt.Sprintf("service %s down", name))
			if err := serviceToRun.Run(lifetime); err != nil {
				return errors.Wrap(err, "run service", errors.Details{"service_name": name})
			}
			return nil
		})
	}
	return wg.Wait()
}
