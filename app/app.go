package app

import (
	"context"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/logging"
	"github.com/lefinal/flier/store"
	"go.uber.org/zap"
)

// defaultMaxDBConnections is the maximum number of database connections.
const defaultMaxDBConnections = 16

// App is a complete flier server instance.
type App struct {
	// config is the main config used for the App.
	config Config
}

func NewApp(config Config) *App {
	return &App{
		config: config,
	}
}

// Boot sets everything up based on the set config and runs until the given
// context.Context is done.
func (app *App) Boot(ctx context.Context) error {
	// Validate config.
	err := ValidateConfig(app.config)
	if err != nil {
		return errors.Error{
			Code:    errors.ErrFatal,
			Err:     err,
			Message: "invalid config",
		}
	}
	// Setup logger.
	publishCore, logEntries := logging.NewPublishCore(app.config.Log.PublishLevel)
	logger := logging.NewLogger(app.config.Log, publishCore)
	defer func() {
		_ = logger.Sync()
	}()
	// Boot.
	err = app.boot(ctx, logger, logEntries)
	if err != nil {
		err = errors.Wrap(err, "boot", nil)
		errors.Log(logger, err)
		return err
	}
	return nil
}

func (app *App) boot(ctx context.Context, logger *zap.Logger, logEntries <-chan logging.LogEntry) error {
	logger.Info("booting up")
	// Connect database.
	var mall *store.Mall
	if app.config.DBConn.Valid {
		logger.Debug("connecting to database")
		pool, err := store.Connect(ctx, app.config.DBConn.String, defaultMaxDBConnections)
		if err != nil {
			return errors.Wrap(err, "connect database", nil)
		}
		defer pool.Close()
		mall = store.NewMall(logger.Named("store"), pool)
		logger.Debug("database ready")
	}
	// Setup everything.
	s, err := newServer(ctx, app.config, logger, mall)
	if err != nil {
		return errors.Wrap(err, "new server", nil)
	}
	services, err := createServices(app.config, logger, s, logEntries)
	if err != nil {
		return errors.Wrap(err, "create services", nil)
	}
	logger.Info("up and running")
	err = services.run(ctx, logger)
	if err != nil {
		return errors.Wrap(err, "run services", nil)
	}
	logger.Info("shut down")
	return nil
}
