package app

import (
	"context"
	"fmt"
	"github.com/lefinal/flier/arena"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/debugstats"
	"github.com/lefinal/flier/effect"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/event"
	"github.com/lefinal/flier/game"
	"github.com/lefinal/flier/lang"
	"github.com/lefinal/flier/lobby"
	"github.com/lefinal/flier/matchfeed"
	"github.com/lefinal/flier/portal"
	"github.com/lefinal/flier/sim"
	"github.com/lefinal/flier/store"
	"github.com/lefinal/flier/tick"
	"github.com/lefinal/flier/weapon"
	"go.uber.org/zap"
)

// server holds the game runtime.
type server struct {
	// portalBase is nil if no MQTT server is configured.
	portalBase portal.Base
	world      *sim.World
	scheduler  *tick.Scheduler
	loop       *tick.Loop
	feed       *matchfeed.Feed
	lobby      *lobby.Lobby
	catalog    *lang.Catalog
	arenas     map[string]*arena.Arena
	weapons    map[string]weapon.Weapon
	effects    map[string]effect.Effect
}

// newServer loads everything from the config and sets up the games. The mall
// is optional.
func newServer(ctx context.Context, c Config, logger *zap.Logger, mall *store.Mall) (*server, error) {
	s := &server{}
	var err error
	if c.MQTTAddr.Valid {
		s.portalBase, err = portal.NewBase(logger.Named("portal"), portal.Config{MQTTAddr: c.MQTTAddr.String})
		if err != nil {
			return nil, errors.Wrap(err, "new portal base", nil)
		}
	}
	s.catalog, err = lang.FromSection(c.Languages)
	if err != nil {
		return nil, errors.Wrap(err, "load languages", nil)
	}
	s.arenas, err = loadArenas(ctx, c, mall)
	if err != nil {
		return nil, errors.Wrap(err, "load arenas", nil)
	}
	s.weapons, err = loadWeapons(c)
	if err != nil {
		return nil, errors.Wrap(err, "load weapons", nil)
	}
	s.effects, err = loadEffects(c)
	if err != nil {
		return nil, errors.Wrap(err, "load effects", nil)
	}
	logger.Debug("content loaded",
		zap.Int("arenas", len(s.arenas)),
		zap.Int("weapons", len(s.weapons)),
		zap.Int("effects", len(s.effects)))
	s.world = sim.NewWorld(logger.Named("world"))
	s.scheduler = tick.NewScheduler(logger.Named("scheduler"))
	s.loop = tick.NewLoop(logger.Named("tick"), s.scheduler, tick.Interval)
	var feedPortal portal.Portal
	if s.portalBase != nil {
		feedPortal = s.portalBase.NewPortal("match-feed")
	}
	s.feed = matchfeed.New(logger.Named("match-feed"), feedPortal)
	s.lobby = lobby.New(logger.Named("lobby"), s.world, c.Lobby)
	host := game.Host{
		Logger:    logger.Named("game"),
		World:     s.world,
		Scheduler: s.scheduler,
		Lang:      s.catalog,
		Feed:      s.feed,
		Lobby:     s.lobby,
	}
	loaded := s.loadGames(logger, host, c.Games)
	if loaded == 0 {
		return nil, errors.NewInternalError("no game could be loaded", nil)
	}
	// The world moves entities before games and tasks see them.
	s.loop.AddTicker(tick.TickerFunc(s.world.Tick))
	s.loop.AddTicker(s.lobby)
	return s, nil
}

// loadArenas loads the arenas from the config and the database.
func loadArenas(ctx context.Context, c Config, mall *store.Mall) (map[string]*arena.Arena, error) {
	arenas := make(map[string]*arena.Arena)
	for _, id := range c.Arenas.Keys() {
		section, ok := c.Arenas.Section(id)
		if !ok {
			return nil, errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("arena '%s' must be a mapping", id),
				errors.Details{"arena": id})
		}
		a, err := arena.FromSection(section)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("error in '%s' arena", id), errors.Details{"arena": id})
		}
		arenas[id] = a
	}
	for _, id := range c.DBArenas {
		if _, ok := arenas[id]; ok {
			return nil, errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("duplicate arena '%s'", id),
				errors.Details{"arena": id})
		}
		if mall == nil {
			return nil, errors.NewInternalError("no database for loading arenas", errors.Details{"arena": id})
		}
		a, err := mall.Arena(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "arena from database", errors.Details{"arena": id})
		}
		arenas[id] = a
	}
	return arenas, nil
}

func loadWeapons(c Config) (map[string]weapon.Weapon, error) {
	weapons := make(map[string]weapon.Weapon)
	for _, id := range c.Weapons.Keys() {
		section, _ := c.Weapons.Section(id)
		w, err := weapon.Load(section)
		if err != nil {
			return nil, err
		}
		weapons[id] = w
	}
	return weapons, nil
}

func loadEffects(c Config) (map[string]effect.Effect, error) {
	effects := make(map[string]effect.Effect)
	for _, id := range c.Effects.Keys() {
		section, _ := c.Effects.Section(id)
		e, err := effect.Load(section)
		if err != nil {
			return nil, err
		}
		effects[id] = e
	}
	return effects, nil
}

// issueWeapon returns an independent copy of the configured weapon that can be
// handed out to a player.
func (s *server) issueWeapon(id string) (weapon.Weapon, error) {
	w, ok := s.weapons[id]
	if !ok {
		return nil, errors.NewResourceNotFoundError(fmt.Sprintf("unknown weapon '%s'", id), errors.Details{"weapon": id})
	}
	replica, err := w.Replicate()
	if err != nil {
		return nil, errors.Wrap(err, "replicate weapon", errors.Details{"weapon": id})
	}
	return replica, nil
}

// effect returns the configured effect. Effects hold no state and are shared.
func (s *server) effect(id string) (effect.Effect, error) {
	e, ok := s.effects[id]
	if !ok {
		return nil, errors.NewResourceNotFoundError(fmt.Sprintf("unknown effect '%s'", id), errors.Details{"effect": id})
	}
	return e, nil
}

// loadGames loads all games and adds them to the lobby. Games that fail to load
// are logged, reported and skipped. It returns the number of loaded games.
func (s *server) loadGames(logger *zap.Logger, host game.Host, games config.Section) int {
	loaded := 0
	for _, id := range games.Keys() {
		_, err := s.loadGame(host, games, id)
		if err != nil {
			errors.Log(logger, err)
			s.feed.Report(event.Event{
				Game:    id,
				Type:    event.TypeError,
				Payload: event.ErrorEventPayloadFromError(err),
			})
			continue
		}
		loaded++
	}
	return loaded
}

func (s *server) loadGame(host game.Host, games config.Section, id string) (game.Game, error) {
	section, ok := games.Section(id)
	if !ok {
		return nil, errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("game '%s' must be a mapping", id),
			errors.Details{"game": id})
	}
	var a *arena.Arena
	arenaID, err := section.StringOr("arena", "")
	if err != nil {
		return nil, errors.Wrap(err, "load arena", errors.Details{"game": id})
	}
	if arenaID != "" {
		a, ok = s.arenas[arenaID]
		if !ok {
			return nil, errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("unknown arena '%s'", arenaID),
				errors.Details{"game": id, "arena": arenaID})
		}
	}
	g, err := game.New(host, section, a)
	if err != nil {
		return nil, errors.Wrap(err, "new game", nil)
	}
	err = s.lobby.AddGame(g)
	if err != nil {
		return nil, errors.Wrap(err, "add game to lobby", nil)
	}
	return g, nil
}

// gameStats retrieves the GameStats from the tick loop.
func (s *server) gameStats(ctx context.Context) (debugstats.GameStats, error) {
	var stats debugstats.GameStats
	err := s.loop.Do(ctx, func() {
		stats.RunningGames, stats.Players = s.lobby.Stats()
		stats.PendingTasks = s.scheduler.Pending()
	})
	if err != nil {
		return debugstats.GameStats{}, errors.Wrap(err, "read stats on tick loop", nil)
	}
	return stats, nil
}
