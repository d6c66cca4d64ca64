package app

import (
	"fmt"
	"github.com/gobuffalo/nulls"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/lobby"
	"github.com/lefinal/flier/logging"
)

// Config is the configuration needed in order to boot an App.
type Config struct {
	// Log configures logging.
	Log logging.Config `yaml:"log"`
	// MQTTAddr is the optional address of the MQTT server match events and logs
	// are published to.
	MQTTAddr nulls.String `yaml:"mqtt_addr"`
	// DBConn is the optional connection string for the PostgreSQL database
	// arenas are loaded from.
	DBConn nulls.String `yaml:"db_conn"`
	// DBArenas are the ids of the arenas to load from the database.
	DBArenas []string `yaml:"db_arenas"`
	// Lobby configures the lobby and waiting rooms.
	Lobby lobby.Config `yaml:"lobby"`
	// Languages maps languages to their messages.
	Languages config.Section `yaml:"-"`
	// Arenas holds the arenas defined in the config.
	Arenas config.Section `yaml:"-"`
	// Games holds the games to run by their id.
	Games config.Section `yaml:"-"`
	// Weapons holds the available weapons by their id.
	Weapons config.Section `yaml:"-"`
	// Effects holds the available effects by their id.
	Effects config.Section `yaml:"-"`
}

// ReadConfig reads the Config from the YAML file with the given name.
func ReadConfig(filename string) (Config, error) {
	root, err := config.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file", nil)
	}
	return configFromSection(root)
}

// ParseConfig parses the Config from the given YAML document.
func ParseConfig(raw []byte) (Config, error) {
	root, err := config.Parse(raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "parse config", nil)
	}
	return configFromSection(root)
}

func configFromSection(root config.Section) (Config, error) {
	var c Config
	err := root.Decode(&c)
	if err != nil {
		return Config{}, errors.Wrap(err, "decode config", nil)
	}
	c.Languages, _ = root.Section("languages")
	c.Arenas, _ = root.Section("arenas")
	c.Games, _ = root.Section("games")
	c.Weapons, _ = root.Section("weapons")
	c.Effects, _ = root.Section("effects")
	return c, nil
}

// ValidateConfig assures that the given Config is valid.
func ValidateConfig(c Config) error {
	if c.Log.MaxSize < 0 {
		return errors.NewInternalError(fmt.Sprintf("max log size must not be negative but was %d", c.Log.MaxSize), nil)
	}
	if c.Log.KeepDays < 0 {
		return errors.NewInternalError(fmt.Sprintf("log keep days must not be negative but was %d", c.Log.KeepDays), nil)
	}
	if c.Log.SystemDebugStatsInterval.Valid && c.Log.SystemDebugStatsInterval.Int <= 0 {
		return errors.NewInternalError(fmt.Sprintf("system debug stats interval must be positive but was %d",
			c.Log.SystemDebugStatsInterval.Int), nil)
	}
	if len(c.DBArenas) > 0 && !c.DBConn.Valid {
		return errors.NewInternalError("database arenas require a database connection", nil)
	}
	if c.MQTTAddr.Valid && c.MQTTAddr.String == "" {
		return errors.NewInternalError("mqtt address must not be empty", nil)
	}
	if len(c.Games.Keys()) == 0 {
		return errors.NewInternalError("no games configured", nil)
	}
	return nil
}
