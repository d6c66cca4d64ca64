package main

import (
	"context"
	"fmt"
	"github.com/lefinal/flier/app"
	"github.com/lefinal/flier/errors"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// configFileEnv is the environment variable for the config file path.
const configFileEnv = "FLIER_CONFIG"

// defaultConfigFile is used if configFileEnv is not set.
const defaultConfigFile = "flier.yaml"

func main() {
	configFile := os.Getenv(configFileEnv)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	config, err := app.ReadConfig(configFile)
	if err != nil {
		log.Fatal(errors.Prettify(errors.Wrap(err, "read config", nil)))
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	flier := app.NewApp(config)
	if err := flier.Boot(ctx); err != nil {
		cancel()
		_, _ = fmt.Fprintln(os.Stderr, errors.Prettify(err))
		os.Exit(1)
	}
}
