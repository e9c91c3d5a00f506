package main

import (
	"context"
	"os"

	"github.com/desertthunder/refresh/internal/shared"
	"github.com/desertthunder/refresh/internal/ui"
	"github.com/urfave/cli/v3"
)

const configPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}

	logger = shared.NewRunLogger(nil, config)

	runner := NewRunner(RunnerOpts{
		Config:      config,
		Logger:      logger,
		Output:      os.Stdout,
		Input:       os.Stdin,
		Interactive: ui.IsTerminal(os.Stdout),
	})

	app := &cli.Command{
		Name:      "refresh",
		Usage:     "Find replacements for unavailable videos in a YouTube playlist",
		ArgsUsage: "<playlist-url>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "playlist",
			},
		},
		Action:   runner.Refresh,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   configPath,
			},
		},
		Action: r.InitConfig,
	}
}
