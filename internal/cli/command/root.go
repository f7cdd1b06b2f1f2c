package command

import (
	"github.com/urfave/cli/v2"

	"github.com/okvist/syncbridge/internal/config"
	"github.com/okvist/syncbridge/internal/infra/buildinfo"
	"github.com/okvist/syncbridge/internal/infra/confloader"
	"github.com/okvist/syncbridge/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "syncbridge",
		Usage:   "perform asynchronous HTTP operations as blocking calls",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			FetchCommand(),
			VersionCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (YAML)",
			EnvVars: []string{"SYNCBRIDGE_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// loadConfig loads and verifies the configuration for a command run.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	var opts []confloader.Option
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger installs the global logger per configuration and flags.
func setupLogger(c *cli.Context, cfg *config.Config) (logger.Logger, error) {
	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}

	l, err := logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(l)
	return l, nil
}
