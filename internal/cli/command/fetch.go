package command

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/okvist/syncbridge/internal/config"
	"github.com/okvist/syncbridge/internal/core/bridge"
	"github.com/okvist/syncbridge/internal/core/marker"
	"github.com/okvist/syncbridge/internal/infra/confloader"
	"github.com/okvist/syncbridge/internal/infra/shutdown"
	"github.com/okvist/syncbridge/internal/netexec"
	"github.com/okvist/syncbridge/internal/telemetry/logger"
	"github.com/okvist/syncbridge/internal/telemetry/metric"
)

// FetchCommand returns the fetch command.
func FetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Synchronously fetch a URL",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "method",
				Aliases: []string{"X"},
				Usage:   "HTTP method",
				Value:   http.MethodGet,
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Request body",
			},
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "Content-Type for the request body",
				Value: "application/json",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "Abort the call after this long (0 aborts immediately)",
			},
			&cli.StringFlag{
				Name:  "default",
				Usage: "Value printed when the call is stopped before any outcome is captured",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Expose Prometheus metrics on this address while the call runs",
			},
		},
		Action: runFetch,
	}
}

func runFetch(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: syncbridge fetch [flags] <url>", 2)
	}
	url := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("config: %v", err), 1)
	}
	log, err := setupLogger(c, cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("logger: %v", err), 1)
	}

	if path := c.String("config"); path != "" {
		if stopWatch := watchLogLevel(path, log); stopWatch != nil {
			defer stopWatch()
		}
	}

	reg := metric.NewRegistry()
	if addr := c.String("metrics-addr"); addr != "" {
		_, stopMetrics, err := serveMetrics(addr, reg, log)
		if err != nil {
			return cli.Exit(fmt.Sprintf("metrics: %v", err), 1)
		}
		defer stopMetrics()
	}

	b := newBridge(cfg, log, reg)

	ctx, stop := shutdown.Context(c.Context)
	defer stop()

	timeout := c.Duration("timeout")
	if !c.IsSet("timeout") {
		timeout = cfg.Bridge.DefaultTimeout
	}
	if c.IsSet("timeout") || timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req := &bridge.Request{
		Method: c.String("method"),
		URL:    url,
	}
	if data := c.String("data"); data != "" {
		req.Body = []byte(data)
		req.Header = http.Header{}
		req.Header.Set("Content-Type", c.String("content-type"))
	}

	res, err := b.Do(ctx, req)
	if err != nil {
		return cli.Exit(fmt.Sprintf("fetch: %v", err), 1)
	}

	if res == nil {
		if c.IsSet("default") {
			fmt.Fprintln(c.App.Writer, c.String("default"))
			return nil
		}
		return cli.Exit("fetch: operation stopped before completion", 1)
	}
	if res.Err != nil {
		return cli.Exit(fmt.Sprintf("fetch: %v", res.Err), 1)
	}

	fmt.Fprintf(c.App.Writer, "%s", res.Payload)
	if res.Status >= 400 {
		return cli.Exit(fmt.Sprintf("fetch: request failed with status %d", res.Status), 1)
	}
	return nil
}

// newBridge assembles the bridge stack from configuration.
func newBridge(cfg *config.Config, log logger.Logger, reg *metric.Registry) *bridge.Bridge {
	exec := netexec.New(
		netexec.WithUserAgent(cfg.HTTP.UserAgent),
		netexec.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
		netexec.WithRateLimit(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst),
		netexec.WithLogger(log),
	)

	storeOpts := []marker.Option{
		marker.WithLogger(log),
		marker.WithMetrics(reg),
	}
	if cfg.Bridge.MarkerDir != "" {
		storeOpts = append(storeOpts, marker.WithBaseDir(cfg.Bridge.MarkerDir))
	}

	return bridge.New(exec,
		bridge.WithStore(marker.New(storeOpts...)),
		bridge.WithPollInterval(cfg.Bridge.PollInterval),
		bridge.WithLogger(log),
		bridge.WithMetrics(reg),
	)
}

// serveMetrics exposes the registry over HTTP for the duration of the
// run. Returns the bound address and a stop function that closes the
// listener.
func serveMetrics(addr string, reg *metric.Registry, log logger.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{Handler: mux}
	go srv.Serve(ln)

	log.Info("metrics exposed", "addr", ln.Addr().String())
	return ln.Addr().String(), func() { srv.Close() }, nil
}

// watchLogLevel reloads the log level when the config file changes.
// Returns a stop function, or nil when the watcher could not start
// (non-fatal: the fetch proceeds with the level loaded at startup).
func watchLogLevel(path string, log logger.Logger) func() {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		log.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil
	}

	w.OnChange(func(changed string) {
		cfg := config.Default()
		if err := confloader.NewLoader(confloader.WithConfigFile(path)).Load(cfg); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if err := config.Verify(cfg); err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Debug("log level reloaded", "level", cfg.Log.Level)
	})
	w.StartAsync()

	return func() { w.Stop() }
}
