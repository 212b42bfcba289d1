package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/mark3labs/mcp-go/server"
	"github.com/smazurov/lednode/cmd"
	"github.com/smazurov/lednode/internal/config"
	"github.com/smazurov/lednode/internal/device"
	"github.com/smazurov/lednode/internal/events"
	"github.com/smazurov/lednode/internal/logging"
	"github.com/smazurov/lednode/internal/metrics"
	"github.com/smazurov/lednode/internal/tools"
	"github.com/smazurov/lednode/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"lednode.toml"`

	// Device controller settings
	DeviceEndpoint string `help:"Device controller base URL" default:"http://localhost:5000" toml:"device.url" env:"DEVICE_URL"`
	DeviceTimeout  string `help:"Device request timeout" default:"5s" toml:"device.timeout" env:"DEVICE_TIMEOUT"`

	// Transport settings
	Transport string `help:"MCP transport (stdio, http)" default:"stdio" toml:"transport" env:"TRANSPORT"`
	Listen    string `help:"HTTP transport listen address" default:":8090" toml:"listen" env:"LISTEN"`

	// Metrics settings
	MetricsListen string `help:"Prometheus metrics listen address (empty disables)" default:"" toml:"metrics.listen" env:"METRICS_LISTEN"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingDevice string `help:"Device client logging level" default:"info" toml:"logging.device" env:"LOGGING_DEVICE"`
	LoggingTools  string `help:"Tool dispatch logging level" default:"info" toml:"logging.tools" env:"LOGGING_TOOLS"`
}

func main() {
	// Create Huma CLI. The callback runs inside cli.Run() after flag
	// parsing, so cli.Root() is assigned by the time it is read.
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration; the root command marks flags explicitly set
		// on the CLI so they win over env vars and the config file
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system. Output goes to stderr and the journal;
		// stdout carries the stdio transport's wire.
		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"device": opts.LoggingDevice,
				"tools":  opts.LoggingTools,
			},
		})

		logger := logging.GetLogger("main")

		timeout, parseErr := time.ParseDuration(opts.DeviceTimeout)
		if parseErr != nil || timeout <= 0 {
			logger.Warn("Invalid device timeout, using default",
				"timeout", opts.DeviceTimeout, "default", device.DefaultTimeout)
			timeout = device.DefaultTimeout
		}

		// Event bus connects tool handlers to the metrics recorder
		eventBus := events.New()
		recorder := metrics.NewRecorder(eventBus)

		deviceClient := device.NewClient(opts.DeviceEndpoint, timeout)
		registry := tools.NewRegistry(deviceClient, eventBus)

		srv := server.NewMCPServer("lednode", version.String(),
			server.WithToolCapabilities(false))
		registry.Install(srv)

		// Config watcher hot-reloads logging levels and the device endpoint
		var watcher *config.Watcher
		if _, statErr := os.Stat(opts.Config); statErr == nil {
			watcher = config.NewWatcher(opts.Config, logger)
			watcher.OnReload(func(s config.Settings) {
				logging.UpdateLevels(s.LoggingConfig())
				if s.Device.URL != "" && s.Device.URL != deviceClient.BaseURL() {
					logger.Info("Device endpoint changed", "url", s.Device.URL)
					deviceClient = device.NewClient(s.Device.URL, s.DeviceTimeout(timeout))
					registry.SetDevice(deviceClient)
				}
			})
		}

		var metricsServer *http.Server
		if opts.MetricsListen != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.HTTPHandler())
			metricsServer = &http.Server{
				Addr:              opts.MetricsListen,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
		}

		var httpServer *server.StreamableHTTPServer

		hooks.OnStart(func() {
			if watcher != nil {
				if startErr := watcher.Start(); startErr != nil {
					logger.Warn("Failed to start config watcher, hot-reload disabled", "error", startErr)
				}
			}

			if metricsServer != nil {
				go func() {
					logger.Info("Starting metrics listener", "addr", opts.MetricsListen)
					if serveErr := metricsServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
						logger.Error("Metrics listener failed", "error", serveErr)
					}
				}()
			}

			switch opts.Transport {
			case "http":
				httpServer = server.NewStreamableHTTPServer(srv)
				logger.Info("Starting MCP HTTP transport", "addr", opts.Listen, "device", opts.DeviceEndpoint)
				if serveErr := httpServer.Start(opts.Listen); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
					logger.Error("HTTP transport failed", "error", serveErr)
					os.Exit(1)
				}
			case "stdio":
				logger.Info("Starting MCP stdio transport", "device", opts.DeviceEndpoint)
				if serveErr := server.ServeStdio(srv); serveErr != nil && !errors.Is(serveErr, context.Canceled) {
					logger.Error("Stdio transport failed", "error", serveErr)
					os.Exit(1)
				}
			default:
				logger.Error("Unknown transport", "transport", opts.Transport)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if httpServer != nil {
				if stopErr := httpServer.Shutdown(ctx); stopErr != nil {
					logger.Error("Error stopping HTTP transport", "error", stopErr)
				}
			}
			if metricsServer != nil {
				if stopErr := metricsServer.Shutdown(ctx); stopErr != nil {
					logger.Error("Error stopping metrics listener", "error", stopErr)
				}
			}
			if watcher != nil {
				_ = watcher.Stop()
			}
			recorder.Stop()
		})
	})

	// Add one-shot device commands
	cli.Root().AddCommand(cmd.CreateStatusCmd())
	cli.Root().AddCommand(cmd.CreateSetCmd())

	// Run the CLI
	cli.Run()
}
