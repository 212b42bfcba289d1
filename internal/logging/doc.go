// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stderr otherwise
//
// Stdout is never used: when the bridge serves MCP over stdio, stdout
// carries the JSON-RPC wire and must stay clean.
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"device": "debug",  // Per-module overrides
//			"tools":  "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("mymodule")
//	logger.Info("Starting up", "addr", addr)
//
// Module levels can be changed at runtime (used by the config watcher):
//
//	logging.UpdateLevels(newConfig)
//
// # Viewing Logs
//
// When running as a systemd service or on a system with journald:
//
//	journalctl -t lednode              # All lednode logs
//	journalctl -t lednode -f           # Follow live
//	journalctl -t lednode MODULE=device
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	device = "debug"
//	tools = "warn"
package logging
