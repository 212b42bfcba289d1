// Package tools registers the LED tools on the MCP server and dispatches
// their calls to the device controller.
package tools

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/smazurov/lednode/internal/device"
	"github.com/smazurov/lednode/internal/events"
	"github.com/smazurov/lednode/internal/logging"
	"github.com/smazurov/lednode/internal/pattern"
)

// DeviceClient is the controller surface the handlers need.
// *device.Client satisfies it; tests substitute a fake.
type DeviceClient interface {
	GetStatus(ctx context.Context) (pattern.Pattern, error)
	SetPattern(ctx context.Context, p pattern.Pattern) (pattern.Pattern, error)
}

// Registry owns the tool handlers and their shared state. A single mutex
// serializes dispatch: the controller handles one request at a time.
type Registry struct {
	mu     sync.Mutex
	device DeviceClient
	bus    *events.Bus
	logger *slog.Logger
}

// NewRegistry creates a tool registry backed by the given device client.
func NewRegistry(dev DeviceClient, bus *events.Bus) *Registry {
	return &Registry{
		device: dev,
		bus:    bus,
		logger: logging.GetLogger("tools"),
	}
}

// SetDevice swaps the device client. Used when the config watcher reports
// a new controller endpoint.
func (r *Registry) SetDevice(dev DeviceClient) {
	r.mu.Lock()
	r.device = dev
	r.mu.Unlock()
}

// Install registers all five LED tools on the MCP server.
func (r *Registry) Install(srv *server.MCPServer) {
	srv.AddTool(turnOnLedTool(), r.handleTurnOnLed)
	srv.AddTool(turnOffLedsTool(), r.handleTurnOffLeds)
	srv.AddTool(setLedPatternTool(), r.handleSetLedPattern)
	srv.AddTool(setMoodTool(), r.handleSetMood)
	srv.AddTool(getLedStatusTool(), r.handleGetLedStatus)
}

// setPattern performs the serialized device write shared by the three
// pattern-writing tools. A non-nil result is an IsError tool result.
func (r *Registry) setPattern(ctx context.Context, tool string, p pattern.Pattern) (pattern.Pattern, *mcp.CallToolResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	applied, err := r.device.SetPattern(ctx, p)
	if err != nil {
		r.logger.Warn("Device write failed", "tool", tool, "pattern", p.String(), "error", err)
		r.bus.Publish(events.DeviceCallFailedEvent{
			Tool:      tool,
			Operation: "set",
			Code:      device.CodeOf(err),
			Error:     err.Error(),
		})
		return "", mcp.NewToolResultError(err.Error())
	}

	r.logger.Info("Pattern applied", "tool", tool, "pattern", applied.String())
	r.bus.Publish(events.PatternAppliedEvent{
		Tool:      tool,
		Operation: "set",
		Pattern:   applied.String(),
		Duration:  time.Since(start).Seconds(),
	})
	return applied, nil
}

// getStatus performs the serialized device read.
func (r *Registry) getStatus(ctx context.Context, tool string) (pattern.Pattern, *mcp.CallToolResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	p, err := r.device.GetStatus(ctx)
	if err != nil {
		r.logger.Warn("Device read failed", "tool", tool, "error", err)
		r.bus.Publish(events.DeviceCallFailedEvent{
			Tool:      tool,
			Operation: "get",
			Code:      device.CodeOf(err),
			Error:     err.Error(),
		})
		return "", mcp.NewToolResultError(err.Error())
	}

	r.bus.Publish(events.PatternAppliedEvent{
		Tool:      tool,
		Operation: "get",
		Pattern:   p.String(),
		Duration:  time.Since(start).Seconds(),
	})
	return p, nil
}
