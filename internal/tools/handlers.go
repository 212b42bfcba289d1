package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/smazurov/lednode/internal/pattern"
)

func turnOnLedTool() mcp.Tool {
	colors := pattern.Colors()
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	return mcp.NewTool("turn_on_led",
		mcp.WithDescription("Turn on a single LED by color. The other three LEDs are turned off."),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Description("LED color to turn on"),
			mcp.Enum(names...),
		),
	)
}

func (r *Registry) handleTurnOnLed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	color, err := req.RequireString("color")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := pattern.ForColor(pattern.Color(color))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	applied, errResult := r.setPattern(ctx, "turn_on_led", p)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Turned on the %s LED (pattern %s)", strings.ToLower(color), applied)), nil
}

func turnOffLedsTool() mcp.Tool {
	return mcp.NewTool("turn_off_leds",
		mcp.WithDescription("Turn off all four LEDs."),
	)
}

func (r *Registry) handleTurnOffLeds(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, errResult := r.setPattern(ctx, "turn_off_leds", pattern.AllOff()); errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText("Turned off all LEDs"), nil
}

func setLedPatternTool() mcp.Tool {
	return mcp.NewTool("set_led_pattern",
		mcp.WithDescription("Set the raw 4-bit LED pattern. Digits map to red, yellow, green, blue in order; '1' is on."),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Four binary digits, e.g. \"1010\""),
			mcp.Pattern("^[01]{4}$"),
		),
	)
}

func (r *Registry) handleSetLedPattern(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := pattern.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	applied, errResult := r.setPattern(ctx, "set_led_pattern", p)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Set LED pattern to %s (%s)", applied, applied.Describe())), nil
}

func setMoodTool() mcp.Tool {
	return mcp.NewTool("set_mood",
		mcp.WithDescription("Set the LEDs to a named mood pattern."),
		mcp.WithString("mood",
			mcp.Required(),
			mcp.Description("Mood name"),
			mcp.Enum(pattern.Moods()...),
		),
	)
}

func (r *Registry) handleSetMood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mood, err := req.RequireString("mood")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := pattern.ForMood(mood)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	applied, errResult := r.setPattern(ctx, "set_mood", p)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Set mood to %s (pattern %s)", strings.ToLower(mood), applied)), nil
}

func getLedStatusTool() mcp.Tool {
	return mcp.NewTool("get_led_status",
		mcp.WithDescription("Read the current LED pattern from the device controller."),
	)
}

func (r *Registry) handleGetLedStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := r.getStatus(ctx, "get_led_status")
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Current LED pattern: %s (%s)", p, p.Describe())), nil
}
