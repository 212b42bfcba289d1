package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/smazurov/lednode/internal/device"
	"github.com/smazurov/lednode/internal/logging"
	"github.com/smazurov/lednode/internal/pattern"
	"github.com/spf13/cobra"
)

// CreateSetCmd creates the set command.
func CreateSetCmd() *cobra.Command {
	var deviceURL string
	var timeout time.Duration
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "set <pattern|color|mood|off>",
		Short: "Write an LED pattern to the device controller",
		Long: `Resolves the argument to a 4-bit LED pattern and writes it to the device ` +
			`controller. Accepts a raw pattern ("1010"), a color name ("green"), a mood ` +
			`name ("calm"), or "off" to turn all LEDs off.`,
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			loggingConfig := logging.Config{
				Level:  "warn",
				Format: "text",
			}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)
			logger := logging.GetLogger("cli")

			p, err := resolveTarget(args[0])
			if err != nil {
				logger.Error("Invalid target", "target", args[0], "error", err)
				os.Exit(1)
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			client := device.NewClient(deviceURL, timeout)
			applied, err := client.SetPattern(ctx, p)
			if err != nil {
				logger.Error("Pattern write failed", "url", deviceURL, "pattern", p.String(), "error", err)
				os.Exit(1)
			}

			fmt.Printf("%s (%s)\n", applied, applied.Describe())
		},
	}

	cmd.Flags().StringVar(&deviceURL, "device-url", "http://localhost:5000", "Device controller base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", device.DefaultTimeout, "Device request timeout")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Use JSON log format")

	return cmd
}

// resolveTarget maps the CLI argument to a pattern, trying in order:
// "off", a raw 4-bit pattern, a color name, then a mood name.
func resolveTarget(target string) (pattern.Pattern, error) {
	if strings.EqualFold(target, "off") {
		return pattern.AllOff(), nil
	}
	if p, err := pattern.Parse(target); err == nil {
		return p, nil
	}
	if p, err := pattern.ForColor(pattern.Color(target)); err == nil {
		return p, nil
	}
	if p, err := pattern.ForMood(target); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("%q is not a pattern, color, mood, or \"off\"", target)
}
