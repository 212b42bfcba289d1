package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/smazurov/lednode/internal/device"
	"github.com/smazurov/lednode/internal/logging"
	"github.com/spf13/cobra"
)

// CreateStatusCmd creates the status command.
func CreateStatusCmd() *cobra.Command {
	var deviceURL string
	var timeout time.Duration
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Read the current LED pattern from the device controller",
		Long: `Performs a single status read against the device controller and prints ` +
			`the 4-bit pattern with a human-readable description. Exits non-zero when ` +
			`the controller is unreachable or answers with an unusable response.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			loggingConfig := logging.Config{
				Level:  "warn",
				Format: "text",
			}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)
			logger := logging.GetLogger("cli")

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			client := device.NewClient(deviceURL, timeout)
			p, err := client.GetStatus(ctx)
			if err != nil {
				logger.Error("Status read failed", "url", deviceURL, "error", err)
				os.Exit(1)
			}

			fmt.Printf("%s (%s)\n", p, p.Describe())
		},
	}

	cmd.Flags().StringVar(&deviceURL, "device-url", "http://localhost:5000", "Device controller base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", device.DefaultTimeout, "Device request timeout")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Use JSON log format")

	return cmd
}
