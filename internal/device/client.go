// Package device is the HTTP client for the LED device controller.
// It covers the controller's two operations, status read and pattern
// write, and normalizes transport failures into coded errors.
package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smazurov/lednode/internal/logging"
	"github.com/smazurov/lednode/internal/pattern"
)

// DefaultTimeout bounds each controller call so a hung device cannot
// block the bridge indefinitely.
const DefaultTimeout = 5 * time.Second

// Client is an HTTP client for the LED device controller API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// statusResponse is the controller's GET /status payload.
type statusResponse struct {
	Pattern string `json:"pattern"`
}

// setRequest is the controller's POST /setLedStatus request body.
type setRequest struct {
	Pattern string `json:"pattern"`
}

// NewClient creates a device controller client. A zero timeout falls
// back to DefaultTimeout; calls are never unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.GetLogger("device"),
	}
}

// BaseURL returns the controller endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetStatus fetches the current LED pattern from the controller.
func (c *Client) GetStatus(ctx context.Context) (pattern.Pattern, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return "", newError(ErrCodeProtocol, "failed to create status request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(ErrCodeUnreachable, "failed to reach device controller", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newError(ErrCodeProtocol,
			fmt.Sprintf("status request rejected with status %d", resp.StatusCode), nil)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", newError(ErrCodeProtocol, "failed to decode status response", err)
	}

	p, err := pattern.Parse(status.Pattern)
	if err != nil {
		return "", newError(ErrCodeProtocol, "device reported an invalid pattern", err)
	}

	c.logger.Debug("Fetched device status", "pattern", p.String())
	return p, nil
}

// SetPattern writes a pattern to the controller. It returns the pattern
// the device echoed back when the response carries one, otherwise the
// requested pattern. A single attempt is made; failures surface
// immediately to the caller.
func (c *Client) SetPattern(ctx context.Context, p pattern.Pattern) (pattern.Pattern, error) {
	data, err := json.Marshal(setRequest{Pattern: p.String()})
	if err != nil {
		return "", newError(ErrCodeProtocol, "failed to marshal pattern request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/setLedStatus", bytes.NewReader(data))
	if err != nil {
		return "", newError(ErrCodeProtocol, "failed to create pattern request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(ErrCodeUnreachable, "failed to reach device controller", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newError(ErrCodeProtocol,
			fmt.Sprintf("pattern rejected with status %d", resp.StatusCode), nil)
	}

	// Prefer the device-confirmed pattern when the write response echoes
	// one; fall back to the requested pattern otherwise.
	applied := p
	var echo statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&echo); err == nil && echo.Pattern != "" {
		if confirmed, parseErr := pattern.Parse(echo.Pattern); parseErr == nil {
			applied = confirmed
		}
	}

	c.logger.Debug("Applied device pattern", "pattern", applied.String())
	return applied, nil
}
