// Package device talks to the dispenser controller over HTTP.
package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
)

// Client drives the dispenser controller.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a dispenser client from configuration.
func NewClient(cfg config.DeviceConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.NewConfigurationError("dispenser", config.EnvDeviceURL)
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// DispenseResult is the controller's report of a completed rotation.
type DispenseResult struct {
	Slot  model.Slot `json:"slot"`
	Angle int        `json:"angle"`
}

type dispenseRequest struct {
	Slot model.Slot `json:"slot"`
}

type dispenseResponse struct {
	OK    bool       `json:"ok"`
	Slot  model.Slot `json:"slot"`
	Angle int        `json:"angle"`
	Error string     `json:"error"`
}

// Dispense asks the controller to rotate to a slot. Controller errors
// come back verbatim in the UpstreamError body.
func (c *Client) Dispense(ctx context.Context, slot model.Slot) (*DispenseResult, error) {
	if !slot.IsValid() {
		return nil, errors.ErrInvalidSlot
	}

	payload, err := json.Marshal(dispenseRequest{Slot: slot})
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/api/dispense"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewConnectivityError("dispenser", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed dispenseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &errors.UpstreamError{
			Service:    "dispenser",
			Message:    "unreadable controller response",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !parsed.OK {
		msg := parsed.Error
		if msg == "" {
			msg = fmt.Sprintf("controller rejected the request (HTTP %d)", resp.StatusCode)
		}
		return nil, &errors.UpstreamError{
			Service:    "dispenser",
			Message:    msg,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return &DispenseResult{Slot: parsed.Slot, Angle: parsed.Angle}, nil
}

// Health checks that the controller is reachable and responding.
func (c *Client) Health(ctx context.Context) error {
	url := c.baseURL + "/api/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewConnectivityError("dispenser", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &errors.UpstreamError{
			Service:    "dispenser",
			Message:    "health check failed",
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}
