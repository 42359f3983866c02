package cabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/config"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/upstream"
)

// maxReasonLen caps how much of a rejection body is carried into errors.
const maxReasonLen = 500

// RejectedError means the backend explicitly declined the request, for
// example because the held offer has expired. It carries the backend's
// stated reason so the agent can relay it instead of a generic failure.
type RejectedError struct {
	StatusCode int
	Reason     string
}

// Error implements the error interface.
func (e *RejectedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cab backend rejected the request (%d): %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("cab backend rejected the request (%d)", e.StatusCode)
}

// Client talks to the cab backend's search and hold endpoints.
type Client struct {
	cfg    *config.Settings
	logger *slog.Logger
}

// NewClient creates a cab backend client using the given settings.
func NewClient(cfg *config.Settings, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, logger: logger.With("service", "cabs")}
}

// Search posts a search payload and returns the backend's offers in the
// order received. Transport and server failures are plain errors; a 4xx
// answer is a *RejectedError carrying the backend's reason.
func (c *Client) Search(ctx context.Context, p SearchPayload) (*SearchResponse, error) {
	c.logger.Info("calling search endpoint", "pickup_time", p.PickupTime)

	var out SearchResponse
	if err := c.post(ctx, c.cfg.SearchURL, p, &out); err != nil {
		return nil, err
	}

	c.logger.Info("search response received",
		"search_id", out.SearchID,
		"cab_count", len(out.Cabs),
		"distance_km", out.TotalDistanceInKm,
		"duration_min", out.TotalApproxDurationInMin)
	return &out, nil
}

// Hold posts a hold payload and returns the reservation confirmation.
// A backend refusal (offer expired, cab unavailable) is a *RejectedError.
func (c *Client) Hold(ctx context.Context, p HoldPayload) (*HoldResponse, error) {
	c.logger.Info("calling hold endpoint",
		"search_id", p.SearchID,
		"cab_id", p.CabID,
		"category_id", p.CategoryID)

	var out HoldResponse
	if err := c.post(ctx, c.cfg.HoldURL, p, &out); err != nil {
		return nil, err
	}

	c.logger.Info("hold confirmed", "booking_id", out.BookingID)
	return &out, nil
}

func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.BookingTimeout)
	defer cancel()

	req, err := upstream.NewRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := upstream.Do(ctx, upstream.ServiceCabs, req)
	if err != nil {
		return fmt.Errorf("cab backend request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode cab backend response: %w", err)
		}
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		reason := readReason(resp.Body)
		c.logger.Warn("cab backend rejected request", "status", resp.StatusCode, "reason", reason)
		return &RejectedError{StatusCode: resp.StatusCode, Reason: reason}
	default:
		return fmt.Errorf("cab backend returned status %d", resp.StatusCode)
	}
}

// readReason extracts the backend's stated reason from a rejection body.
// The backend answers either {"message": ...} or {"error": ...}; anything
// else is used as raw text, truncated.
func readReason(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxReasonLen))
	if err != nil {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	return strings.TrimSpace(string(raw))
}
