package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/config"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/upstream"
)

// ErrPlaceNotFound is returned when the place-resolution service does not
// know the given identifier. Identifiers from a past disambiguation round
// may have expired upstream, so this is an expected condition rather than
// a service failure.
var ErrPlaceNotFound = errors.New("place not found")

// PlaceClient wraps the place-resolution service. Like the autocomplete
// wrapper it performs one outbound call per invocation with no retries
// and no caching.
type PlaceClient struct {
	cfg    *config.Settings
	logger *slog.Logger
}

// NewPlaceClient creates a place-resolution client using the given settings.
func NewPlaceClient(cfg *config.Settings, logger *slog.Logger) *PlaceClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceClient{cfg: cfg, logger: logger.With("service", "places")}
}

// Lookup resolves an opaque place identifier into the full location
// object the cab backend expects. An unknown or expired identifier yields
// ErrPlaceNotFound; any other failure is a service error.
func (c *PlaceClient) Lookup(ctx context.Context, placeID string) (*Resolved, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, ErrPlaceNotFound
	}

	reqURL, err := url.Parse(c.cfg.LocationURL)
	if err != nil {
		return nil, fmt.Errorf("parse location URL: %w", err)
	}

	q := reqURL.Query()
	q.Set("placeId", placeID)
	reqURL.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ResolveTimeout)
	defer cancel()

	req, err := upstream.NewRequest(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create location request: %w", err)
	}

	resp, err := upstream.Do(ctx, upstream.ServicePlaces, req)
	if err != nil {
		return nil, fmt.Errorf("location request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		c.logger.Warn("place identifier not known upstream", "place_id", placeID, "status", resp.StatusCode)
		return nil, ErrPlaceNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("location service returned status %d", resp.StatusCode)
	}

	var loc Resolved
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, fmt.Errorf("decode location response: %w", err)
	}

	// The upstream sometimes omits the identifier it was asked about.
	if loc.PlaceID == "" {
		loc.PlaceID = placeID
	}

	c.logger.Info("place resolved",
		"place_id", placeID,
		"address", loc.Address,
		"lat", loc.Latitude,
		"lng", loc.Longitude)
	return &loc, nil
}
