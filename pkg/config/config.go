// Package config holds the runtime settings for the cab MCP server.
// Settings are read from the environment once at startup; the autocomplete
// API key is mandatory and its absence is a fatal startup condition rather
// than a per-call error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default upstream endpoints. Each can be overridden through the
// environment, which the tests use to point the clients at local fakes.
const (
	DefaultAutocompleteURL = "https://maps.googleapis.com/maps/api/place/autocomplete/json"
	DefaultLocationURL     = "http://cabs-search.ecs.mmt/google/v2/location/legacy"
	DefaultSearchURL       = "http://10.212.94.147:1077/cabs/mcp/search"
	DefaultHoldURL         = "http://10.212.94.147:1072/cabs/mcp/hold"

	// DefaultResolveTimeout bounds each location upstream call.
	DefaultResolveTimeout = 10 * time.Second

	// DefaultBookingTimeout bounds each cab backend call.
	DefaultBookingTimeout = 30 * time.Second
)

// Environment variable names.
const (
	EnvPlacesAPIKey    = "GOOGLE_PLACES_API_KEY"
	EnvAutocompleteURL = "PLACES_AUTOCOMPLETE_URL"
	EnvLocationURL     = "LOCATION_API_URL"
	EnvSearchURL       = "CABS_SEARCH_URL"
	EnvHoldURL         = "CABS_HOLD_URL"
	EnvResolveTimeout  = "RESOLVE_TIMEOUT_SECONDS"
	EnvBookingTimeout  = "BOOKING_TIMEOUT_SECONDS"
)

// Settings carries the resolved configuration for all upstream services.
type Settings struct {
	// PlacesAPIKey authenticates autocomplete requests. Required.
	PlacesAPIKey string

	AutocompleteURL string
	LocationURL     string
	SearchURL       string
	HoldURL         string

	ResolveTimeout time.Duration
	BookingTimeout time.Duration
}

// FromEnv builds Settings from the process environment. It returns an
// error when the autocomplete API key is missing so callers can refuse
// to start instead of failing on the first tool call.
func FromEnv() (*Settings, error) {
	key := os.Getenv(EnvPlacesAPIKey)
	if key == "" {
		return nil, fmt.Errorf("%s is not set; the autocomplete service cannot be used without it", EnvPlacesAPIKey)
	}

	s := &Settings{
		PlacesAPIKey:    key,
		AutocompleteURL: envOrDefault(EnvAutocompleteURL, DefaultAutocompleteURL),
		LocationURL:     envOrDefault(EnvLocationURL, DefaultLocationURL),
		SearchURL:       envOrDefault(EnvSearchURL, DefaultSearchURL),
		HoldURL:         envOrDefault(EnvHoldURL, DefaultHoldURL),
		ResolveTimeout:  envDuration(EnvResolveTimeout, DefaultResolveTimeout),
		BookingTimeout:  envDuration(EnvBookingTimeout, DefaultBookingTimeout),
	}
	return s, nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// envDuration reads a whole number of seconds from the environment,
// falling back to def when unset or unparseable.
func envDuration(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}
