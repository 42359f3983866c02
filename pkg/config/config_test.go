package config

import (
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, s *Settings)
	}{
		{
			name:    "missing API key",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "defaults",
			env:  map[string]string{EnvPlacesAPIKey: "test-key"},
			check: func(t *testing.T, s *Settings) {
				if s.PlacesAPIKey != "test-key" {
					t.Errorf("PlacesAPIKey = %q, want %q", s.PlacesAPIKey, "test-key")
				}
				if s.AutocompleteURL != DefaultAutocompleteURL {
					t.Errorf("AutocompleteURL = %q, want default", s.AutocompleteURL)
				}
				if s.SearchURL != DefaultSearchURL {
					t.Errorf("SearchURL = %q, want default", s.SearchURL)
				}
				if s.ResolveTimeout != DefaultResolveTimeout {
					t.Errorf("ResolveTimeout = %v, want %v", s.ResolveTimeout, DefaultResolveTimeout)
				}
				if s.BookingTimeout != DefaultBookingTimeout {
					t.Errorf("BookingTimeout = %v, want %v", s.BookingTimeout, DefaultBookingTimeout)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				EnvPlacesAPIKey:    "test-key",
				EnvAutocompleteURL: "http://localhost:9001/autocomplete",
				EnvSearchURL:       "http://localhost:9002/search",
				EnvResolveTimeout:  "5",
			},
			check: func(t *testing.T, s *Settings) {
				if s.AutocompleteURL != "http://localhost:9001/autocomplete" {
					t.Errorf("AutocompleteURL = %q, want override", s.AutocompleteURL)
				}
				if s.SearchURL != "http://localhost:9002/search" {
					t.Errorf("SearchURL = %q, want override", s.SearchURL)
				}
				if s.ResolveTimeout != 5*time.Second {
					t.Errorf("ResolveTimeout = %v, want 5s", s.ResolveTimeout)
				}
			},
		},
		{
			name: "bad timeout falls back to default",
			env: map[string]string{
				EnvPlacesAPIKey:   "test-key",
				EnvResolveTimeout: "not-a-number",
			},
			check: func(t *testing.T, s *Settings) {
				if s.ResolveTimeout != DefaultResolveTimeout {
					t.Errorf("ResolveTimeout = %v, want default", s.ResolveTimeout)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Isolate from the host environment.
			t.Setenv(EnvPlacesAPIKey, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			s, err := FromEnv()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}
