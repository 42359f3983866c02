package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/config"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/testutil"
)

func testSettings(autocompleteURL, locationURL string) *config.Settings {
	return &config.Settings{
		PlacesAPIKey:    "test-key",
		AutocompleteURL: autocompleteURL,
		LocationURL:     locationURL,
		ResolveTimeout:  5 * time.Second,
		BookingTimeout:  5 * time.Second,
	}
}

// fakeUpstreams runs autocomplete and place-resolution fakes. predictions
// maps query text to suggestion lists; places maps place identifiers to
// resolved locations.
func fakeUpstreams(t *testing.T, predictions map[string][]map[string]any, places map[string]Resolved) (*config.Settings, *int, *int) {
	t.Helper()

	autocompleteHits := new(int)
	placeHits := new(int)

	autocomplete := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*autocompleteHits++
		if r.URL.Query().Get("key") == "" {
			t.Error("autocomplete request missing API key")
		}
		preds, ok := predictions[r.URL.Query().Get("input")]
		if !ok {
			json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "OK", "predictions": preds})
	}))
	t.Cleanup(autocomplete.Close)

	location := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*placeHits++
		loc, ok := places[r.URL.Query().Get("placeId")]
		if !ok {
			http.Error(w, "unknown place", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(loc)
	}))
	t.Cleanup(location.Close)

	return testSettings(autocomplete.URL, location.URL), autocompleteHits, placeHits
}

func prediction(placeID, mainText, description string) map[string]any {
	return map[string]any{
		"place_id":    placeID,
		"description": description,
		"structured_formatting": map[string]any{
			"main_text": mainText,
		},
	}
}

func TestResolveSingleCandidate(t *testing.T) {
	cfg, _, _ := fakeUpstreams(t,
		map[string][]map[string]any{
			"Koramangala": {prediction("pid-1", "Koramangala", "Koramangala, Bengaluru, Karnataka, India")},
		},
		map[string]Resolved{
			"pid-1": {Address: "Koramangala, Bengaluru", City: "Bangalore", Latitude: 12.9352, Longitude: 77.6245},
		},
	)

	e := NewEngine(cfg, testutil.DiscardLogger())
	out, err := e.Resolve(context.Background(), Mention{Text: "Koramangala"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Status != StatusResolved {
		t.Fatalf("Status = %q, want %q", out.Status, StatusResolved)
	}
	if out.Location == nil || out.Location.City != "Bangalore" {
		t.Errorf("Location = %+v, want resolved Bangalore location", out.Location)
	}
	if out.Location.PlaceID != "pid-1" {
		t.Errorf("PlaceID = %q, want %q", out.Location.PlaceID, "pid-1")
	}
}

func TestResolveMultipleCandidatesPreservesOrder(t *testing.T) {
	cfg, _, placeHits := fakeUpstreams(t,
		map[string][]map[string]any{
			"Kadugodi": {
				prediction("pid-a", "Kadugodi", "Kadugodi, Bengaluru, Karnataka, India"),
				prediction("pid-b", "Kadugodi Tree Park", "Kadugodi Tree Park, Whitefield, Bengaluru"),
				prediction("pid-c", "Kadugodi Bus Depot", "Kadugodi Bus Depot, Bengaluru"),
			},
		},
		nil,
	)

	e := NewEngine(cfg, testutil.DiscardLogger())
	out, err := e.Resolve(context.Background(), Mention{Text: "Kadugodi"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Status != StatusNeedsDisambiguation {
		t.Fatalf("Status = %q, want %q", out.Status, StatusNeedsDisambiguation)
	}

	wantOrder := []string{"pid-a", "pid-b", "pid-c"}
	if len(out.Candidates) != len(wantOrder) {
		t.Fatalf("got %d candidates, want %d", len(out.Candidates), len(wantOrder))
	}
	for i, want := range wantOrder {
		if out.Candidates[i].PlaceID != want {
			t.Errorf("Candidates[%d].PlaceID = %q, want %q", i, out.Candidates[i].PlaceID, want)
		}
	}

	// Disambiguation must not trigger any place lookup.
	if *placeHits != 0 {
		t.Errorf("place lookups = %d, want 0", *placeHits)
	}
}

func TestResolveZeroCandidates(t *testing.T) {
	cfg, _, _ := fakeUpstreams(t, nil, nil)

	e := NewEngine(cfg, testutil.DiscardLogger())
	out, err := e.Resolve(context.Background(), Mention{Text: "Nowhereville"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Status != StatusNotFound {
		t.Errorf("Status = %q, want %q", out.Status, StatusNotFound)
	}
}

func TestResolveByPlaceID(t *testing.T) {
	cfg, autocompleteHits, _ := fakeUpstreams(t, nil,
		map[string]Resolved{
			"pid-2": {Address: "HSR Layout, Bengaluru", Latitude: 12.9121, Longitude: 77.6446},
		},
	)

	e := NewEngine(cfg, testutil.DiscardLogger())
	out, err := e.Resolve(context.Background(), Mention{PlaceID: "pid-2"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Status != StatusResolved {
		t.Fatalf("Status = %q, want %q", out.Status, StatusResolved)
	}
	if out.Location.Address != "HSR Layout, Bengaluru" {
		t.Errorf("Address = %q, want HSR Layout", out.Location.Address)
	}

	// Direct identifier resolution must not call autocomplete.
	if *autocompleteHits != 0 {
		t.Errorf("autocomplete calls = %d, want 0", *autocompleteHits)
	}
}

func TestResolveStalePlaceID(t *testing.T) {
	cfg, _, _ := fakeUpstreams(t, nil, nil)

	e := NewEngine(cfg, testutil.DiscardLogger())
	out, err := e.Resolve(context.Background(), Mention{PlaceID: "expired-pid"})
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil (stale identifier is not-found, not failure)", err)
	}
	if out.Status != StatusNotFound {
		t.Errorf("Status = %q, want %q", out.Status, StatusNotFound)
	}
}

func TestResolveIdempotentForSameID(t *testing.T) {
	cfg, _, _ := fakeUpstreams(t, nil,
		map[string]Resolved{
			"pid-3": {Address: "Indiranagar, Bengaluru", Latitude: 12.9719, Longitude: 77.6412},
		},
	)

	e := NewEngine(cfg, testutil.DiscardLogger())
	first, err := e.Resolve(context.Background(), Mention{PlaceID: "pid-3"})
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := e.Resolve(context.Background(), Mention{PlaceID: "pid-3"})
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if *first.Location != *second.Location {
		t.Errorf("repeated resolution differs: %+v vs %+v", first.Location, second.Location)
	}
}

func TestResolveEmptyMention(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for an empty mention")
	}))
	defer srv.Close()

	e := NewEngine(testSettings(srv.URL, srv.URL), testutil.DiscardLogger())
	if _, err := e.Resolve(context.Background(), Mention{Text: "   "}); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Resolve() error = %v, want ErrEmptyQuery", err)
	}
}

func TestResolveUpstreamFailureIsNotNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "HTTP 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "provider REQUEST_DENIED",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"status": "REQUEST_DENIED"})
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "not json")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			e := NewEngine(testSettings(srv.URL, srv.URL), testutil.DiscardLogger())
			out, err := e.Resolve(context.Background(), Mention{Text: "Koramangala"})
			if err == nil {
				t.Fatalf("Resolve() = %+v, want error", out)
			}
			if out.Status == StatusNotFound {
				t.Error("upstream failure must not surface as not-found")
			}
		})
	}
}

func TestSingleCandidateResolutionFailurePropagates(t *testing.T) {
	// Autocomplete yields one candidate, but the place lookup blows up.
	autocomplete := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":      "OK",
			"predictions": []map[string]any{prediction("pid-x", "Somewhere", "Somewhere, Bengaluru")},
		})
	}))
	defer autocomplete.Close()

	location := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer location.Close()

	e := NewEngine(testSettings(autocomplete.URL, location.URL), testutil.DiscardLogger())
	if _, err := e.Resolve(context.Background(), Mention{Text: "Somewhere"}); err == nil {
		t.Error("Resolve() expected error when place lookup fails")
	}
}
