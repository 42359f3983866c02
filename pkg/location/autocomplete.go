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

// ErrEmptyQuery is returned when a caller asks for suggestions on blank
// text. The check runs before any network call.
var ErrEmptyQuery = errors.New("location query is empty")

// AutocompleteClient wraps the text-autocomplete provider. It is a pure
// wrapper: one outbound call per invocation, no retries, no caching.
type AutocompleteClient struct {
	cfg    *config.Settings
	logger *slog.Logger
}

// NewAutocompleteClient creates an autocomplete client using the given settings.
func NewAutocompleteClient(cfg *config.Settings, logger *slog.Logger) *AutocompleteClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutocompleteClient{cfg: cfg, logger: logger.With("service", "autocomplete")}
}

// autocompleteResponse mirrors the provider's wire format.
type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		PlaceID              string `json:"place_id"`
		Description          string `json:"description"`
		StructuredFormatting struct {
			MainText string `json:"main_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}

// Suggest returns ranked place candidates for the given text. The
// provider's ordering is meaningful and is preserved verbatim. A provider
// answer of "no matches" yields an empty slice and a nil error; transport
// failures, non-success statuses and malformed payloads are errors.
func (c *AutocompleteClient) Suggest(ctx context.Context, text string) ([]Candidate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	reqURL, err := url.Parse(c.cfg.AutocompleteURL)
	if err != nil {
		return nil, fmt.Errorf("parse autocomplete URL: %w", err)
	}

	q := reqURL.Query()
	q.Set("input", text)
	q.Set("key", c.cfg.PlacesAPIKey)
	q.Set("types", "geocode|establishment")
	reqURL.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ResolveTimeout)
	defer cancel()

	req, err := upstream.NewRequest(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create autocomplete request: %w", err)
	}

	resp, err := upstream.Do(ctx, upstream.ServiceAutocomplete, req)
	if err != nil {
		return nil, fmt.Errorf("autocomplete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autocomplete service returned status %d", resp.StatusCode)
	}

	var body autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}

	switch body.Status {
	case "OK":
		// fall through to mapping
	case "ZERO_RESULTS":
		c.logger.Debug("no autocomplete matches", "query", text)
		return nil, nil
	default:
		// REQUEST_DENIED, OVER_QUERY_LIMIT and friends are provider
		// failures, not "place does not exist".
		return nil, fmt.Errorf("autocomplete service returned status %q", body.Status)
	}

	candidates := make([]Candidate, 0, len(body.Predictions))
	for _, p := range body.Predictions {
		name := p.StructuredFormatting.MainText
		if name == "" {
			name = p.Description
		}
		candidates = append(candidates, Candidate{
			PlaceID:          p.PlaceID,
			Name:             name,
			FormattedAddress: p.Description,
		})
	}

	c.logger.Info("autocomplete succeeded", "query", text, "results", len(candidates))
	return candidates, nil
}
