package location

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/config"
)

// Engine orchestrates the autocomplete client and the place resolver to
// turn a Mention into an Outcome. It performs no retries: upstream
// failures propagate as errors so callers never confuse an unavailable
// service with a place that does not exist.
type Engine struct {
	autocomplete *AutocompleteClient
	places       *PlaceClient
	logger       *slog.Logger
}

// NewEngine creates a resolution engine with fresh upstream clients.
func NewEngine(cfg *config.Settings, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		autocomplete: NewAutocompleteClient(cfg, logger),
		places:       NewPlaceClient(cfg, logger),
		logger:       logger.With("component", "location-engine"),
	}
}

// Resolve turns a mention into an outcome:
//
//   - A mention carrying a place identifier is looked up directly. An
//     unknown or expired identifier yields a not-found outcome.
//   - Raw text goes through autocomplete. Zero candidates is not-found;
//     exactly one candidate is resolved immediately so an unambiguous
//     input costs the conversation no extra round; two or more
//     candidates are returned for disambiguation in upstream order.
//
// An empty mention returns ErrEmptyQuery before any network call.
func (e *Engine) Resolve(ctx context.Context, m Mention) (Outcome, error) {
	if m.PlaceID != "" {
		return e.resolveID(ctx, m.PlaceID)
	}

	candidates, err := e.autocomplete.Suggest(ctx, m.Text)
	if err != nil {
		return Outcome{}, err
	}

	switch len(candidates) {
	case 0:
		e.logger.Warn("no candidates for mention", "query", m.Text)
		return Outcome{Status: StatusNotFound}, nil
	case 1:
		e.logger.Debug("single candidate, resolving directly",
			"query", m.Text,
			"place_id", candidates[0].PlaceID)
		return e.resolveID(ctx, candidates[0].PlaceID)
	default:
		e.logger.Info("multiple candidates, disambiguation required",
			"query", m.Text,
			"count", len(candidates))
		return Outcome{Status: StatusNeedsDisambiguation, Candidates: candidates}, nil
	}
}

func (e *Engine) resolveID(ctx context.Context, placeID string) (Outcome, error) {
	loc, err := e.places.Lookup(ctx, placeID)
	if errors.Is(err, ErrPlaceNotFound) {
		return Outcome{Status: StatusNotFound}, nil
	}
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Status: StatusResolved, Location: loc}, nil
}
