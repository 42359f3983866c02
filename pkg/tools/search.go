package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/cabs"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/geo"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/location"
)

// SearchCabsTool returns the tool definition for searching cabs.
func SearchCabsTool() mcp.Tool {
	return mcp.NewTool("search_cabs",
		mcp.WithDescription("Search available cabs between source and destination. "+
			"May return a disambiguation payload listing candidate locations; in that case ask "+
			"the user to pick one and call again with the chosen place_id."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Pickup location text as the user said it. Must be explicitly provided by the user, never assumed."),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Drop location text as the user said it. Must be explicitly provided by the user, never assumed."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date of journey, dd-MM-yyyy or yyyy-MM-dd. Must be explicitly provided by the user."),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Pickup time, HH:MM (24h) or H:MM AM/PM. Must be explicitly provided by the user."),
		),
		mcp.WithString("source_place_id",
			mcp.Description("Place identifier for the source, from a previous disambiguation round. When set, skips the source text search."),
		),
		mcp.WithString("destination_place_id",
			mcp.Description("Place identifier for the destination, from a previous disambiguation round. When set, skips the destination text search."),
		),
		mcp.WithNumber("passengers",
			mcp.Description("Number of passengers, if the user mentioned it."),
		),
		mcp.WithNumber("luggage",
			mcp.Description("Number of luggage pieces, if the user mentioned it."),
		),
	)
}

// HandleSearchCabs implements the search_cabs tool: it resolves both trip
// sides, short-circuits into a disambiguation or not-found answer when a
// side is unresolved, and only then calls the cab backend.
func (r *Registry) HandleSearchCabs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "search_cabs", "request_id", uuid.NewString())

	src := location.Mention{
		Text:    strings.TrimSpace(mcp.ParseString(req, "source", "")),
		PlaceID: strings.TrimSpace(mcp.ParseString(req, "source_place_id", "")),
	}
	dst := location.Mention{
		Text:    strings.TrimSpace(mcp.ParseString(req, "destination", "")),
		PlaceID: strings.TrimSpace(mcp.ParseString(req, "destination_place_id", "")),
	}

	// Validation runs before any network call.
	if src.Text == "" && src.PlaceID == "" {
		return ValidationError("Source location must not be empty.").Result(), nil
	}
	if dst.Text == "" && dst.PlaceID == "" {
		return ValidationError("Destination location must not be empty.").Result(), nil
	}

	pickupTime, err := ParsePickupTime(
		mcp.ParseString(req, "date", ""),
		mcp.ParseString(req, "time", ""),
	)
	if err != nil {
		return ValidationError(err.Error()).Result(), nil
	}

	passengers := int(mcp.ParseFloat64(req, "passengers", 0))
	luggage := int(mcp.ParseFloat64(req, "luggage", 0))
	if passengers < 0 || luggage < 0 {
		return ValidationError("Passenger and luggage counts must not be negative.").Result(), nil
	}

	logger.Info("cab search request received",
		"source", src.Text, "source_place_id", src.PlaceID,
		"destination", dst.Text, "destination_place_id", dst.PlaceID,
		"pickup_time", pickupTime)

	// The two sides are independent; resolve them concurrently. Outcome
	// checking below stays deterministic: source before destination.
	var (
		srcOut, dstOut location.Outcome
		srcErr, dstErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		srcOut, srcErr = r.engine.Resolve(ctx, src)
		return nil
	})
	g.Go(func() error {
		dstOut, dstErr = r.engine.Resolve(ctx, dst)
		return nil
	})
	_ = g.Wait()

	sides := []struct {
		name    string
		mention location.Mention
		out     location.Outcome
		err     error
	}{
		{"source", src, srcOut, srcErr},
		{"destination", dst, dstOut, dstErr},
	}

	for _, side := range sides {
		if side.err != nil {
			if errors.Is(side.err, location.ErrEmptyQuery) {
				return ValidationError(fmt.Sprintf("%s location must not be empty.", side.name)).Result(), nil
			}
			logger.Error("location resolution failed", "side", side.name, "error", side.err)
			return UpstreamError("location", side.name, GuidanceLocationUnavailable, side.err).Result(), nil
		}

		switch side.out.Status {
		case location.StatusNeedsDisambiguation:
			logger.Info("disambiguation required",
				"side", side.name,
				"query", side.mention.Text,
				"options", len(side.out.Candidates))
			return disambiguationResult(side.name, side.mention.Text, side.out.Candidates)
		case location.StatusNotFound:
			query := side.mention.Text
			if query == "" {
				query = side.mention.PlaceID
			}
			logger.Warn("location not found", "side", side.name, "query", query)
			return LocationNotFoundError(side.name, query).Result(), nil
		}
	}

	srcLoc, dstLoc := srcOut.Location, dstOut.Location

	logger.Info("both locations resolved, calling search",
		"source_address", srcLoc.Address,
		"dest_address", dstLoc.Address,
		"crow_flies_km", geo.HaversineDistanceKm(srcLoc.Latitude, srcLoc.Longitude, dstLoc.Latitude, dstLoc.Longitude))

	payload := cabs.SearchPayload{
		Source: cabs.EndpointLocation{
			Resolved:   *srcLoc,
			SourceText: srcLoc.Address,
		},
		Destination: cabs.EndpointLocation{
			Resolved:        *dstLoc,
			DestinationText: dstLoc.Address,
		},
		PickupTime:     pickupTime,
		PassengerCount: passengers,
		LuggageCount:   luggage,
	}

	resp, err := r.cabs.Search(ctx, payload)
	if err != nil {
		var rejected *cabs.RejectedError
		if errors.As(err, &rejected) {
			logger.Warn("search rejected", "status", rejected.StatusCode, "reason", rejected.Reason)
			return RejectedError("cab search", rejected.StatusCode, rejected.Reason).Result(), nil
		}
		logger.Error("search call failed", "error", err)
		return UpstreamError("cab search", "", GuidanceSearchUnavailable, err).Result(), nil
	}

	result := SearchResult{Status: "ok", Result: resp}
	if len(resp.Cabs) == 0 {
		logger.Warn("no cabs available",
			"source", srcLoc.Address,
			"destination", dstLoc.Address)
		result.Message = fmt.Sprintf(
			"No cabs available from %s to %s at the requested time. Try a different route or time.",
			srcLoc.Address, dstLoc.Address)
	}

	return jsonResult(result)
}

func disambiguationResult(side, query string, candidates []location.Candidate) (*mcp.CallToolResult, error) {
	return jsonResult(newDisambiguationPayload(side, query, candidates))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return ErrorResponse("Failed to generate result"), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
