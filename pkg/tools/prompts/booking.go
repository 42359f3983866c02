// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterBookingPrompts registers all cab booking prompts with the MCP server
func RegisterBookingPrompts(s *server.MCPServer) {
	// Register the main booking flow prompt
	s.AddPrompt(mcp.NewPrompt("cab_booking",
		mcp.WithPromptDescription("Instructions for properly using the cab booking tools"),
	), BookingPromptHandler)

	// Register examples for search_cabs
	s.AddPrompt(mcp.NewPrompt("search_cabs_examples",
		mcp.WithPromptDescription("Examples of properly driving a cab search, including disambiguation rounds"),
	), SearchCabsExamplesHandler)

	// Register examples for hold_cab
	s.AddPrompt(mcp.NewPrompt("hold_cab_examples",
		mcp.WithPromptDescription("Examples of properly reserving a cab after a search"),
	), HoldCabExamplesHandler)
}

// BookingPromptHandler returns the main prompt for the cab booking tools
func BookingPromptHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	systemPrompt := `You have access to cab booking tools: search_cabs finds offers between two
locations, hold_cab reserves a chosen offer. When using these tools:

1. Never assume or default the source, destination, date, time, or any passenger detail.
   Every one of them must come explicitly from the user.
2. A search_cabs response with status "disambiguation_needed" is not an error. Present the
   numbered options to the user, let them choose, then call search_cabs again with the chosen
   place_id in the field the response names (source_place_id or destination_place_id).
3. A response with kind "not_found" means the place does not exist as phrased; ask the user
   for a more specific location. A response with kind "upstream_unavailable" means a service
   is down; suggest trying again shortly. Never treat one as the other.
4. Carry the searchId, cabId, categoryId and the confirmed place_id values forward yourself;
   the server keeps no state between calls.
5. hold_cab needs full passenger details: first name, gender (M/F/O), email and a 10-digit
   mobile number. Collect them before calling.
6. After a successful hold, give the user the payment URL; payment happens in the browser,
   not through these tools.`

	return mcp.NewGetPromptResult(
		"Cab Booking Tool Usage Guidelines",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(systemPrompt),
			),
		},
	), nil
}

// SearchCabsExamplesHandler returns examples for search_cabs
func SearchCabsExamplesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	examplesPrompt := `EXAMPLES OF EFFECTIVE SEARCH_CABS USAGE:

User: "I need a cab from Koramangala to the airport tomorrow at 10:30 AM"
AI: *uses search_cabs with source "Koramangala", destination "Kempegowda Airport",
    the user's stated date, time "10:30 AM"*

DISAMBIGUATION PATTERN:
1. search_cabs for source "Kadugodi" returns status "disambiguation_needed" with 3 options
2. Present the options to the user as a numbered list
3. User picks option 2
4. Call search_cabs again with the same arguments plus source_place_id set to option 2's place_id
5. Present the returned offers with fares and cab types

EMPTY RESULT PATTERN:
A status "ok" response with zero cabs means the route is valid but nothing is available.
Tell the user and suggest a different time; do not treat it as a failure.`

	return mcp.NewGetPromptResult(
		"Search Cabs Examples",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(examplesPrompt),
			),
		},
	), nil
}

// HoldCabExamplesHandler returns examples for hold_cab
func HoldCabExamplesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	examplesPrompt := `EXAMPLES OF EFFECTIVE HOLD_CAB USAGE:

User: "Book the Dzire for me. I'm Asha Rao, asha@example.com, 9876543210, female"
AI: *uses hold_cab with the searchId/cabId/categoryId of the Dzire offer from the last
    search_cabs result, the confirmed source and destination place_id values, the trip
    date and time, first_name "Asha", last_name "Rao", gender "F", the email and mobile*

ERROR CORRECTION PATTERN:
1. A kind "validation" response names the bad field; ask the user to correct just that field
2. A kind "backend_rejected" response with reason "offer expired" means the offer lapsed;
   run search_cabs again and let the user pick a fresh offer
3. Never retry an identical hold_cab call after a rejection`

	return mcp.NewGetPromptResult(
		"Hold Cab Examples",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(examplesPrompt),
			),
		},
	), nil
}
