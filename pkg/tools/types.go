package tools

import (
	"fmt"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/cabs"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/location"
)

// DisambiguationOption is one numbered choice presented to the user when
// a location phrase matched several places.
type DisambiguationOption struct {
	OptionNumber int    `json:"option_number"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	PlaceID      string `json:"place_id"`
}

// DisambiguationPayload asks the agent to run one conversational round:
// present the options, let the user choose, then call the tool again with
// the chosen place_id on the named side.
type DisambiguationPayload struct {
	Status  string                 `json:"status"`
	Side    string                 `json:"side"`
	Query   string                 `json:"query"`
	Message string                 `json:"message"`
	Options []DisambiguationOption `json:"options"`
}

// newDisambiguationPayload shapes candidates into a numbered option list,
// preserving the upstream ranking.
func newDisambiguationPayload(side, query string, candidates []location.Candidate) DisambiguationPayload {
	options := make([]DisambiguationOption, 0, len(candidates))
	for i, c := range candidates {
		options = append(options, DisambiguationOption{
			OptionNumber: i + 1,
			Name:         c.Name,
			Address:      c.FormattedAddress,
			PlaceID:      c.PlaceID,
		})
	}

	return DisambiguationPayload{
		Status: "disambiguation_needed",
		Side:   side,
		Query:  query,
		Message: fmt.Sprintf(
			"Multiple locations found for %s: %q. Ask the user to select one option by number, "+
				"or to give a more specific location if none match. Then call search_cabs again "+
				"with the selected place_id in the %q field.",
			side, query, side+"_place_id"),
		Options: options,
	}
}

// SearchResult is the successful answer of search_cabs. Offers are passed
// through in the backend's order; an empty list is still a success and
// carries an explanatory message.
type SearchResult struct {
	Status  string               `json:"status"`
	Result  *cabs.SearchResponse `json:"result"`
	Message string               `json:"message,omitempty"`
}

// HoldResult is the successful answer of hold_cab: the reservation
// confirmation and the link where payment is completed.
type HoldResult struct {
	Status     string `json:"status"`
	BookingID  string `json:"booking_id"`
	PaymentURL string `json:"payment_url"`
	Message    string `json:"message"`
}
