// Package location implements the location resolution engine: turning a
// free-text mention or a previously chosen place identifier into a fully
// resolved, backend-ready location, or into an ordered list of candidates
// the conversational agent must disambiguate.
package location

// Mention is what the caller supplied for one side of a trip. Exactly one
// of the fields is expected to be set; when PlaceID is present it wins and
// Text is ignored.
type Mention struct {
	// Text is the raw location phrase as the user said it.
	Text string

	// PlaceID is an opaque candidate identifier from a previous
	// disambiguation round. Identifiers may expire upstream; a stale
	// identifier resolves to not-found, not to an error.
	PlaceID string
}

// Candidate is one autocomplete suggestion. Candidates are ephemeral:
// they are owned by the calling conversation and are only guaranteed
// valid within the turn that produced them.
type Candidate struct {
	PlaceID string `json:"place_id"`
	// Name is the short label of the place (the provider's main_text).
	Name string `json:"name"`
	// FormattedAddress is the full human-readable description.
	FormattedAddress string `json:"formatted_address"`
}

// Resolved is the full location object the cab backend expects, populated
// verbatim from the place-resolution service. Fields the upstream leaves
// null stay empty and are omitted from outgoing payloads.
type Resolved struct {
	Pincode       string  `json:"pincode,omitempty"`
	Country       string  `json:"country,omitempty"`
	Address       string  `json:"address,omitempty"`
	City          string  `json:"city,omitempty"`
	SecondaryText string  `json:"secondary_text,omitempty"`
	Latitude      float64 `json:"latitude"`
	IsAirport     bool    `json:"is_airport,omitempty"`
	CityCode      string  `json:"city_code,omitempty"`
	Label         string  `json:"label,omitempty"`
	CountryCode   string  `json:"country_code,omitempty"`
	IsCity        bool    `json:"is_city,omitempty"`
	GoogleCity    string  `json:"google_city,omitempty"`
	LocusV2ID     string  `json:"locusV2Id,omitempty"`
	Name          string  `json:"name,omitempty"`
	MainText      string  `json:"mainText,omitempty"`
	MainTextSnake string  `json:"main_text,omitempty"`
	State         string  `json:"state,omitempty"`
	LocusV2Type   string  `json:"locusV2Type,omitempty"`
	PlaceID       string  `json:"place_id,omitempty"`
	Longitude     float64 `json:"longitude"`
}

// Status tags the variant of an Outcome.
type Status string

const (
	// StatusResolved means the mention was resolved to a single location.
	StatusResolved Status = "resolved"

	// StatusNeedsDisambiguation means the mention matched several
	// candidates and the agent must ask the user to choose one.
	StatusNeedsDisambiguation Status = "needs_disambiguation"

	// StatusNotFound means no matching place exists for the mention,
	// or the supplied place identifier is invalid or expired.
	StatusNotFound Status = "not_found"
)

// Outcome is the result of resolving one mention. Exactly one of Location
// or Candidates is populated, depending on Status. Upstream failures are
// not outcomes; they are returned as errors so the caller can tell
// "doesn't exist" apart from "can't tell right now".
type Outcome struct {
	Status     Status
	Location   *Resolved
	Candidates []Candidate
}
