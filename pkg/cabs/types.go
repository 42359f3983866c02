// Package cabs wraps the cab backend's search and hold endpoints.
package cabs

import "github.com/jaiwanth-mmt/MCP-POC/pkg/location"

// EndpointLocation is a resolved location as the backend wants it in a
// search payload: the full location object plus the side-specific text
// field the backend reads the display string from.
type EndpointLocation struct {
	location.Resolved
	SourceText      string `json:"sourceText,omitempty"`
	DestinationText string `json:"destinationText,omitempty"`
}

// SearchPayload is the body of a cab search request.
type SearchPayload struct {
	Source      EndpointLocation `json:"source"`
	Destination EndpointLocation `json:"destination"`
	// PickupTime is epoch milliseconds.
	PickupTime     int64 `json:"pickupTime"`
	PassengerCount int   `json:"passengerCount,omitempty"`
	LuggageCount   int   `json:"luggageCount,omitempty"`
}

// Cab is one offer from the search endpoint. The fields are passed
// through to the agent as received; the backend's ordering is preserved.
type Cab struct {
	ID              string  `json:"id"`
	CategoryID      string  `json:"categoryId"`
	ModelName       string  `json:"modelName"`
	TotalFare       float64 `json:"totalFare"`
	SeatCapacity    int     `json:"seatCapacity"`
	LuggageCapacity int     `json:"luggageCapacity"`
	AC              bool    `json:"ac"`
	Rating          float64 `json:"rating"`
	FuelType        string  `json:"fuelType"`
	CabType         string  `json:"cabType"`
}

// SearchResponse is the search endpoint's answer. An empty Cabs slice is
// a valid, successful outcome distinct from any error.
type SearchResponse struct {
	SearchID                 string  `json:"searchId"`
	TotalDistanceInKm        float64 `json:"totalDistanceInKm"`
	TotalApproxDurationInMin float64 `json:"totalApproxDurationInMin"`
	CabAvailabilityTime      int64   `json:"cabAvailabilityTime"`
	Cabs                     []Cab   `json:"cabs"`
}

// PassengerDetail identifies the passenger on a hold request.
type PassengerDetail struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
}

// ContactDetails carries the passenger's contact information. Mobile is
// the normalized 10-digit national number.
type ContactDetails struct {
	EmailID     string `json:"email_id"`
	Mobile      string `json:"mobile"`
	CountryCode string `json:"country_code"`
}

// HoldPayload is the body of a cab hold request. The offer reference is
// the (searchId, categoryId, cabId) triple from a prior search response.
type HoldPayload struct {
	SearchID        string             `json:"searchId"`
	CategoryID      string             `json:"categoryId"`
	CabID           string             `json:"cabId"`
	PassengerDetail PassengerDetail    `json:"passengerDetail"`
	ContactDetails  ContactDetails     `json:"contactDetails"`
	Source          *location.Resolved `json:"source,omitempty"`
	Destination     *location.Resolved `json:"destination,omitempty"`
	PickupTime      int64              `json:"pickupTime,omitempty"`
}

// HoldResponse is a successful reservation: a booking confirmation and
// the link where payment is completed.
type HoldResponse struct {
	BookingID  string `json:"bookingId"`
	PaymentURL string `json:"paymentUrl"`
}
