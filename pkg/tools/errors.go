package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Kind classifies a tool-surface error so the conversational agent can
// react correctly. An unavailable upstream is never reported as a
// missing place: conflating "can't tell" with "doesn't exist" would
// mislead the agent.
type Kind string

const (
	// KindValidation is malformed caller input, rejected before any
	// network call.
	KindValidation Kind = "validation"

	// KindNotFound is a valid request for which no matching location
	// exists; the caller can recover by supplying different text.
	KindNotFound Kind = "not_found"

	// KindUpstream is a transport failure, non-success status or
	// malformed payload from an upstream service.
	KindUpstream Kind = "upstream_unavailable"

	// KindRejected is an explicit refusal by the cab backend, carrying
	// the backend's stated reason.
	KindRejected Kind = "backend_rejected"
)

// APIError describes a failed tool invocation with enough detail for the
// agent to explain it and for the user to recover.
type APIError struct {
	Service    string // upstream service name, e.g. "autocomplete", "cab search"
	StatusCode int    // HTTP status code when one exists
	Kind       Kind
	Side       string // "source" or "destination" for location errors
	Message    string
	Guidance   string // recovery guidance for the user
	Reason     string // backend-stated reason for KindRejected
}

// Error implements the error interface and provides a formatted error message.
func (e *APIError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s error (%s): %s. %s", e.Service, e.Kind, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Service, e.Kind, e.Message)
}

// Common error guidance messages
const (
	GuidanceLocationNotFound    = "Ask the user for a more specific location name, ideally with the city."
	GuidanceLocationUnavailable = "The location service is temporarily unreachable. Try again in a moment."
	GuidanceSearchUnavailable   = "The cab search service is temporarily unreachable. Try again in a moment."
	GuidanceHoldUnavailable     = "The cab reservation service is temporarily unreachable. Try again in a moment."
	GuidanceHoldRejected        = "Run search_cabs again and pick a fresh offer."
	GuidanceValidation          = "Correct the parameters and try again."
)

// errorPayload is the JSON body rendered into an error tool result.
type errorPayload struct {
	Status   string `json:"status"`
	Kind     Kind   `json:"kind"`
	Side     string `json:"side,omitempty"`
	Message  string `json:"message"`
	Guidance string `json:"guidance,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Result renders the error as a structured MCP error result.
func (e *APIError) Result() *mcp.CallToolResult {
	payload := errorPayload{
		Status:   "error",
		Kind:     e.Kind,
		Side:     e.Side,
		Message:  e.Message,
		Guidance: e.Guidance,
		Reason:   e.Reason,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(e.Error())
	}
	return mcp.NewToolResultError(string(b))
}

// ValidationError builds a KindValidation error for malformed caller input.
func ValidationError(message string) *APIError {
	return &APIError{
		Service:  "validation",
		Kind:     KindValidation,
		Message:  message,
		Guidance: GuidanceValidation,
	}
}

// LocationNotFoundError builds a KindNotFound error naming which side of
// the trip could not be matched.
func LocationNotFoundError(side, query string) *APIError {
	return &APIError{
		Service:  "location",
		Kind:     KindNotFound,
		Side:     side,
		Message:  fmt.Sprintf("Could not find a location for %s: %q.", side, query),
		Guidance: GuidanceLocationNotFound,
	}
}

// UpstreamError builds a KindUpstream error for a failed service call.
func UpstreamError(service, side, guidance string, cause error) *APIError {
	return &APIError{
		Service:  service,
		Kind:     KindUpstream,
		Side:     side,
		Message:  fmt.Sprintf("The %s service is unavailable: %v", service, cause),
		Guidance: guidance,
	}
}

// RejectedError builds a KindRejected error carrying the backend's reason.
func RejectedError(service string, statusCode int, reason string) *APIError {
	message := fmt.Sprintf("The %s request was declined by the cab backend.", service)
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Kind:       KindRejected,
		Message:    message,
		Guidance:   GuidanceHoldRejected,
		Reason:     reason,
	}
}

// ErrorResponse is used for consistent reporting of internal errors that
// carry no taxonomy kind.
func ErrorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}
