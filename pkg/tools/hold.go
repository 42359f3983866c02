package tools

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/cabs"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/location"
)

// mobilePattern matches a normalized Indian mobile number: 10 digits
// starting with 6-9.
var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

var holdValidate = newHoldValidator()

func newHoldValidator() *validator.Validate {
	v := validator.New()
	// Validated values are already normalized, so the pattern check is
	// all that remains.
	if err := v.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// HoldInput is the validated, normalized input of the hold_cab tool.
type HoldInput struct {
	SearchID           string `validate:"required"`
	CabID              string `validate:"required"`
	CategoryID         string `validate:"required"`
	SourcePlaceID      string `validate:"required"`
	DestinationPlaceID string `validate:"required"`
	FirstName          string `validate:"required"`
	LastName           string
	Gender             string `validate:"required,oneof=M F O"`
	Email              string `validate:"required,email"`
	Mobile             string `validate:"required,inmobile"`
}

// NormalizeMobile strips separators and an Indian country prefix from a
// mobile number, leaving the 10-digit national number.
func NormalizeMobile(s string) string {
	s = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "+91"):
		return s[3:]
	case strings.HasPrefix(s, "91") && len(s) == 12:
		return s[2:]
	}
	return s
}

// holdValidationMessage turns the first field failure into a message the
// agent can relay to the user.
func holdValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid hold request."
	}

	switch fe := verrs[0]; fe.Field() {
	case "Email":
		return "Invalid email address."
	case "Mobile":
		return "Invalid mobile number. Must be 10 digits starting with 6-9."
	case "Gender":
		return "Gender must be M, F, or O."
	case "SearchID", "CabID", "CategoryID":
		return "Missing offer reference. Run search_cabs first and pass searchId, cabId and categoryId from its result."
	case "SourcePlaceID", "DestinationPlaceID":
		return "Missing resolved locations. Pass the source and destination place_id values confirmed during search_cabs."
	case "FirstName":
		return "Passenger first name must not be empty."
	default:
		return fmt.Sprintf("Invalid field %s.", fe.Field())
	}
}

// HoldCabTool returns the tool definition for reserving a cab.
func HoldCabTool() mcp.Tool {
	return mcp.NewTool("hold_cab",
		mcp.WithDescription("Reserve a selected cab with passenger and contact details. "+
			"All identifiers come from a prior search_cabs round; this tool does not re-run disambiguation."),
		mcp.WithString("search_id",
			mcp.Required(),
			mcp.Description("Search identifier from search_cabs results. System-managed, do not ask the user."),
		),
		mcp.WithString("cab_id",
			mcp.Required(),
			mcp.Description("Cab identifier of the chosen offer. System-managed, do not ask the user."),
		),
		mcp.WithString("category_id",
			mcp.Required(),
			mcp.Description("Category identifier of the chosen offer. System-managed, do not ask the user."),
		),
		mcp.WithString("source_place_id",
			mcp.Required(),
			mcp.Description("Place identifier of the confirmed source location. System-managed, do not ask the user."),
		),
		mcp.WithString("destination_place_id",
			mcp.Required(),
			mcp.Description("Place identifier of the confirmed destination location. System-managed, do not ask the user."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date of journey, dd-MM-yyyy or yyyy-MM-dd, as confirmed during search."),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Pickup time, HH:MM (24h) or H:MM AM/PM, as confirmed during search."),
		),
		mcp.WithString("first_name",
			mcp.Required(),
			mcp.Description("Passenger first name. Must be explicitly provided by the user, never assumed."),
		),
		mcp.WithString("last_name",
			mcp.Description("Passenger last name."),
		),
		mcp.WithString("gender",
			mcp.Required(),
			mcp.Description("Gender: M, F or O. Must be explicitly provided by the user, never assumed."),
		),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address. Must be explicitly provided by the user, never assumed."),
		),
		mcp.WithString("mobile",
			mcp.Required(),
			mcp.Description("Mobile number, 10 digits starting with 6-9. Must be explicitly provided by the user, never assumed."),
		),
	)
}

// HandleHoldCab implements the hold_cab tool. Passenger fields are
// validated before any network call; the backend's explicit refusals are
// surfaced with their stated reason.
func (r *Registry) HandleHoldCab(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "hold_cab", "request_id", uuid.NewString())

	input := HoldInput{
		SearchID:           strings.TrimSpace(mcp.ParseString(req, "search_id", "")),
		CabID:              strings.TrimSpace(mcp.ParseString(req, "cab_id", "")),
		CategoryID:         strings.TrimSpace(mcp.ParseString(req, "category_id", "")),
		SourcePlaceID:      strings.TrimSpace(mcp.ParseString(req, "source_place_id", "")),
		DestinationPlaceID: strings.TrimSpace(mcp.ParseString(req, "destination_place_id", "")),
		FirstName:          strings.TrimSpace(mcp.ParseString(req, "first_name", "")),
		LastName:           strings.TrimSpace(mcp.ParseString(req, "last_name", "")),
		Gender:             strings.ToUpper(strings.TrimSpace(mcp.ParseString(req, "gender", ""))),
		Email:              strings.ToLower(strings.TrimSpace(mcp.ParseString(req, "email", ""))),
		Mobile:             NormalizeMobile(mcp.ParseString(req, "mobile", "")),
	}

	if err := holdValidate.Struct(&input); err != nil {
		logger.Warn("hold input rejected", "error", err)
		return ValidationError(holdValidationMessage(err)).Result(), nil
	}

	pickupTime, err := ParsePickupTime(
		mcp.ParseString(req, "date", ""),
		mcp.ParseString(req, "time", ""),
	)
	if err != nil {
		return ValidationError(err.Error()).Result(), nil
	}

	logger.Info("hold cab request received",
		"search_id", input.SearchID,
		"cab_id", input.CabID,
		"category_id", input.CategoryID,
		"passenger", input.FirstName)

	// The locations were confirmed during search; look the identifiers
	// up directly, both sides concurrently.
	var (
		srcOut, dstOut location.Outcome
		srcErr, dstErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		srcOut, srcErr = r.engine.Resolve(ctx, location.Mention{PlaceID: input.SourcePlaceID})
		return nil
	})
	g.Go(func() error {
		dstOut, dstErr = r.engine.Resolve(ctx, location.Mention{PlaceID: input.DestinationPlaceID})
		return nil
	})
	_ = g.Wait()

	sides := []struct {
		name    string
		placeID string
		out     location.Outcome
		err     error
	}{
		{"source", input.SourcePlaceID, srcOut, srcErr},
		{"destination", input.DestinationPlaceID, dstOut, dstErr},
	}
	for _, side := range sides {
		if side.err != nil {
			logger.Error("location lookup failed", "side", side.name, "error", side.err)
			return UpstreamError("location", side.name, GuidanceLocationUnavailable, side.err).Result(), nil
		}
		if side.out.Status != location.StatusResolved {
			logger.Warn("place identifier no longer valid", "side", side.name, "place_id", side.placeID)
			return LocationNotFoundError(side.name, side.placeID).Result(), nil
		}
	}

	payload := cabs.HoldPayload{
		SearchID:   input.SearchID,
		CategoryID: input.CategoryID,
		CabID:      input.CabID,
		PassengerDetail: cabs.PassengerDetail{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Gender:    input.Gender,
		},
		ContactDetails: cabs.ContactDetails{
			EmailID:     input.Email,
			Mobile:      input.Mobile,
			CountryCode: "+91",
		},
		Source:      srcOut.Location,
		Destination: dstOut.Location,
		PickupTime:  pickupTime,
	}

	resp, err := r.cabs.Hold(ctx, payload)
	if err != nil {
		var rejected *cabs.RejectedError
		if errors.As(err, &rejected) {
			logger.Warn("hold rejected", "status", rejected.StatusCode, "reason", rejected.Reason)
			return RejectedError("cab hold", rejected.StatusCode, rejected.Reason).Result(), nil
		}
		logger.Error("hold call failed", "search_id", input.SearchID, "error", err)
		return UpstreamError("cab hold", "", GuidanceHoldUnavailable, err).Result(), nil
	}

	logger.Info("cab hold successful",
		"booking_id", resp.BookingID,
		"search_id", input.SearchID)

	passenger := input.FirstName
	if input.LastName != "" {
		passenger += " " + input.LastName
	}

	return jsonResult(HoldResult{
		Status:     "ok",
		BookingID:  resp.BookingID,
		PaymentURL: resp.PaymentURL,
		Message: fmt.Sprintf(
			"Cab reserved for %s. Booking ID: %s. Open the payment URL in a browser to complete payment.",
			passenger, resp.BookingID),
	})
}
