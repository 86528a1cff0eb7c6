package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
	"github.com/anonymous-127001/travel-agent/internal/pkg/pkgerror"
)

// RawQuery is the unvalidated, string-shaped query as the gateway hands it
// over. Empty optional fields mean "use the default".
type RawQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Passengers    string
	CabinClass    string
}

var airportCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

const dateLayout = "2006-01-02"

// ValidateQuery checks every field and reports all violations at once, so a
// caller can fix its request in a single round trip.
func ValidateQuery(raw RawQuery) (entity.Query, error) {
	var violations []pkgerror.FieldViolation
	addViolation := func(field, reason string) {
		violations = append(violations, pkgerror.FieldViolation{Field: field, Reason: reason})
	}

	origin := strings.ToUpper(strings.TrimSpace(raw.Origin))
	if !airportCodeRe.MatchString(origin) {
		addViolation("origin", "must be a 3-letter IATA airport code")
	}

	destination := strings.ToUpper(strings.TrimSpace(raw.Destination))
	if !airportCodeRe.MatchString(destination) {
		addViolation("destination", "must be a 3-letter IATA airport code")
	} else if destination == origin {
		addViolation("destination", "must differ from origin")
	}

	var departureDate time.Time
	if value := strings.TrimSpace(raw.DepartureDate); value == "" {
		addViolation("departureDate", "is required (format YYYY-MM-DD)")
	} else if parsed, err := time.Parse(dateLayout, value); err != nil {
		addViolation("departureDate", "must be a valid YYYY-MM-DD date")
	} else {
		departureDate = parsed
	}

	var returnDate *time.Time
	if value := strings.TrimSpace(raw.ReturnDate); value != "" {
		if parsed, err := time.Parse(dateLayout, value); err != nil {
			addViolation("returnDate", "must be a valid YYYY-MM-DD date")
		} else if !departureDate.IsZero() && departureDate.After(parsed) {
			addViolation("returnDate", "must not be before departureDate")
		} else {
			returnDate = &parsed
		}
	}

	passengers := 1
	if value := strings.TrimSpace(raw.Passengers); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			addViolation("passengers", "must be a positive integer")
		} else {
			passengers = parsed
		}
	}

	cabinClass := entity.CabinEconomy
	if value := strings.TrimSpace(raw.CabinClass); value != "" {
		candidate := entity.CabinClass(strings.ToLower(value))
		if !candidate.Valid() {
			addViolation("cabinClass", "must be one of economy, premium, business, first")
		} else {
			cabinClass = candidate
		}
	}

	if len(violations) > 0 {
		return entity.Query{}, pkgerror.NewValidation(violations)
	}

	return entity.Query{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Passengers:    passengers,
		CabinClass:    cabinClass,
	}, nil
}
