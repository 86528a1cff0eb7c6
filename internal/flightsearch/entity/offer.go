package entity

import "time"

// NA marks a field the upstream source did not supply. It is distinct from an
// absent value: consumers can rely on the field being present with this
// sentinel instead of checking emptiness per source.
const NA = "N/A"

type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinPremium  CabinClass = "premium"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremium, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

type Query struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Passengers    int
	CabinClass    CabinClass
}

type Price struct {
	// Amount is nil when the source price could not be parsed. Nil means
	// "unknown", 0 means "free"; the two must never be conflated.
	Amount   *float64
	Currency string
}

type Segment struct {
	DepartureAirport string
	DepartureTime    string
	ArrivalAirport   string
	ArrivalTime      string
	Carrier          string
	FlightNumber     string
	Duration         string
}

// Offer is the canonical normalized representation of one bookable itinerary.
// It is created once by the normalizer and never mutated afterwards; the
// aggregator may drop duplicates but does not modify survivors.
type Offer struct {
	ID            string
	Segments      []Segment
	TotalDuration string
	Price         Price
	Stops         int
	// CO2Emissions is nil until a source supplies it or a computation
	// exists. Nil means "unknown", not zero.
	CO2Emissions *int
}
