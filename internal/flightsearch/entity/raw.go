package entity

// SourceKind tags which upstream shape produced a raw record. It is a closed
// set: the normalizer has one branch per kind and treats anything else as
// unknown rather than guessing.
type SourceKind string

const (
	SourceStructuredAPI SourceKind = "structuredApi"
	SourceScraped       SourceKind = "scraped"
)

func (k SourceKind) Known() bool {
	return k == SourceStructuredAPI || k == SourceScraped
}

// RawRecord is the tagged union over source-native record shapes. Exactly one
// of the payload pointers is set, matching Kind. Raw records are ephemeral:
// produced by an adapter fetch, consumed immediately by the normalizer, never
// persisted.
type RawRecord struct {
	Kind       SourceKind
	Structured *StructuredRecord
	Scraped    *ScrapedRecord
}

// StructuredRecord is the fixed nested shape returned by structured provider
// APIs.
type StructuredRecord struct {
	ProviderID          string          `json:"provider_id"`
	FlightLegs          []StructuredLeg `json:"flight_legs"`
	TotalJourneyMinutes int             `json:"total_journey_minutes"`
	PricingInfo         PricingInfo     `json:"pricing_info"`
	NumStops            int             `json:"num_stops"`
	Tags                []string        `json:"tags"`
}

type StructuredLeg struct {
	DepAirport         string `json:"dep_airport"`
	DepTime            string `json:"dep_time"`
	ArrAirport         string `json:"arr_airport"`
	ArrTime            string `json:"arr_time"`
	AirlineCode        string `json:"airline_code"`
	FlightNum          string `json:"fl_num"`
	LegDurationMinutes int    `json:"leg_duration_minutes"`
}

type PricingInfo struct {
	TotalFare    float64 `json:"total_fare"`
	CurrencyCode string  `json:"currency_code"`
	BaseFare     float64 `json:"base_fare"`
	Taxes        float64 `json:"taxes"`
}

// ScrapedRecord is the loosely-shaped record produced by text-extraction
// sources. Every field is free text and none of them can be trusted to parse.
type ScrapedRecord struct {
	AirlineName      string `json:"scraped_airline_name"`
	DepartureInfo    string `json:"departure_info"`
	ArrivalInfo      string `json:"arrival_info"`
	PriceDetails     string `json:"price_details"`
	StopsDescription string `json:"stops_description"`
	DurationRaw      string `json:"duration_raw"`
}

func NewStructuredRecord(rec StructuredRecord) RawRecord {
	return RawRecord{Kind: SourceStructuredAPI, Structured: &rec}
}

func NewScrapedRecord(rec ScrapedRecord) RawRecord {
	return RawRecord{Kind: SourceScraped, Scraped: &rec}
}
