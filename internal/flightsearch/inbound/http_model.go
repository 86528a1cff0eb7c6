package inbound

type SearchResponse struct {
	SearchCriteria SearchCriteriaResponse `json:"search_criteria"`
	Metadata       MetadataResponse       `json:"metadata"`
	Offers         []OfferResponse        `json:"offers"`
}

type SearchCriteriaResponse struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
	Passengers    int     `json:"passengers"`
	CabinClass    string  `json:"cabin_class"`
}

type MetadataResponse struct {
	TotalResults     int      `json:"total_results"`
	SourcesQueried   int      `json:"sources_queried"`
	SourcesSucceeded int      `json:"sources_succeeded"`
	SourcesFailed    int      `json:"sources_failed"`
	FailedSources    []string `json:"failed_sources,omitempty"`
	FallbackSources  []string `json:"fallback_sources,omitempty"`
	SearchTimeMs     int64    `json:"search_time_ms"`
	CacheHit         bool     `json:"cache_hit"`
}

type OfferResponse struct {
	ID            string            `json:"id"`
	Segments      []SegmentResponse `json:"segments"`
	TotalDuration string            `json:"total_duration"`
	Price         PriceResponse     `json:"price"`
	Stops         int               `json:"stops"`
	CO2Emissions  *int              `json:"co2_emissions"`
}

type SegmentResponse struct {
	DepartureAirport string `json:"departure_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalAirport   string `json:"arrival_airport"`
	ArrivalTime      string `json:"arrival_time"`
	Carrier          string `json:"carrier"`
	FlightNumber     string `json:"flight_number"`
	Duration         string `json:"duration"`
}

type PriceResponse struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}
