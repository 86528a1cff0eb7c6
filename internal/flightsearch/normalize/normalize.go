package normalize

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
	"github.com/anonymous-127001/travel-agent/internal/pkg/pkguid"
)

var (
	priceAmountRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
	firstIntRe    = regexp.MustCompile(`\d+`)
	currencyRe    = regexp.MustCompile(`\b[A-Z]{3}\b`)
)

const defaultCurrency = "USD"

// Normalizer converts tagged raw records into canonical offers. It performs
// no I/O; the logger and ID generator are injected so tests stay hermetic.
type Normalizer struct {
	uid pkguid.StringID
	log *slog.Logger
}

func New(uid pkguid.StringID, log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.Default()
	}
	return &Normalizer{uid: uid, log: log}
}

// Normalize is total over its input: a nil or empty slice yields an empty
// offer list, a record whose payload does not match its kind is skipped with
// a log line, and a malformed record degrades to sentinel defaults instead of
// aborting the batch.
func (n *Normalizer) Normalize(records []entity.RawRecord, kind entity.SourceKind) []entity.Offer {
	if len(records) == 0 {
		n.log.Debug("normalize called with no records", "kind", kind)
		return []entity.Offer{}
	}

	offers := make([]entity.Offer, 0, len(records))
	token := ""
	if kind == entity.SourceScraped {
		token = n.uid.Generate()
	}

	for i, rec := range records {
		switch kind {
		case entity.SourceStructuredAPI:
			if rec.Structured == nil {
				n.log.Warn("structured record missing payload", "index", i)
				continue
			}
			offers = append(offers, n.normalizeStructured(*rec.Structured))
		case entity.SourceScraped:
			if rec.Scraped == nil {
				n.log.Warn("scraped record missing payload", "index", i)
				continue
			}
			offers = append(offers, n.normalizeScraped(*rec.Scraped, token, i))
		default:
			n.log.Warn("unknown source kind, record dropped", "kind", kind, "index", i)
		}
	}

	return offers
}

func (n *Normalizer) normalizeStructured(rec entity.StructuredRecord) entity.Offer {
	segments := make([]entity.Segment, 0, len(rec.FlightLegs))
	for _, leg := range rec.FlightLegs {
		segments = append(segments, entity.Segment{
			DepartureAirport: orNA(leg.DepAirport),
			DepartureTime:    orNA(leg.DepTime),
			ArrivalAirport:   orNA(leg.ArrAirport),
			ArrivalTime:      orNA(leg.ArrTime),
			Carrier:          orNA(leg.AirlineCode),
			FlightNumber:     orNA(leg.FlightNum),
			Duration:         FormatDuration(leg.LegDurationMinutes),
		})
	}

	if len(segments) == 0 {
		n.log.Warn("structured record has no legs, substituting sentinel segment", "provider_id", rec.ProviderID)
		segments = append(segments, sentinelSegment())
	}

	amount := rec.PricingInfo.TotalFare
	return entity.Offer{
		ID:       rec.ProviderID,
		Segments: segments,
		// The source declares total journey minutes including layovers;
		// it is not recomputed from leg durations even when inconsistent.
		TotalDuration: FormatDuration(rec.TotalJourneyMinutes),
		Price: entity.Price{
			Amount:   &amount,
			Currency: rec.PricingInfo.CurrencyCode,
		},
		Stops:        rec.NumStops,
		CO2Emissions: nil,
	}
}

func (n *Normalizer) normalizeScraped(rec entity.ScrapedRecord, token string, index int) entity.Offer {
	amount, currency := n.parsePrice(rec.PriceDetails)

	return entity.Offer{
		ID: fmt.Sprintf("scraped_fl_%s_%d", token, index),
		Segments: []entity.Segment{{
			DepartureAirport: firstToken(rec.DepartureInfo),
			DepartureTime:    entity.NA,
			ArrivalAirport:   firstToken(rec.ArrivalInfo),
			ArrivalTime:      entity.NA,
			Carrier:          orNA(rec.AirlineName),
			FlightNumber:     entity.NA,
			// Free-text duration is passed through untouched: it is not
			// minute-denominated, so reformatting would corrupt it.
			Duration: rec.DurationRaw,
		}},
		TotalDuration: rec.DurationRaw,
		Price:         entity.Price{Amount: amount, Currency: currency},
		Stops:         parseStops(rec.StopsDescription),
		CO2Emissions:  nil,
	}
}

// parsePrice extracts the first numeric substring of a free-text price. A nil
// amount means "unparseable", never zero. Only "USD" is recognized as an
// explicit currency marker; any other 3-letter token is logged and the USD
// default kept, rather than silently guessing a conversion.
func (n *Normalizer) parsePrice(text string) (*float64, string) {
	currency := defaultCurrency
	if marker := currencyRe.FindString(text); marker != "" && marker != defaultCurrency {
		n.log.Warn("unrecognized currency marker, defaulting to USD", "marker", marker, "text", text)
	}

	match := priceAmountRe.FindString(text)
	if match == "" {
		return nil, currency
	}
	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil, currency
	}
	return &amount, currency
}

// parseStops maps "Non-stop" to 0 and otherwise takes the first embedded
// integer ("1 stop (XYZ)" -> 1). Text with no integer also yields 0; whether
// "assume nonstop when unparseable" is the right reading of ambiguous input
// is undecided, so the fallback stays at 0 and the text reaches the logs via
// the raw record.
func parseStops(text string) int {
	if strings.EqualFold(strings.TrimSpace(text), "non-stop") {
		return 0
	}
	match := firstIntRe.FindString(text)
	if match == "" {
		return 0
	}
	stops, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return stops
}

// firstToken returns the first whitespace-delimited token of a free-text
// location field, e.g. "JFK at 08:00 AM" -> "JFK".
func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return entity.NA
	}
	return fields[0]
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return entity.NA
	}
	return value
}

func sentinelSegment() entity.Segment {
	return entity.Segment{
		DepartureAirport: entity.NA,
		DepartureTime:    entity.NA,
		ArrivalAirport:   entity.NA,
		ArrivalTime:      entity.NA,
		Carrier:          entity.NA,
		FlightNumber:     entity.NA,
		Duration:         entity.NA,
	}
}
