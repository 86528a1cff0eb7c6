package inbound

import (
	"net/http"
	"strings"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/usecase"
)

// parseSearchInput only lifts query-string values into the raw query; all
// validation happens in the usecase so violations can be reported together.
func parseSearchInput(r *http.Request) usecase.SearchInput {
	q := r.URL.Query()

	return usecase.SearchInput{
		Query: usecase.RawQuery{
			Origin:        strings.TrimSpace(q.Get("origin")),
			Destination:   strings.TrimSpace(q.Get("destination")),
			DepartureDate: strings.TrimSpace(firstNotEmpty(q.Get("departureDate"), q.Get("departure_date"))),
			ReturnDate:    strings.TrimSpace(firstNotEmpty(q.Get("returnDate"), q.Get("return_date"))),
			Passengers:    strings.TrimSpace(q.Get("passengers")),
			CabinClass:    strings.TrimSpace(firstNotEmpty(q.Get("cabinClass"), q.Get("cabin_class"))),
		},
		Sources: parseSourceSelection(firstNotEmpty(q.Get("sources"), q.Get("data_sources"))),
	}
}

func parseSourceSelection(value string) []entity.SourceKind {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	kinds := make([]entity.SourceKind, 0, 2)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// Unknown kinds pass through on purpose: the aggregator logs and
		// skips them instead of failing the request.
		kinds = append(kinds, entity.SourceKind(part))
	}
	return kinds
}

func firstNotEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
