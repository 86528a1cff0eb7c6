package usecase

import (
	"strconv"
	"strings"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/source"
)

func buildCacheKey(query entity.Query, selected []source.Source) string {
	names := make([]string, 0, len(selected))
	for _, s := range selected {
		names = append(names, s.Name())
	}

	parts := []string{
		query.Origin,
		query.Destination,
		query.DepartureDate.Format(dateLayout),
		"",
		strconv.Itoa(query.Passengers),
		string(query.CabinClass),
		strings.Join(names, "+"),
	}
	if query.ReturnDate != nil {
		parts[3] = query.ReturnDate.Format(dateLayout)
	}
	return strings.Join(parts, "|")
}

// CloneSearchOutput deep-copies a search output so cached results cannot be
// mutated through shared slices.
func CloneSearchOutput(value *SearchOutput) *SearchOutput {
	if value == nil {
		return nil
	}

	clone := &SearchOutput{
		SearchCriteria: value.SearchCriteria,
		Metadata:       value.Metadata,
		Offers:         make([]entity.Offer, len(value.Offers)),
	}
	clone.Metadata.FailedSources = append([]string{}, value.Metadata.FailedSources...)
	clone.Metadata.FallbackSources = append([]string{}, value.Metadata.FallbackSources...)

	for i, offer := range value.Offers {
		copied := offer
		copied.Segments = append([]entity.Segment{}, offer.Segments...)
		if offer.Price.Amount != nil {
			amount := *offer.Price.Amount
			copied.Price.Amount = &amount
		}
		if offer.CO2Emissions != nil {
			emissions := *offer.CO2Emissions
			copied.CO2Emissions = &emissions
		}
		clone.Offers[i] = copied
	}

	return clone
}
