package inbound

import (
	"context"
	"errors"
	"net/http"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/usecase"
	"github.com/anonymous-127001/travel-agent/internal/pkg/pkgerror"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) SearchFlights(ctx context.Context, r *http.Request) (any, error) {
	input := parseSearchInput(r)

	output, err := h.uc.SearchFlights(ctx, input)
	if err != nil {
		var allFailed *usecase.AllSourcesFailedError
		if errors.As(err, &allFailed) {
			return nil, pkgerror.NewBusiness(allFailed.Error(), pkgerror.CodeUnavailable)
		}
		return nil, err
	}

	return SearchResponse{
		SearchCriteria: SearchCriteriaResponse{
			Origin:        output.SearchCriteria.Origin,
			Destination:   output.SearchCriteria.Destination,
			DepartureDate: output.SearchCriteria.DepartureDate,
			ReturnDate:    output.SearchCriteria.ReturnDate,
			Passengers:    output.SearchCriteria.Passengers,
			CabinClass:    output.SearchCriteria.CabinClass,
		},
		Metadata: MetadataResponse{
			TotalResults:     output.Metadata.TotalResults,
			SourcesQueried:   output.Metadata.SourcesQueried,
			SourcesSucceeded: output.Metadata.SourcesSucceeded,
			SourcesFailed:    output.Metadata.SourcesFailed,
			FailedSources:    output.Metadata.FailedSources,
			FallbackSources:  output.Metadata.FallbackSources,
			SearchTimeMs:     output.Metadata.SearchTimeMs,
			CacheHit:         output.Metadata.CacheHit,
		},
		Offers: mapOfferResponses(output.Offers),
	}, nil
}

func mapOfferResponses(offers []entity.Offer) []OfferResponse {
	resp := make([]OfferResponse, 0, len(offers))
	for _, offer := range offers {
		segments := make([]SegmentResponse, 0, len(offer.Segments))
		for _, seg := range offer.Segments {
			segments = append(segments, SegmentResponse{
				DepartureAirport: seg.DepartureAirport,
				DepartureTime:    seg.DepartureTime,
				ArrivalAirport:   seg.ArrivalAirport,
				ArrivalTime:      seg.ArrivalTime,
				Carrier:          seg.Carrier,
				FlightNumber:     seg.FlightNumber,
				Duration:         seg.Duration,
			})
		}
		resp = append(resp, OfferResponse{
			ID:            offer.ID,
			Segments:      segments,
			TotalDuration: offer.TotalDuration,
			Price:         PriceResponse{Amount: offer.Price.Amount, Currency: offer.Price.Currency},
			Stops:         offer.Stops,
			CO2Emissions:  offer.CO2Emissions,
		})
	}
	return resp
}
