package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
)

type staticExtractor struct {
	records []entity.ScrapedRecord
	err     error
}

func (e *staticExtractor) Extract(context.Context, entity.Query) ([]entity.ScrapedRecord, error) {
	return e.records, e.err
}

func TestScrapedPassesThroughRecords(t *testing.T) {
	extractor := &staticExtractor{records: []entity.ScrapedRecord{
		{AirlineName: "AirScraper One", PriceDetails: "USD 275.50"},
	}}
	s := NewScraped("scraper", extractor, discardLogger())

	result, err := s.Fetch(context.Background(), entity.Query{Origin: "JFK", Destination: "LAX"})
	require.NoError(t, err)
	require.False(t, result.Fallback)
	require.Len(t, result.Records, 1)
	require.Equal(t, entity.SourceScraped, result.Records[0].Kind)
	require.Equal(t, "AirScraper One", result.Records[0].Scraped.AirlineName)
}

func TestScrapedSubstitutesOnExtractionFailure(t *testing.T) {
	s := NewScraped("scraper", &staticExtractor{err: errors.New("browser crashed")}, discardLogger())

	result, err := s.Fetch(context.Background(), entity.Query{Origin: "SFO", Destination: "SEA"})
	require.NoError(t, err)
	require.True(t, result.Fallback)
	require.Len(t, result.Records, 2)
	require.Contains(t, result.Records[0].Scraped.DepartureInfo, "SFO")
	require.Contains(t, result.Records[0].Scraped.ArrivalInfo, "SEA")
	require.Equal(t, "Non-stop", result.Records[1].Scraped.StopsDescription)
}

func TestScrapedHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScraped("scraper", &staticExtractor{err: errors.New("aborted")}, discardLogger())
	_, err := s.Fetch(ctx, entity.Query{})
	require.ErrorIs(t, err, context.Canceled)
}
