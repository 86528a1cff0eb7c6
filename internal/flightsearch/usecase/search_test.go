package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/cache"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/normalize"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/source"
)

type fakeSource struct {
	kind   entity.SourceKind
	name   string
	result source.Result
	err    error
	delay  time.Duration
	calls  atomic.Int32
}

func (f *fakeSource) Kind() entity.SourceKind { return f.kind }
func (f *fakeSource) Name() string            { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, _ entity.Query) (source.Result, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return source.Result{}, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.result, f.err
}

type counterID struct{ n atomic.Int32 }

func (c *counterID) Generate() string {
	return "uid" + string(rune('a'+c.n.Add(1)))
}

func structuredResult(ids ...string) source.Result {
	records := make([]entity.RawRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, entity.NewStructuredRecord(entity.StructuredRecord{
			ProviderID: id,
			FlightLegs: []entity.StructuredLeg{
				{DepAirport: "JFK", ArrAirport: "LAX", AirlineCode: "AA", FlightNum: "AA1", LegDurationMinutes: 360},
			},
			TotalJourneyMinutes: 360,
			PricingInfo:         entity.PricingInfo{TotalFare: 350.75, CurrencyCode: "USD"},
			NumStops:            1,
		}))
	}
	return source.Result{Records: records}
}

type SearchSuite struct {
	suite.Suite
}

func (s *SearchSuite) newUsecase(dep Dependency) *Usecase {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if dep.Logger == nil {
		dep.Logger = log
	}
	if dep.Normalizer == nil {
		dep.Normalizer = normalize.New(&counterID{}, log)
	}
	return New(dep)
}

func (s *SearchSuite) rawQuery() RawQuery {
	return RawQuery{Origin: "JFK", Destination: "LAX", DepartureDate: "2024-12-01"}
}

func (s *SearchSuite) TestMergesAllSources() {
	structured := &fakeSource{kind: entity.SourceStructuredAPI, name: "structured-api", result: structuredResult("provider_xyz_123")}
	scraped := &fakeSource{kind: entity.SourceScraped, name: "scraper", result: source.Result{Records: []entity.RawRecord{
		entity.NewScrapedRecord(entity.ScrapedRecord{AirlineName: "AirScraper One", PriceDetails: "USD 275.50", StopsDescription: "Non-stop"}),
	}}}

	uc := s.newUsecase(Dependency{Sources: []source.Source{structured, scraped}})
	out, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)

	s.Require().Len(out.Offers, 2)
	s.Equal("provider_xyz_123", out.Offers[0].ID)
	s.Contains(out.Offers[1].ID, "scraped_fl_")
	s.Equal(2, out.Metadata.SourcesQueried)
	s.Equal(2, out.Metadata.SourcesSucceeded)
	s.Equal(0, out.Metadata.SourcesFailed)
	s.False(out.Metadata.CacheHit)
}

func (s *SearchSuite) TestDedupeFirstSeenWins() {
	older := structuredResult("P1")
	older.Records[0].Structured.PricingInfo.TotalFare = 100
	newer := structuredResult("P1")
	newer.Records[0].Structured.PricingInfo.TotalFare = 200

	a := &fakeSource{kind: entity.SourceStructuredAPI, name: "a", result: older}
	b := &fakeSource{kind: entity.SourceStructuredAPI, name: "b", result: newer}

	uc := s.newUsecase(Dependency{Sources: []source.Source{a, b}})
	out, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)

	s.Require().Len(out.Offers, 1)
	s.Equal("P1", out.Offers[0].ID)
	s.Equal(100.0, *out.Offers[0].Price.Amount)
}

func (s *SearchSuite) TestDedupeLastSeenWinsWhenConfigured() {
	older := structuredResult("P1")
	older.Records[0].Structured.PricingInfo.TotalFare = 100
	newer := structuredResult("P1")
	newer.Records[0].Structured.PricingInfo.TotalFare = 200

	a := &fakeSource{kind: entity.SourceStructuredAPI, name: "a", result: older}
	b := &fakeSource{kind: entity.SourceStructuredAPI, name: "b", result: newer}

	uc := s.newUsecase(Dependency{Sources: []source.Source{a, b}, LastSeenWins: true})
	out, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)

	s.Require().Len(out.Offers, 1)
	s.Equal(200.0, *out.Offers[0].Price.Amount)
}

func (s *SearchSuite) TestPartialFailureDegrades() {
	ok := &fakeSource{kind: entity.SourceStructuredAPI, name: "structured-api", result: structuredResult("provider_xyz_123")}
	down := &fakeSource{kind: entity.SourceScraped, name: "scraper", err: errors.New("connection refused")}

	uc := s.newUsecase(Dependency{Sources: []source.Source{ok, down}})
	out, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)

	s.Require().Len(out.Offers, 1)
	s.Equal("provider_xyz_123", out.Offers[0].ID)
	s.Equal(1, out.Metadata.SourcesFailed)
	s.Equal([]string{"scraper"}, out.Metadata.FailedSources)
}

func (s *SearchSuite) TestAllSourcesFailed() {
	a := &fakeSource{kind: entity.SourceStructuredAPI, name: "a", err: errors.New("down")}
	b := &fakeSource{kind: entity.SourceScraped, name: "b", err: errors.New("down too")}

	uc := s.newUsecase(Dependency{Sources: []source.Source{a, b}})
	_, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})

	var allFailed *AllSourcesFailedError
	s.Require().True(errors.As(err, &allFailed))
	s.ElementsMatch([]string{"a", "b"}, allFailed.Sources)
}

func (s *SearchSuite) TestSourceTimeoutTreatedAsFailure() {
	slow := &fakeSource{kind: entity.SourceStructuredAPI, name: "slow", result: structuredResult("P1"), delay: 200 * time.Millisecond}
	fast := &fakeSource{kind: entity.SourceScraped, name: "fast", result: source.Result{Records: []entity.RawRecord{
		entity.NewScrapedRecord(entity.ScrapedRecord{AirlineName: "FlyScrape Airways", PriceDetails: "$310.00"}),
	}}}

	uc := s.newUsecase(Dependency{Sources: []source.Source{slow, fast}, SourceTimeout: 10 * time.Millisecond})
	out, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)

	s.Require().Len(out.Offers, 1)
	s.Equal([]string{"slow"}, out.Metadata.FailedSources)
}

func (s *SearchSuite) TestUnknownSourceKindContributesZero() {
	structured := &fakeSource{kind: entity.SourceStructuredAPI, name: "structured-api", result: structuredResult("provider_xyz_123")}

	uc := s.newUsecase(Dependency{Sources: []source.Source{structured}})
	out, err := uc.SearchFlights(context.Background(), SearchInput{
		Query:   s.rawQuery(),
		Sources: []entity.SourceKind{entity.SourceStructuredAPI, entity.SourceKind("carrierPigeon")},
	})
	s.Require().NoError(err)

	s.Len(out.Offers, 1)
	s.Equal(1, out.Metadata.SourcesQueried)
}

func (s *SearchSuite) TestSelectionRestrictsSources() {
	structured := &fakeSource{kind: entity.SourceStructuredAPI, name: "structured-api", result: structuredResult("provider_xyz_123")}
	scraped := &fakeSource{kind: entity.SourceScraped, name: "scraper", result: source.Result{Records: []entity.RawRecord{
		entity.NewScrapedRecord(entity.ScrapedRecord{AirlineName: "AirScraper One", PriceDetails: "USD 275.50"}),
	}}}

	uc := s.newUsecase(Dependency{Sources: []source.Source{structured, scraped}})
	out, err := uc.SearchFlights(context.Background(), SearchInput{
		Query:   s.rawQuery(),
		Sources: []entity.SourceKind{entity.SourceScraped},
	})
	s.Require().NoError(err)

	s.Require().Len(out.Offers, 1)
	s.Contains(out.Offers[0].ID, "scraped_fl_")
	s.Equal(int32(0), structured.calls.Load())
}

func (s *SearchSuite) TestFallbackSourcesSurfaceInMetadata() {
	fallback := structuredResult("provider_xyz_123", "provider_abc_789")
	fallback.Fallback = true
	structured := &fakeSource{kind: entity.SourceStructuredAPI, name: "structured-api", result: fallback}

	uc := s.newUsecase(Dependency{Sources: []source.Source{structured}})
	out, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)

	s.Equal([]string{"structured-api"}, out.Metadata.FallbackSources)
}

func (s *SearchSuite) TestCacheHit() {
	structured := &fakeSource{kind: entity.SourceStructuredAPI, name: "structured-api", result: structuredResult("provider_xyz_123")}

	uc := s.newUsecase(Dependency{
		Sources:  []source.Source{structured},
		Cache:    cache.New(CloneSearchOutput),
		CacheTTL: time.Minute,
	})

	first, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)
	s.False(first.Metadata.CacheHit)

	second, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)
	s.True(second.Metadata.CacheHit)
	s.Equal(first.Offers, second.Offers)
	s.Equal(int32(1), structured.calls.Load())
}

func (s *SearchSuite) TestRankerReorders() {
	cheap := structuredResult("cheap")
	cheap.Records[0].Structured.PricingInfo.TotalFare = 100
	pricey := structuredResult("pricey")
	pricey.Records[0].Structured.PricingInfo.TotalFare = 900

	a := &fakeSource{kind: entity.SourceStructuredAPI, name: "a", result: pricey}
	b := &fakeSource{kind: entity.SourceStructuredAPI, name: "b", result: cheap}

	byPrice := func(x, y entity.Offer) bool {
		if x.Price.Amount == nil || y.Price.Amount == nil {
			return y.Price.Amount == nil && x.Price.Amount != nil
		}
		return *x.Price.Amount < *y.Price.Amount
	}

	uc := s.newUsecase(Dependency{Sources: []source.Source{a, b}, Ranker: byPrice})
	out, err := uc.SearchFlights(context.Background(), SearchInput{Query: s.rawQuery()})
	s.Require().NoError(err)

	s.Require().Len(out.Offers, 2)
	s.Equal("cheap", out.Offers[0].ID)
	s.Equal("pricey", out.Offers[1].ID)
}

func (s *SearchSuite) TestInvalidQueryRejectedBeforeFetch() {
	structured := &fakeSource{kind: entity.SourceStructuredAPI, name: "structured-api", result: structuredResult("P1")}

	uc := s.newUsecase(Dependency{Sources: []source.Source{structured}})
	_, err := uc.SearchFlights(context.Background(), SearchInput{Query: RawQuery{Origin: "JFK", Destination: "JFK"}})

	s.Require().Error(err)
	s.Equal(int32(0), structured.calls.Load())
}

func TestSearchSuite(t *testing.T) {
	suite.Run(t, new(SearchSuite))
}
