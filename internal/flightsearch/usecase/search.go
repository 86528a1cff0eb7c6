package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/source"
)

type SearchInput struct {
	Query RawQuery
	// Sources selects which configured source kinds to query; empty means
	// all of them. Unknown kinds are logged and contribute zero offers.
	Sources []entity.SourceKind
}

type SearchOutput struct {
	SearchCriteria SearchCriteria
	Metadata       SearchMetadata
	Offers         []entity.Offer
}

type SearchCriteria struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    *string
	Passengers    int
	CabinClass    string
}

type SearchMetadata struct {
	TotalResults     int
	SourcesQueried   int
	SourcesSucceeded int
	SourcesFailed    int
	FailedSources    []string
	// FallbackSources lists sources that answered with substitute data
	// instead of a genuine upstream response.
	FallbackSources []string
	SearchTimeMs    int64
	CacheHit        bool
}

// AllSourcesFailedError reports that every selected source failed, as opposed
// to a route that genuinely has no offers.
type AllSourcesFailedError struct {
	Sources []string
}

func (e *AllSourcesFailedError) Error() string {
	return fmt.Sprintf("all flight sources failed: %s", strings.Join(e.Sources, ", "))
}

// SearchFlights validates the raw query, fans out to the selected sources
// concurrently, normalizes and merges their records, and returns one
// deduplicated, deterministically ordered offer list. A single failing source
// degrades the result; only all sources failing fails the search.
func (u *Usecase) SearchFlights(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	start := time.Now()

	query, err := ValidateQuery(in.Query)
	if err != nil {
		return nil, err
	}

	selected := u.selectSources(in.Sources)

	cacheKey := buildCacheKey(query, selected)
	if u.cache != nil {
		if cached, ok := u.cache.Get(cacheKey); ok {
			cached.Metadata.CacheHit = true
			cached.Metadata.SearchTimeMs = time.Since(start).Milliseconds()
			return cached, nil
		}
	}

	offers, stats := u.collectOffers(ctx, query, selected)
	if len(selected) > 0 && len(stats.failed) == len(selected) {
		return nil, &AllSourcesFailedError{Sources: stats.failed}
	}

	offers = u.dedupe(offers)
	if u.ranker != nil {
		ranker := u.ranker
		sort.SliceStable(offers, func(i, j int) bool { return ranker(offers[i], offers[j]) })
	}

	output := &SearchOutput{
		SearchCriteria: buildCriteria(query),
		Metadata: SearchMetadata{
			TotalResults:     len(offers),
			SourcesQueried:   len(selected),
			SourcesSucceeded: len(selected) - len(stats.failed),
			SourcesFailed:    len(stats.failed),
			FailedSources:    stats.failed,
			FallbackSources:  stats.fallback,
			SearchTimeMs:     time.Since(start).Milliseconds(),
		},
		Offers: offers,
	}

	if u.cache != nil {
		u.cache.Set(cacheKey, output, u.cacheTTL)
	}

	return output, nil
}

// selectSources resolves the requested kinds against the configured sources,
// preserving selection order then configuration order. Kinds with no
// configured source are warned about and skipped, never fatal.
func (u *Usecase) selectSources(kinds []entity.SourceKind) []source.Source {
	if len(kinds) == 0 {
		return u.sources
	}

	selected := make([]source.Source, 0, len(u.sources))
	for _, kind := range kinds {
		matched := false
		for _, s := range u.sources {
			if s.Kind() == kind {
				selected = append(selected, s)
				matched = true
			}
		}
		if !matched {
			u.log.Warn("no configured source for requested kind", "kind", kind)
		}
	}
	return selected
}

type fetchStats struct {
	failed   []string
	fallback []string
}

type fetchOutcome struct {
	result source.Result
	err    error
}

// collectOffers issues one fetch per source concurrently with a per-source
// timeout, waits for all outcomes, and normalizes successes in source order.
func (u *Usecase) collectOffers(ctx context.Context, query entity.Query, selected []source.Source) ([]entity.Offer, fetchStats) {
	outcomes := make([]fetchOutcome, len(selected))

	var wg sync.WaitGroup
	for i, s := range selected {
		wg.Add(1)
		go func(i int, s source.Source) {
			defer wg.Done()
			fetchCtx := ctx
			if u.sourceTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, u.sourceTimeout)
				defer cancel()
			}
			result, err := s.Fetch(fetchCtx, query)
			outcomes[i] = fetchOutcome{result: result, err: err}
		}(i, s)
	}
	wg.Wait()

	offers := make([]entity.Offer, 0)
	stats := fetchStats{failed: []string{}, fallback: []string{}}
	for i, s := range selected {
		outcome := outcomes[i]
		if outcome.err != nil {
			u.log.Warn("source fetch failed, contributing zero offers",
				"source", s.Name(), "error", outcome.err)
			stats.failed = append(stats.failed, s.Name())
			continue
		}
		if outcome.result.Fallback {
			stats.fallback = append(stats.fallback, s.Name())
		}
		offers = append(offers, u.normalizer.Normalize(outcome.result.Records, s.Kind())...)
	}

	return offers, stats
}

// dedupe drops offers sharing an ID. First seen wins and keeps its position;
// with LastSeenWins the later duplicate replaces the value at the original
// position, so ordering stays deterministic either way.
func (u *Usecase) dedupe(offers []entity.Offer) []entity.Offer {
	unique := make([]entity.Offer, 0, len(offers))
	position := make(map[string]int, len(offers))

	for _, offer := range offers {
		at, seen := position[offer.ID]
		if !seen {
			position[offer.ID] = len(unique)
			unique = append(unique, offer)
			continue
		}
		if u.lastSeenWins {
			unique[at] = offer
		}
	}

	return unique
}

func buildCriteria(query entity.Query) SearchCriteria {
	criteria := SearchCriteria{
		Origin:        query.Origin,
		Destination:   query.Destination,
		DepartureDate: query.DepartureDate.Format(dateLayout),
		Passengers:    query.Passengers,
		CabinClass:    string(query.CabinClass),
	}
	if query.ReturnDate != nil {
		value := query.ReturnDate.Format(dateLayout)
		criteria.ReturnDate = &value
	}
	return criteria
}
