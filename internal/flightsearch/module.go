package flightsearch

import (
	"log/slog"
	"time"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/cache"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/inbound"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/normalize"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/source"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/usecase"
	"github.com/anonymous-127001/travel-agent/internal/pkg/pkgconfig"
	"github.com/anonymous-127001/travel-agent/internal/pkg/pkgrouter"
	"github.com/anonymous-127001/travel-agent/internal/pkg/pkguid"
)

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
	UID    pkguid.StringID
}

func New(dep Dependency) error {
	log := slog.Default()

	var catalog source.Catalog
	if baseURL := dep.Config.GetString("modules.flight-search.structured.base_url"); baseURL != "" {
		catalog = source.NewHTTPCatalog(baseURL, dep.Config.GetString("modules.flight-search.structured.api_key"))
	} else {
		catalog = source.NewFileCatalog(dep.Config.GetString("modules.flight-search.structured.fixture_path"))
	}

	extractor := source.NewFileExtractor(dep.Config.GetString("modules.flight-search.scraper.fixture_path"))

	sources := []source.Source{
		source.NewStructuredAPI("structured-api", catalog, log),
		source.NewScraped("scraper", extractor, log),
	}

	if maxRetries := dep.Config.GetInt("modules.flight-search.source.max_retries"); maxRetries > 0 {
		for i := range sources {
			sources[i] = source.WithRetry(sources[i], maxRetries)
		}
	}
	if rateLimitMs := dep.Config.GetInt("modules.flight-search.source.rate_limit_ms"); rateLimitMs > 0 {
		for i := range sources {
			sources[i] = source.WithRateLimit(sources[i], time.Duration(rateLimitMs)*time.Millisecond)
		}
	}

	sourceTimeout := 1 * time.Second
	if timeoutMs := dep.Config.GetInt("modules.flight-search.source.timeout_ms"); timeoutMs > 0 {
		sourceTimeout = time.Duration(timeoutMs) * time.Millisecond
	}

	cacheTTL := 60 * time.Second
	if ttlSeconds := dep.Config.GetInt("modules.flight-search.cache.ttl_seconds"); ttlSeconds > 0 {
		cacheTTL = time.Duration(ttlSeconds) * time.Second
	}

	uc := usecase.New(usecase.Dependency{
		Sources:       sources,
		Normalizer:    normalize.New(dep.UID, log),
		Cache:         cache.New(usecase.CloneSearchOutput),
		CacheTTL:      cacheTTL,
		SourceTimeout: sourceTimeout,
		LastSeenWins:  dep.Config.GetBool("modules.flight-search.dedupe.last_seen_wins"),
		Logger:        log,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
