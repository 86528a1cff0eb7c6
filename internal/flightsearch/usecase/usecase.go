package usecase

import (
	"log/slog"
	"time"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/cache"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/normalize"
	"github.com/anonymous-127001/travel-agent/internal/flightsearch/source"
)

// Ranker orders two offers; when nil, offers keep the deterministic
// source-invocation then in-source order. Ranking policies plug in here
// without touching the aggregation pipeline.
type Ranker func(a, b entity.Offer) bool

type Dependency struct {
	Sources       []source.Source
	Normalizer    *normalize.Normalizer
	Cache         *cache.Cache[*SearchOutput]
	CacheTTL      time.Duration
	SourceTimeout time.Duration
	// LastSeenWins flips dedupe to keep the last duplicate instead of the
	// first. Default is first-seen-wins.
	LastSeenWins bool
	Ranker       Ranker
	Logger       *slog.Logger
}

type Usecase struct {
	sources       []source.Source
	normalizer    *normalize.Normalizer
	cache         *cache.Cache[*SearchOutput]
	cacheTTL      time.Duration
	sourceTimeout time.Duration
	lastSeenWins  bool
	ranker        Ranker
	log           *slog.Logger
}

func New(dep Dependency) *Usecase {
	log := dep.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Usecase{
		sources:       dep.Sources,
		normalizer:    dep.Normalizer,
		cache:         dep.Cache,
		cacheTTL:      dep.CacheTTL,
		sourceTimeout: dep.SourceTimeout,
		lastSeenWins:  dep.LastSeenWins,
		ranker:        dep.Ranker,
		log:           log,
	}
}
