package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
)

// Catalog supplies the candidate record set of a structured provider API.
// Implementations: FileCatalog over a fixture payload, HTTPCatalog over a
// live provider endpoint.
type Catalog interface {
	Records(ctx context.Context, query entity.Query) ([]entity.StructuredRecord, error)
}

// StructuredAPI adapts a structured provider catalog. Candidates are filtered
// by exact match of the first leg's origin and the last leg's destination;
// when nothing matches, the first two catalog records are returned as a
// defined fallback, so a non-empty result is not proof of an exact route hit.
type StructuredAPI struct {
	name    string
	catalog Catalog
	log     *slog.Logger
}

func NewStructuredAPI(name string, catalog Catalog, log *slog.Logger) *StructuredAPI {
	if log == nil {
		log = slog.Default()
	}
	return &StructuredAPI{name: name, catalog: catalog, log: log}
}

func (s *StructuredAPI) Kind() entity.SourceKind {
	return entity.SourceStructuredAPI
}

func (s *StructuredAPI) Name() string {
	return s.name
}

func (s *StructuredAPI) Fetch(ctx context.Context, query entity.Query) (Result, error) {
	candidates, err := s.catalog.Records(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("%s catalog: %w", s.name, err)
	}

	matched := make([]entity.RawRecord, 0, len(candidates))
	for _, rec := range candidates {
		if len(rec.FlightLegs) == 0 {
			continue
		}
		first := rec.FlightLegs[0]
		last := rec.FlightLegs[len(rec.FlightLegs)-1]
		if first.DepAirport == query.Origin && last.ArrAirport == query.Destination {
			matched = append(matched, entity.NewStructuredRecord(rec))
		}
	}

	if len(matched) > 0 {
		s.log.Info("structured source fetched",
			"source", s.name, "origin", query.Origin, "destination", query.Destination, "records", len(matched))
		return Result{Records: matched}, nil
	}

	fallback := candidates
	if len(fallback) > 2 {
		fallback = fallback[:2]
	}
	records := make([]entity.RawRecord, 0, len(fallback))
	for _, rec := range fallback {
		records = append(records, entity.NewStructuredRecord(rec))
	}

	s.log.Info("structured source has no exact route match, returning fallback subset",
		"source", s.name, "origin", query.Origin, "destination", query.Destination, "records", len(records))
	return Result{Records: records, Fallback: true}, nil
}

// FileCatalog reads a provider search payload from a fixture file, standing
// in for a real provider API during development and tests.
type FileCatalog struct {
	path string
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (c *FileCatalog) Records(_ context.Context, _ entity.Query) ([]entity.StructuredRecord, error) {
	data, err := os.ReadFile(filepath.Clean(c.path))
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var resp struct {
		Status  string                    `json:"status"`
		Flights []entity.StructuredRecord `json:"flights"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	return resp.Flights, nil
}
