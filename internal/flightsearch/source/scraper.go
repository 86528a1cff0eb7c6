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

// Extractor pulls free-text flight listings out of a scrape target. Real
// implementations drive a browser; the core only depends on this contract.
type Extractor interface {
	Extract(ctx context.Context, query entity.Query) ([]entity.ScrapedRecord, error)
}

// Scraped adapts a text-extraction source. An extraction failure is caught,
// logged, and replaced with a fixed substitute record set; Result.Fallback
// distinguishes that from a genuine scrape so callers are never silently fed
// canned data.
type Scraped struct {
	name      string
	extractor Extractor
	log       *slog.Logger
}

func NewScraped(name string, extractor Extractor, log *slog.Logger) *Scraped {
	if log == nil {
		log = slog.Default()
	}
	return &Scraped{name: name, extractor: extractor, log: log}
}

func (s *Scraped) Kind() entity.SourceKind {
	return entity.SourceScraped
}

func (s *Scraped) Name() string {
	return s.name
}

func (s *Scraped) Fetch(ctx context.Context, query entity.Query) (Result, error) {
	raw, err := s.extractor.Extract(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		s.log.Warn("scrape extraction failed, substituting sample records",
			"source", s.name, "origin", query.Origin, "destination", query.Destination, "error", err)
		return Result{Records: substituteRecords(query), Fallback: true}, nil
	}

	records := make([]entity.RawRecord, 0, len(raw))
	for _, rec := range raw {
		records = append(records, entity.NewScrapedRecord(rec))
	}

	s.log.Info("scraped source fetched",
		"source", s.name, "origin", query.Origin, "destination", query.Destination, "records", len(records))
	return Result{Records: records}, nil
}

// substituteRecords mimics the shape of a real scrape closely enough for the
// rest of the pipeline to exercise its normalization path.
func substituteRecords(query entity.Query) []entity.RawRecord {
	return []entity.RawRecord{
		entity.NewScrapedRecord(entity.ScrapedRecord{
			AirlineName:      "AirScraper One",
			DepartureInfo:    fmt.Sprintf("%s at 08:00 AM", query.Origin),
			ArrivalInfo:      fmt.Sprintf("%s at 11:30 AM", query.Destination),
			PriceDetails:     "USD 275.50",
			StopsDescription: "1 stop (XYZ)",
			DurationRaw:      "Total 5h 30m (flight 4h)",
		}),
		entity.NewScrapedRecord(entity.ScrapedRecord{
			AirlineName:      "FlyScrape Airways",
			DepartureInfo:    fmt.Sprintf("%s at 10:00 AM", query.Origin),
			ArrivalInfo:      fmt.Sprintf("%s at 01:00 PM", query.Destination),
			PriceDetails:     "$310.00",
			StopsDescription: "Non-stop",
			DurationRaw:      "3h 0m",
		}),
	}
}

// FileExtractor reads scraped listings from a fixture file, standing in for a
// browser-driven extractor.
type FileExtractor struct {
	path string
}

func NewFileExtractor(path string) *FileExtractor {
	return &FileExtractor{path: path}
}

func (e *FileExtractor) Extract(_ context.Context, _ entity.Query) ([]entity.ScrapedRecord, error) {
	data, err := os.ReadFile(filepath.Clean(e.path))
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var records []entity.ScrapedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return records, nil
}
