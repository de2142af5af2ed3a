// Package people orchestrates the people-search aggregation pipeline:
// extract filters, build queries, fan out to the backend, merge results.
package people

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/collabdays/peoplefinder/internal/domain"
	"github.com/collabdays/peoplefinder/internal/usecase/query"
)

// Service runs the search pipeline.
type Service struct {
	extractor Extractor
	searcher  Searcher
	logger    *zap.Logger
}

// New creates a people search service.
func New(extractor Extractor, searcher Searcher, logger *zap.Logger) *Service {
	return &Service{extractor: extractor, searcher: searcher, logger: logger}
}

// Search runs the full pipeline for a raw query. It never fails: extraction
// degrades to the raw query and failing backend queries contribute empty
// result sets, so the caller always gets a (possibly empty) list.
func (s *Service) Search(ctx context.Context, rawQuery string) []domain.Person {
	filters := s.extractor.Extract(ctx, rawQuery)

	queries := query.Build(filters, rawQuery)
	s.logger.Debug("Built search queries",
		zap.String("query", rawQuery),
		zap.Strings("search_queries", queries),
	)

	resultSets := s.executeAll(ctx, queries)

	merged := Merge(resultSets)
	s.logger.Info("People search completed",
		zap.String("query", rawQuery),
		zap.Int("search_queries", len(queries)),
		zap.Int("people", len(merged)),
	)
	return merged
}

// executeAll fans one goroutine out per query. Results land in an indexed
// slice so merge order matches build order regardless of completion order.
// A failing query is logged and yields an empty set; siblings are unaffected.
func (s *Service) executeAll(ctx context.Context, queries []string) [][]domain.Person {
	results := make([][]domain.Person, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			people, err := s.searcher.Execute(ctx, q)
			if err != nil {
				s.logger.Warn("Search query failed, continuing without its results",
					zap.String("search_query", q), zap.Error(err))
				results[i] = []domain.Person{}
				return
			}
			results[i] = people
		}(i, q)
	}
	wg.Wait()

	return results
}
