package people

import (
	"context"

	"github.com/collabdays/peoplefinder/internal/domain"
)

// Extractor derives structured filters from a raw query. It never fails;
// degraded extractions fall back to the raw query text.
type Extractor interface {
	Extract(ctx context.Context, query string) domain.Filters
}

// Searcher executes one fielded query against the people-search backend.
type Searcher interface {
	Execute(ctx context.Context, query string) ([]domain.Person, error)
}
