package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/collabdays/peoplefinder/internal/domain"
)

// systemPrompt instructs the model to answer with a compact JSON object only.
const systemPrompt = `You are a search filter extractor for a people directory.
Extract search filters from the user's query and respond with a compact JSON object only, no prose and no markdown:
{"skills": ["<skill>", ...], "department": "<department or empty>", "officeNumber": "<office or location or empty>"}
Omit keys you cannot fill. Do not invent values that are not in the query.`

// Service derives structured search filters from free-text queries.
// A nil completer disables language-model extraction entirely.
type Service struct {
	completer Completer
	logger    *zap.Logger
}

// New creates a filter extraction service. completer may be nil.
func New(completer Completer, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// Extract turns a raw query into structured filters. It never fails: every
// error path degrades to searching on the raw query text.
func (s *Service) Extract(ctx context.Context, query string) domain.Filters {
	if s.completer == nil {
		s.logger.Warn("Extraction backend not configured, searching on raw query",
			zap.String("query", query))
		return domain.FallbackFilters(query)
	}

	text, err := s.completer.Complete(ctx, systemPrompt, query)
	if err != nil {
		s.logger.Warn("Extraction call failed, searching on raw query",
			zap.String("query", query), zap.Error(err))
		return domain.FallbackFilters(query)
	}

	if filters, ok := parseFilterJSON(text); ok {
		return filters
	}

	if filters, ok := parseHeuristic(text, query); ok {
		s.logger.Debug("Extraction response was not JSON, used heuristic parse",
			zap.String("query", query))
		return filters
	}

	s.logger.Warn("Extraction response unusable, searching on raw query",
		zap.String("query", query))
	return domain.FallbackFilters(query)
}
