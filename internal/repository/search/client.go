// Package search implements the people-search backend client.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/collabdays/peoplefinder/internal/domain"
	"github.com/collabdays/peoplefinder/internal/metrics"
)

// PeopleSourceID is the backend's fixed people result source identifier.
const PeopleSourceID = "b09a7990-05ea-4af9-81ef-edfab16c4e31"

// TokenProvider supplies a bearer token for the search backend.
// Token acquisition itself is outside this package; callers plug in
// whatever auth flow they have.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenProvider returns a fixed, pre-acquired token.
type StaticTokenProvider string

// Token implements TokenProvider.
func (t StaticTokenProvider) Token(context.Context) (string, error) {
	return string(t), nil
}

// Client issues fielded queries against the people-search backend.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	selectProps []string
	tokens      TokenProvider
	logger      *zap.Logger
}

// Config holds the search backend settings.
type Config struct {
	Endpoint         string
	SelectProperties []string // empty = DefaultSelectProperties
	Timeout          time.Duration
	Tokens           TokenProvider
	Logger           *zap.Logger
}

// NewClient creates a people-search backend client.
func NewClient(cfg *Config) *Client {
	props := cfg.SelectProperties
	if len(props) == 0 {
		props = DefaultSelectProperties()
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		endpoint:    cfg.Endpoint,
		selectProps: props,
		tokens:      cfg.Tokens,
		logger:      cfg.Logger,
	}
}

// Execute runs one fielded query and returns the parsed person records.
// The error covers transport and non-2xx failures; rows that cannot be
// parsed into a named person are dropped silently.
func (c *Client) Execute(ctx context.Context, query string) ([]domain.Person, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire token: %w", err)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	params := u.Query()
	params.Set("querytext", "'"+query+"'")
	params.Set("sourceid", "'"+PeopleSourceID+"'")
	params.Set("selectproperties", "'"+strings.Join(c.selectProps, ",")+"'")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search request: %w: %w", err, domain.ErrSearchBackendError)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search backend returned %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(snippet)), domain.ErrSearchBackendError)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode search response: %w: %w", err, domain.ErrSearchBackendError)
	}

	metrics.SearchRequestsTotal.WithLabelValues("success").Inc()
	metrics.SearchRequestDuration.Observe(time.Since(start).Seconds())

	people := parseRows(parsed.PrimaryQueryResult.RelevantResults.Table.Rows)
	c.logger.Debug("Search query executed",
		zap.String("query", query),
		zap.Int("rows", len(parsed.PrimaryQueryResult.RelevantResults.Table.Rows)),
		zap.Int("people", len(people)),
	)
	return people, nil
}
