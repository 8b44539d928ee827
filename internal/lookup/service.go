package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
	"github.com/kniranjan1001/telegram-seach-bot/internal/metrics"
)

// CatalogFetcher retrieves a fresh catalog snapshot. An empty catalog means
// the source is unavailable.
type CatalogFetcher interface {
	Fetch(ctx context.Context) domain.Catalog
}

// Service runs the full lookup pipeline: fetch a fresh catalog, then match.
// Nothing is cached between queries; each invocation builds its own catalog
// copy and candidate list, so concurrent lookups are safe by construction.
type Service struct {
	fetcher CatalogFetcher
	opts    MatchOptions
	logger  *slog.Logger
}

func NewService(fetcher CatalogFetcher, opts MatchOptions, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, opts: opts, logger: logger}
}

// Lookup resolves a free-text query into one of the three result variants.
// It never returns an error: every failure path is folded into the result.
func (s *Service) Lookup(ctx context.Context, query string) domain.LookupResult {
	started := time.Now()

	catalog := s.fetcher.Fetch(ctx)
	result := Match(query, catalog, s.opts)

	elapsed := time.Since(started)
	metrics.LookupsTotal.WithLabelValues(string(result.Kind)).Inc()
	metrics.LookupDuration.Observe(elapsed.Seconds())

	s.logger.Info("lookup completed",
		slog.String("query", query),
		slog.String("outcome", string(result.Kind)),
		slog.Int("catalogTitles", catalog.Len()),
		slog.Int("candidates", len(result.Candidates)),
		slog.Int64("elapsedMs", elapsed.Milliseconds()),
	)
	return result
}
