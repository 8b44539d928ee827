package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
	"github.com/kniranjan1001/telegram-seach-bot/internal/metrics"
)

// Fetcher retrieves a catalog from a fixed priority list of sources. Each
// source gets a bounded number of attempts with a fixed inter-attempt delay
// before the next source is tried. Exhaustion yields an empty catalog, never
// an error: the caller only distinguishes "got a catalog" from "did not".
type Fetcher struct {
	sources  []Source
	attempts int
	delay    time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

type FetcherConfig struct {
	Sources []Source
	// Attempts per source before falling through to the next one.
	Attempts int
	// Delay between attempts against the same source.
	Delay time.Duration
	// Timeout bounds a single attempt.
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	delay := cfg.Delay
	if delay < 0 {
		delay = 0
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		sources:  cfg.Sources,
		attempts: attempts,
		delay:    delay,
		timeout:  timeout,
		logger:   logger,
	}
}

// Fetch returns the first successfully parsed catalog, or an empty catalog
// when every source exhausts its retry budget. Network errors, timeouts and
// malformed payloads are all folded into the same empty outcome.
func (f *Fetcher) Fetch(ctx context.Context) domain.Catalog {
	for _, source := range f.sources {
		for attempt := 1; attempt <= f.attempts; attempt++ {
			if ctx.Err() != nil {
				return domain.Catalog{}
			}

			started := time.Now()
			attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
			catalog, err := source.Fetch(attemptCtx)
			cancel()
			metrics.CatalogFetchDuration.WithLabelValues(source.Name()).Observe(time.Since(started).Seconds())

			if err == nil {
				metrics.CatalogFetchesTotal.WithLabelValues(source.Name(), "ok").Inc()
				f.logger.Debug("catalog fetched",
					slog.String("source", source.Name()),
					slog.Int("attempt", attempt),
					slog.Int("titles", catalog.Len()),
				)
				return catalog
			}

			metrics.CatalogFetchesTotal.WithLabelValues(source.Name(), "error").Inc()
			f.logger.Warn("catalog fetch attempt failed",
				slog.String("source", source.Name()),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)

			// No sleep after the final attempt against a source.
			if attempt == f.attempts {
				break
			}
			timer := time.NewTimer(f.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return domain.Catalog{}
			case <-timer.C:
			}
		}
	}

	f.logger.Error("all catalog sources exhausted", slog.Int("sources", len(f.sources)))
	return domain.Catalog{}
}
