package lookup

import (
	"context"
	"testing"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

type staticFetcher struct {
	catalog domain.Catalog
	calls   int
}

func (f *staticFetcher) Fetch(_ context.Context) domain.Catalog {
	f.calls++
	return f.catalog
}

func TestServiceLookupFetchesFreshCatalogEveryTime(t *testing.T) {
	fetcher := &staticFetcher{catalog: catalogOf("Inception", "http://x/1")}
	service := NewService(fetcher, MatchOptions{MinSimilarity: 0.4}, nil)

	for i := 0; i < 3; i++ {
		result := service.Lookup(context.Background(), "Inception")
		if result.Kind != domain.ResultFound {
			t.Fatalf("expected found, got %q", result.Kind)
		}
	}
	if fetcher.calls != 3 {
		t.Fatalf("expected a fetch per lookup, got %d fetches", fetcher.calls)
	}
}

func TestServiceLookupUnavailableWhenFetcherComesBackEmpty(t *testing.T) {
	service := NewService(&staticFetcher{}, MatchOptions{}, nil)
	result := service.Lookup(context.Background(), "anything")
	if result.Kind != domain.ResultSourceUnavailable {
		t.Fatalf("expected source_unavailable, got %q", result.Kind)
	}
}
