package lookup

import (
	"fmt"
	"testing"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

func catalogOf(pairs ...string) domain.Catalog {
	var catalog domain.Catalog
	for i := 0; i+1 < len(pairs); i += 2 {
		catalog.Entries = append(catalog.Entries, domain.Entry{Title: pairs[i], URL: pairs[i+1]})
	}
	return catalog
}

func titles(result domain.LookupResult) []string {
	names := make([]string, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		names = append(names, c.Title)
	}
	return names
}

func TestMatchEmptyCatalogIsSourceUnavailable(t *testing.T) {
	result := Match("anything", domain.Catalog{}, MatchOptions{})
	if result.Kind != domain.ResultSourceUnavailable {
		t.Fatalf("expected source_unavailable, got %q", result.Kind)
	}
}

func TestMatchExactTitleAppearsInExactPhase(t *testing.T) {
	catalog := catalogOf(
		"Jungle Cruise", "http://x/1",
		"Jungle Book", "http://x/2",
	)
	result := Match("Jungle Cruise", catalog, MatchOptions{})
	if result.Kind != domain.ResultFound {
		t.Fatalf("expected found, got %q", result.Kind)
	}
	// Matching direction is "title contains query": Jungle Book does not
	// contain "Jungle Cruise", so the exact phase yields exactly one hit.
	got := titles(result)
	if len(got) != 1 || got[0] != "Jungle Cruise" {
		t.Fatalf("expected exactly [Jungle Cruise], got %v", got)
	}
}

func TestMatchSubstringQueryHitsAllContainingTitles(t *testing.T) {
	catalog := catalogOf(
		"Jungle Cruise", "http://x/1",
		"Jungle Book", "http://x/2",
		"Inception", "http://x/3",
	)
	result := Match("jungle", catalog, MatchOptions{})
	if result.Kind != domain.ResultFound {
		t.Fatalf("expected found, got %q", result.Kind)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %v", titles(result))
	}
	for _, c := range result.Candidates {
		if c.Title == "Inception" {
			t.Fatalf("Inception must not match query %q", "jungle")
		}
	}
}

func TestMatchTypoFallsThroughToFuzzyPhase(t *testing.T) {
	catalog := catalogOf("Inception", "http://x/1")
	result := Match("Incepton", catalog, MatchOptions{MinSimilarity: 0.4})
	if result.Kind != domain.ResultFound {
		t.Fatalf("expected found via fuzzy phase, got %q", result.Kind)
	}
	got := titles(result)
	if len(got) != 1 || got[0] != "Inception" {
		t.Fatalf("expected [Inception], got %v", got)
	}
	if result.Candidates[0].URL != "http://x/1" {
		t.Fatalf("unexpected url: %q", result.Candidates[0].URL)
	}
}

func TestMatchNothingSimilarIsNotFound(t *testing.T) {
	var catalog domain.Catalog
	for i := 0; i < 1000; i++ {
		catalog.Entries = append(catalog.Entries, domain.Entry{
			Title: fmt.Sprintf("Movie Number %d", i),
			URL:   fmt.Sprintf("http://x/%d", i),
		})
	}
	result := Match("zzz_no_match_possible", catalog, MatchOptions{MinSimilarity: 0.4})
	if result.Kind != domain.ResultNotFound {
		t.Fatalf("expected not_found, got %q with %v", result.Kind, titles(result))
	}
}

func TestMatchSingleEntryCatalogRespectsBound(t *testing.T) {
	catalog := catalogOf("Inception", "http://x/1")
	result := Match("totally different text", catalog, MatchOptions{Limit: 6, MinSimilarity: 0})
	if result.Kind != domain.ResultFound {
		t.Fatalf("expected found with zero floor, got %q", result.Kind)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("bound violated: %v", titles(result))
	}
}

func TestMatchFoundNeverExceedsLimit(t *testing.T) {
	var catalog domain.Catalog
	for i := 0; i < 40; i++ {
		catalog.Entries = append(catalog.Entries, domain.Entry{
			Title: fmt.Sprintf("Jungle Adventure %d", i),
			URL:   fmt.Sprintf("http://x/%d", i),
		})
	}
	for _, mode := range []domain.SelectionMode{domain.SelectionTop, domain.SelectionRandom} {
		result := Match("jungle", catalog, MatchOptions{Limit: 6, Selection: mode})
		if result.Kind != domain.ResultFound {
			t.Fatalf("mode %q: expected found, got %q", mode, result.Kind)
		}
		if len(result.Candidates) > 6 {
			t.Fatalf("mode %q: bound violated with %d candidates", mode, len(result.Candidates))
		}
	}
}

func TestMatchTopSelectionIsDeterministic(t *testing.T) {
	catalog := catalogOf(
		"Inception", "http://x/1",
		"Inception 2", "http://x/2",
		"Interception", "http://x/3",
		"Inspection", "http://x/4",
	)
	first := Match("Incepton", catalog, MatchOptions{Limit: 2, MinSimilarity: 0.4})
	second := Match("Incepton", catalog, MatchOptions{Limit: 2, MinSimilarity: 0.4})
	if len(first.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %v", titles(first))
	}
	for i := range first.Candidates {
		if first.Candidates[i] != second.Candidates[i] {
			t.Fatalf("top selection must be stable: %v vs %v", titles(first), titles(second))
		}
	}
	if first.Candidates[0].Title != "Inception" {
		t.Fatalf("closest title must rank first, got %v", titles(first))
	}
}

func TestMatchRandomSelectionSamplesQualifyingSet(t *testing.T) {
	var catalog domain.Catalog
	for i := 0; i < 10; i++ {
		catalog.Entries = append(catalog.Entries, domain.Entry{
			Title: fmt.Sprintf("Jungle %d", i),
			URL:   fmt.Sprintf("http://x/%d", i),
		})
	}
	// Deterministic "random" source: always pick the furthest remaining slot.
	intN := func(n int) int { return n - 1 }
	result := Match("jungle", catalog, MatchOptions{Limit: 3, Selection: domain.SelectionRandom, IntN: intN})
	if result.Kind != domain.ResultFound {
		t.Fatalf("expected found, got %q", result.Kind)
	}
	if len(result.Candidates) != 3 {
		t.Fatalf("expected 3 sampled candidates, got %v", titles(result))
	}
	seen := make(map[string]bool)
	for _, c := range result.Candidates {
		if seen[c.Title] {
			t.Fatalf("sample contains duplicate %q", c.Title)
		}
		seen[c.Title] = true
	}
}

func TestMatchTieBreaksByCatalogOrder(t *testing.T) {
	catalog := catalogOf(
		"Jungle One", "http://x/1",
		"Jungle Two", "http://x/2",
		"Jungle Ten", "http://x/3",
	)
	result := Match("jungle", catalog, MatchOptions{Limit: 6})
	if result.Kind != domain.ResultFound {
		t.Fatalf("expected found, got %q", result.Kind)
	}
	// All three contain the query with equal-length titles and identical
	// scores; catalog order must be preserved.
	got := titles(result)
	want := []string{"Jungle One", "Jungle Two", "Jungle Ten"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie-break broke catalog order: got %v", got)
		}
	}
}

func TestMatchIsCaseAndAccentInsensitive(t *testing.T) {
	catalog := catalogOf("Amélie", "http://x/1")
	result := Match("AMELIE", catalog, MatchOptions{})
	if result.Kind != domain.ResultFound {
		t.Fatalf("expected found, got %q", result.Kind)
	}
	if result.Candidates[0].Title != "Amélie" {
		t.Fatalf("expected original title preserved, got %v", titles(result))
	}
}
