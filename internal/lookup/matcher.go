package lookup

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

const defaultResultLimit = 6

// MatchOptions bound and shape the candidate set.
type MatchOptions struct {
	// Limit caps the number of candidates in a Found result.
	Limit int
	// MinSimilarity is the fuzzy-phase score floor in [0, 1].
	MinSimilarity float64
	// Selection picks top-N or a random sample when more than Limit qualify.
	Selection domain.SelectionMode
	// IntN overrides the random source for SelectionRandom; nil uses the
	// package default. Tests inject a deterministic one.
	IntN func(n int) int
}

func (o MatchOptions) limit() int {
	if o.Limit <= 0 {
		return defaultResultLimit
	}
	return o.Limit
}

type scored struct {
	entry domain.Entry
	score float64
	order int
}

// Match runs the two-phase query-to-catalog match. The exact phase collects
// catalog titles that contain the query as a substring (matching direction:
// title contains query; case- and accent-insensitive). Only when the exact
// phase is empty does the fuzzy phase score every title and keep those above
// the similarity floor. Either way the result is ranked by score, bounded by
// Limit, with catalog order breaking ties.
func Match(query string, catalog domain.Catalog, opts MatchOptions) domain.LookupResult {
	if catalog.Empty() {
		return domain.SourceUnavailable()
	}

	normQuery := normalizeTitle(strings.TrimSpace(query))
	if normQuery == "" {
		return domain.NotFound()
	}

	qualifying := exactPhase(normQuery, catalog)
	if len(qualifying) == 0 {
		qualifying = fuzzyPhase(normQuery, catalog, opts.MinSimilarity)
	}
	if len(qualifying) == 0 {
		return domain.NotFound()
	}

	selected := selectBounded(qualifying, opts)
	candidates := make([]domain.Candidate, 0, len(selected))
	for _, item := range selected {
		candidates = append(candidates, domain.Candidate{
			Title: item.entry.Title,
			URL:   item.entry.URL,
			Score: item.score,
		})
	}
	return domain.Found(candidates)
}

func exactPhase(normQuery string, catalog domain.Catalog) []scored {
	var matches []scored
	for i, entry := range catalog.Entries {
		normTitle := normalizeTitle(entry.Title)
		if !strings.Contains(normTitle, normQuery) {
			continue
		}
		matches = append(matches, scored{
			entry: entry,
			score: similarity(normQuery, normTitle),
			order: i,
		})
	}
	return matches
}

func fuzzyPhase(normQuery string, catalog domain.Catalog, floor float64) []scored {
	var matches []scored
	for i, entry := range catalog.Entries {
		score := similarity(normQuery, normalizeTitle(entry.Title))
		if score < floor {
			continue
		}
		matches = append(matches, scored{entry: entry, score: score, order: i})
	}
	return matches
}

// selectBounded ranks the qualifying set and truncates it to the limit.
// SelectionRandom samples uniformly among the qualifiers instead of taking
// the top-N, then still presents the sample ordered by score.
func selectBounded(qualifying []scored, opts MatchOptions) []scored {
	limit := opts.limit()

	if opts.Selection == domain.SelectionRandom && len(qualifying) > limit {
		qualifying = sampleWithoutReplacement(qualifying, limit, opts.IntN)
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		if qualifying[i].score != qualifying[j].score {
			return qualifying[i].score > qualifying[j].score
		}
		return qualifying[i].order < qualifying[j].order
	})

	if len(qualifying) > limit {
		qualifying = qualifying[:limit]
	}
	return qualifying
}

func sampleWithoutReplacement(items []scored, n int, intN func(int) int) []scored {
	if intN == nil {
		intN = rand.IntN
	}
	pool := make([]scored, len(items))
	copy(pool, items)
	// Partial Fisher-Yates: the first n slots end up holding the sample.
	for i := 0; i < n && i < len(pool); i++ {
		j := i + intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
