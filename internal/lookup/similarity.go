package lookup

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeTitle lowercases, folds accents, maps "&" to "and", replaces
// dot/dash/underscore separators with spaces and collapses whitespace, so
// "Amélie" matches "Amelie" and "Spider-Man" matches "spider man".
func normalizeTitle(raw string) string {
	value := strings.ReplaceAll(raw, "&", " and ")
	if folded, _, err := transform.String(foldAccents, value); err == nil {
		value = folded
	}

	var builder strings.Builder
	builder.Grow(len(value))
	for _, r := range strings.ToLower(value) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
		case unicode.IsSpace(r) || r == '.' || r == '-' || r == '_' || r == ':':
			builder.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

// similarity scores two already-normalized strings in [0, 1]. It takes the
// better of a plain edit-distance ratio and a token-sort ratio, so word order
// ("Book Jungle" vs "Jungle Book") does not sink otherwise close titles.
func similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	score := editRatio(a, b)
	if sorted := editRatio(sortTokens(a), sortTokens(b)); sorted > score {
		score = sorted
	}
	return score
}

func editRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

func sortTokens(value string) string {
	tokens := strings.Fields(value)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
