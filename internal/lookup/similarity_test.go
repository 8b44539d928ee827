package lookup

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Jungle CRUISE", "jungle cruise"},
		{"separators", "Spider-Man.Far_From-Home", "spider man far from home"},
		{"ampersand", "Me & You", "me and you"},
		{"accents", "Amélie", "amelie"},
		{"punctuation dropped", "Mission: Impossible!", "mission impossible"},
		{"whitespace collapsed", "  The   Batman  ", "the batman"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeTitle(tc.input); got != tc.want {
				t.Fatalf("normalizeTitle(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSimilarityIdenticalStrings(t *testing.T) {
	if got := similarity("inception", "inception"); got != 1 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

func TestSimilarityTypo(t *testing.T) {
	got := similarity("incepton", "inception")
	if got < 0.85 {
		t.Fatalf("one-character typo should score high, got %v", got)
	}
}

func TestSimilarityTokenOrderInsensitive(t *testing.T) {
	plain := editRatio("book jungle", "jungle book")
	combined := similarity("book jungle", "jungle book")
	if combined != 1 {
		t.Fatalf("token-sorted pass should see identical strings, got %v", combined)
	}
	if plain >= combined {
		t.Fatalf("token sort must improve on plain ratio (%v vs %v)", plain, combined)
	}
}

func TestSimilarityUnrelatedStringsScoreLow(t *testing.T) {
	if got := similarity("zzz no match possible", "inception"); got > 0.3 {
		t.Fatalf("unrelated strings should score low, got %v", got)
	}
}

func TestSimilarityEmptyOperands(t *testing.T) {
	if got := similarity("", "inception"); got != 0 {
		t.Fatalf("expected 0 for empty operand, got %v", got)
	}
	if got := similarity("", ""); got != 0 {
		t.Fatalf("expected 0 for both empty, got %v", got)
	}
}
