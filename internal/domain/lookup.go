package domain

// Entry is a single catalog row: a movie title and the URL it resolves to.
type Entry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Catalog is the full title→URL mapping fetched from a remote source for one
// lookup. Entries keep the source document order so that ranking tie-breaks
// are deterministic (first-seen wins). Titles are unique per fetch.
type Catalog struct {
	Entries []Entry
}

// Empty reports whether the catalog holds no entries.
func (c Catalog) Empty() bool {
	return len(c.Entries) == 0
}

// Len returns the number of entries.
func (c Catalog) Len() int {
	return len(c.Entries)
}

// Candidate is one (title, url) pair considered a possible answer to a query.
// Score is the similarity signal used for ranking only; it is not surfaced
// to users.
type Candidate struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// SelectionMode controls how candidates are chosen when more than the result
// bound qualify: deterministic top-N by score, or a uniform random sample of
// the qualifying set (surfaces variety across repeated near-miss queries).
type SelectionMode string

const (
	SelectionTop    SelectionMode = "top"
	SelectionRandom SelectionMode = "random"
)

// NormalizeSelectionMode maps free-form input onto a supported mode,
// defaulting to deterministic top-N.
func NormalizeSelectionMode(raw string) SelectionMode {
	switch SelectionMode(raw) {
	case SelectionRandom:
		return SelectionRandom
	default:
		return SelectionTop
	}
}

type ResultKind string

const (
	// ResultFound means the matcher produced at least one candidate.
	ResultFound ResultKind = "found"
	// ResultNotFound means the catalog was searched but nothing qualified.
	ResultNotFound ResultKind = "not_found"
	// ResultSourceUnavailable means no catalog could be fetched; the user
	// should retry later rather than assume the title does not exist.
	ResultSourceUnavailable ResultKind = "source_unavailable"
)

// LookupResult is the tagged outcome of one query. Exactly one variant is
// produced: Found carries an ordered, bounded candidate list; the other two
// carry nothing beyond their kind.
type LookupResult struct {
	Kind       ResultKind  `json:"kind"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

func Found(candidates []Candidate) LookupResult {
	return LookupResult{Kind: ResultFound, Candidates: candidates}
}

func NotFound() LookupResult {
	return LookupResult{Kind: ResultNotFound}
}

func SourceUnavailable() LookupResult {
	return LookupResult{Kind: ResultSourceUnavailable}
}

// Action is one selectable row of a presented result: a label the user sees
// and the destination URL it opens.
type Action struct {
	Label       string `json:"label"`
	Destination string `json:"destination"`
}

// Presentable is what a transport renders to the user: either a list of
// selectable actions (one per row) or a plain advisory string, never both.
type Presentable struct {
	Actions  []Action `json:"actions,omitempty"`
	Advisory string   `json:"advisory,omitempty"`
}

// IsList reports whether the presentable renders as a selectable list.
func (p Presentable) IsList() bool {
	return len(p.Actions) > 0
}
