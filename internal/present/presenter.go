// Package present maps lookup results onto transport-neutral presentables.
// It performs no I/O and holds no state: the same result always yields the
// same presentable.
package present

import (
	"fmt"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

// Presenter renders lookup results. The advisory texts distinguish "we could
// not reach the catalog" from "the catalog has no such title" so users do not
// assume a missing title when the source is down.
type Presenter struct {
	requestURL string
}

// NewPresenter builds a presenter. requestURL names the external channel
// where users can ask for titles missing from the catalog; empty omits the
// hint.
func NewPresenter(requestURL string) *Presenter {
	return &Presenter{requestURL: requestURL}
}

func (p *Presenter) Present(result domain.LookupResult) domain.Presentable {
	switch result.Kind {
	case domain.ResultFound:
		actions := make([]domain.Action, 0, len(result.Candidates))
		for _, candidate := range result.Candidates {
			actions = append(actions, domain.Action{
				Label:       candidate.Title,
				Destination: candidate.URL,
			})
		}
		return domain.Presentable{Actions: actions}

	case domain.ResultSourceUnavailable:
		return domain.Presentable{
			Advisory: "The movie catalog is unavailable right now. Please try again in a few minutes — the title you want may well be there.",
		}

	default:
		advisory := "Couldn't find any matching movies. Double-check the spelling or try a more specific title."
		if p.requestURL != "" {
			advisory = fmt.Sprintf("%s Still no luck? Request the movie here: %s", advisory, p.requestURL)
		}
		return domain.Presentable{Advisory: advisory}
	}
}
