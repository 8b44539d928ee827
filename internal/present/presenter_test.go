package present

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

func TestPresentFoundKeepsOrderOneActionPerCandidate(t *testing.T) {
	result := domain.Found([]domain.Candidate{
		{Title: "Jungle Cruise", URL: "http://x/1", Score: 1},
		{Title: "Jungle Book", URL: "http://x/2", Score: 0.8},
	})
	presentable := NewPresenter("").Present(result)

	if !presentable.IsList() {
		t.Fatal("found result must render as a list")
	}
	if presentable.Advisory != "" {
		t.Fatalf("list presentable must carry no advisory, got %q", presentable.Advisory)
	}
	want := []domain.Action{
		{Label: "Jungle Cruise", Destination: "http://x/1"},
		{Label: "Jungle Book", Destination: "http://x/2"},
	}
	if !reflect.DeepEqual(presentable.Actions, want) {
		t.Fatalf("actions mismatch: got %v, want %v", presentable.Actions, want)
	}
}

func TestPresentNotFoundMentionsRequestChannel(t *testing.T) {
	presenter := NewPresenter("https://t.me/request_channel")
	presentable := presenter.Present(domain.NotFound())

	if presentable.IsList() {
		t.Fatal("not_found must render as advisory text")
	}
	if !strings.Contains(presentable.Advisory, "https://t.me/request_channel") {
		t.Fatalf("advisory must name the request channel, got %q", presentable.Advisory)
	}
}

func TestPresentDistinguishesUnavailableFromNotFound(t *testing.T) {
	presenter := NewPresenter("")
	unavailable := presenter.Present(domain.SourceUnavailable())
	notFound := presenter.Present(domain.NotFound())

	if unavailable.IsList() || notFound.IsList() {
		t.Fatal("both variants must render as advisory text")
	}
	if unavailable.Advisory == notFound.Advisory {
		t.Fatal("unavailable and not_found advisories must differ")
	}
	if !strings.Contains(strings.ToLower(unavailable.Advisory), "try again") {
		t.Fatalf("unavailable advisory must suggest retrying, got %q", unavailable.Advisory)
	}
}

func TestPresentIsIdempotent(t *testing.T) {
	presenter := NewPresenter("https://t.me/request_channel")
	results := []domain.LookupResult{
		domain.Found([]domain.Candidate{{Title: "Inception", URL: "http://x/1"}}),
		domain.NotFound(),
		domain.SourceUnavailable(),
	}
	for _, result := range results {
		first := presenter.Present(result)
		second := presenter.Present(result)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("present is not idempotent for %q", result.Kind)
		}
	}
}
