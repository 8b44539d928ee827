package bot

import (
	"testing"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

func TestResultKeyboardOneButtonPerRow(t *testing.T) {
	p := domain.Presentable{Actions: []domain.Action{
		{Label: "Jungle Cruise", Destination: "https://files.example/jungle-cruise"},
		{Label: "Jungle Book", Destination: "https://files.example/jungle-book"},
	}}

	markup := resultKeyboard(p)
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(markup.InlineKeyboard))
	}
	for i, row := range markup.InlineKeyboard {
		if len(row) != 1 {
			t.Fatalf("row %d: expected 1 button, got %d", i, len(row))
		}
		if row[0].Text != p.Actions[i].Label {
			t.Fatalf("row %d: label %q, want %q", i, row[0].Text, p.Actions[i].Label)
		}
		if row[0].Url != p.Actions[i].Destination {
			t.Fatalf("row %d: url %q, want %q", i, row[0].Url, p.Actions[i].Destination)
		}
	}
}

func TestCommandPayload(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"/search Jungle Cruise", "Jungle Cruise"},
		{"/search", ""},
		{"/broadcast  hello all ", " hello all "},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		if got := commandPayload(tc.text); got != tc.want {
			t.Fatalf("commandPayload(%q): got %q, want %q", tc.text, got, tc.want)
		}
	}
}
