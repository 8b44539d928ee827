package mongorepo

import (
	"testing"
	"time"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

func TestToDocFromDocRoundtrip(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	user := domain.User{ID: 123456, Username: "moviefan", FirstName: "Ada"}

	doc := toDoc(user, now)
	if doc.ID != 123456 {
		t.Fatalf("ID: got %d", doc.ID)
	}
	if doc.CreatedAt != now.UnixMilli() {
		t.Fatalf("CreatedAt: got %d, want %d", doc.CreatedAt, now.UnixMilli())
	}

	got := fromDoc(doc)
	if got != user {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", got, user)
	}
}

func TestToDocOmitsEmptyDisplayFields(t *testing.T) {
	doc := toDoc(domain.User{ID: 7}, time.Now())
	if doc.Username != "" || doc.FirstName != "" {
		t.Fatalf("expected empty display fields, got %+v", doc)
	}
}
