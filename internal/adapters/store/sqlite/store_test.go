package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/adapters/store/sqlite"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "dreams.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndList(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	saved, err := s.Append(ctx, domain.Dream{
		UserID:         "u1",
		DreamText:      "denizde yüzüyordum",
		Interpretation: "bilinçaltı yorumu",
		Energy:         75,
		Symbols:        []domain.Symbol{{Name: "Deniz", Meaning: "bilinçaltı"}},
		Sentiment:      "positive",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if saved.ID == "" {
		t.Error("Append must assign an id")
	}
	if saved.Date.IsZero() {
		t.Error("Append must assign a date")
	}

	dreams, err := s.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(dreams) != 1 {
		t.Fatalf("got %d dreams, want 1", len(dreams))
	}
	got := dreams[0]
	if got.ID != saved.ID || got.DreamText != "denizde yüzüyordum" || got.Energy != 75 {
		t.Errorf("round-tripped dream mismatch: %+v", got)
	}
	if len(got.Symbols) != 1 || got.Symbols[0].Name != "Deniz" {
		t.Errorf("symbols did not round-trip: %+v", got.Symbols)
	}
	if got.Sentiment != "positive" {
		t.Errorf("sentiment = %q, want %q", got.Sentiment, "positive")
	}
}

func TestListByUser_NewestFirstAndScoped(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	older := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mustAppend(t, s, domain.Dream{UserID: "u1", DreamText: "eski rüya metni", Date: older})
	mustAppend(t, s, domain.Dream{UserID: "u1", DreamText: "yeni rüya metni", Date: newer})
	mustAppend(t, s, domain.Dream{UserID: "u2", DreamText: "başka kullanıcının rüyası"})

	dreams, err := s.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(dreams) != 2 {
		t.Fatalf("got %d dreams, want 2", len(dreams))
	}
	if dreams[0].DreamText != "yeni rüya metni" {
		t.Errorf("newest dream must come first, got %q", dreams[0].DreamText)
	}
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	saved := mustAppend(t, s, domain.Dream{UserID: "u1", DreamText: "silinecek rüya"})

	if err := s.Delete(ctx, saved.ID, "u2"); !errors.Is(err, domain.ErrDreamNotFound) {
		t.Errorf("deleting another user's dream: err = %v, want ErrDreamNotFound", err)
	}
	if err := s.Delete(ctx, saved.ID, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, saved.ID, "u1"); !errors.Is(err, domain.ErrDreamNotFound) {
		t.Errorf("second delete: err = %v, want ErrDreamNotFound", err)
	}
}

func TestSetFavorite(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	saved := mustAppend(t, s, domain.Dream{UserID: "u1", DreamText: "favori rüya"})

	if err := s.SetFavorite(ctx, saved.ID, true); err != nil {
		t.Fatalf("SetFavorite: %v", err)
	}
	dreams, err := s.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if !dreams[0].IsFavorite {
		t.Error("dream must be marked favorite")
	}

	if err := s.SetFavorite(ctx, "no-such-id", true); !errors.Is(err, domain.ErrDreamNotFound) {
		t.Errorf("unknown id: err = %v, want ErrDreamNotFound", err)
	}
}

func mustAppend(t *testing.T, s *sqlite.Store, d domain.Dream) domain.Dream {
	t.Helper()
	saved, err := s.Append(context.Background(), d)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	return saved
}
