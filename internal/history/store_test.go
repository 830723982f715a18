package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := openAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("openAt: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(t.Context(), Run{
		Operation:  "analyze niche",
		Input:      "stoic philosophy",
		Status:     StatusCompleted,
		ResultJSON: `{"name":"Stoic Philosophy","trendScore":8}`,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected assigned run ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected assigned timestamp")
	}

	got, err := store.Get(t.Context(), saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Operation != "analyze niche" || got.ResultJSON != saved.ResultJSON {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.Succeeded() {
		t.Fatal("completed run should report success")
	}
}

func TestSaveRejectsInvalidRuns(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(t.Context(), Run{Status: StatusCompleted}); err == nil {
		t.Fatal("missing operation must be rejected")
	}
	if _, err := store.Save(t.Context(), Run{Operation: "x", Status: Status("running")}); err == nil {
		t.Fatal("unknown status must be rejected")
	}
}

func TestGetByPrefix(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(t.Context(), Run{Operation: "build plan", Status: StatusCompleted})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(t.Context(), saved.ID[:8])
	if err != nil {
		t.Fatalf("Get by prefix: %v", err)
	}
	if got.ID != saved.ID {
		t.Fatalf("got %q, want %q", got.ID, saved.ID)
	}

	if _, err := store.Get(t.Context(), "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := store.Save(t.Context(), Run{
			Operation: "generate concepts",
			Input:     "fitness",
			Status:    StatusCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	runs, err := store.Recent(t.Context(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if !runs[0].CreatedAt.After(runs[1].CreatedAt) {
		t.Fatalf("runs out of order: %v then %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}
}

func TestRecordsFailedRuns(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(t.Context(), Run{
		Operation:    "produce video",
		Input:        "a sunrise",
		Status:       StatusFailed,
		ErrorMessage: "timeout: studio: produce video: job did not finish in time",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(t.Context(), saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Succeeded() {
		t.Fatal("failed run must not report success")
	}
	if got.ErrorMessage == "" {
		t.Fatal("expected retained error message")
	}
}

func TestPurgeRemovesOldRuns(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	if _, err := store.Save(t.Context(), Run{Operation: "old", Status: StatusCompleted, CreatedAt: now.Add(-48 * time.Hour)}); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	if _, err := store.Save(t.Context(), Run{Operation: "new", Status: StatusCompleted, CreatedAt: now}); err != nil {
		t.Fatalf("Save new: %v", err)
	}

	removed, err := store.Purge(t.Context(), now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	runs, err := store.Recent(t.Context(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 || runs[0].Operation != "new" {
		t.Fatalf("unexpected remaining runs: %+v", runs)
	}
}
