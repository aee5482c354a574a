package store

import (
	"fmt"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "state.json"))
}

func TestPinUnpin(t *testing.T) {
	s := tempStore(t)

	if err := s.Pin("golang/go"); err != nil {
		t.Fatalf("Pin() error: %v", err)
	}
	if err := s.Pin("golang/go"); err != nil {
		t.Fatalf("repeat Pin() error: %v", err)
	}
	if err := s.Pin("torvalds/linux"); err != nil {
		t.Fatalf("Pin() error: %v", err)
	}

	pinned := s.Pinned()
	if len(pinned) != 2 {
		t.Fatalf("Pinned() = %v, want 2 entries", pinned)
	}
	if pinned[0] != "golang/go" || pinned[1] != "torvalds/linux" {
		t.Errorf("Pinned() = %v, want pin order preserved", pinned)
	}
	if !s.IsPinned("golang/go") {
		t.Error("IsPinned() = false, want true")
	}

	if err := s.Unpin("golang/go"); err != nil {
		t.Fatalf("Unpin() error: %v", err)
	}
	if s.IsPinned("golang/go") {
		t.Error("IsPinned() = true after Unpin()")
	}
	if got := s.Pinned(); len(got) != 1 || got[0] != "torvalds/linux" {
		t.Errorf("Pinned() = %v after Unpin()", got)
	}
}

func TestFavorites(t *testing.T) {
	s := tempStore(t)

	if err := s.Favorite("octocat"); err != nil {
		t.Fatalf("Favorite() error: %v", err)
	}
	if err := s.Favorite("octocat"); err != nil {
		t.Fatalf("repeat Favorite() error: %v", err)
	}
	if got := s.Favorites(); len(got) != 1 || got[0] != "octocat" {
		t.Errorf("Favorites() = %v", got)
	}

	if err := s.Unfavorite("octocat"); err != nil {
		t.Fatalf("Unfavorite() error: %v", err)
	}
	if got := s.Favorites(); len(got) != 0 {
		t.Errorf("Favorites() = %v after Unfavorite()", got)
	}
}

func TestSearchHistoryBoundedAndDeduplicated(t *testing.T) {
	s := tempStore(t)

	for i := 0; i < MaxHistory+10; i++ {
		if err := s.RecordSearch(fmt.Sprintf("query-%d", i)); err != nil {
			t.Fatalf("RecordSearch() error: %v", err)
		}
	}

	history := s.History()
	if len(history) != MaxHistory {
		t.Fatalf("history length = %d, want %d", len(history), MaxHistory)
	}
	if history[0].Query != fmt.Sprintf("query-%d", MaxHistory+9) {
		t.Errorf("most recent entry = %q", history[0].Query)
	}

	// Repeating a query moves it to the front without duplicating.
	if err := s.RecordSearch("query-40"); err != nil {
		t.Fatalf("RecordSearch() error: %v", err)
	}
	history = s.History()
	if history[0].Query != "query-40" {
		t.Errorf("repeated query not moved to front: %q", history[0].Query)
	}
	seen := 0
	for _, e := range history {
		if e.Query == "query-40" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("query-40 appears %d times, want 1", seen)
	}
}

func TestPersistenceAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s := NewStoreAt(path)
	if err := s.Pin("golang/go"); err != nil {
		t.Fatalf("Pin() error: %v", err)
	}
	if err := s.Favorite("octocat"); err != nil {
		t.Fatalf("Favorite() error: %v", err)
	}
	if err := s.RecordSearch("tui framework"); err != nil {
		t.Fatalf("RecordSearch() error: %v", err)
	}

	reloaded := NewStoreAt(path)
	if !reloaded.IsPinned("golang/go") {
		t.Error("pin not persisted")
	}
	if got := reloaded.Favorites(); len(got) != 1 || got[0] != "octocat" {
		t.Errorf("favorites not persisted: %v", got)
	}
	if got := reloaded.History(); len(got) != 1 || got[0].Query != "tui framework" {
		t.Errorf("history not persisted: %v", got)
	}
}

func TestClearHistory(t *testing.T) {
	s := tempStore(t)
	if err := s.RecordSearch("anything"); err != nil {
		t.Fatalf("RecordSearch() error: %v", err)
	}
	if err := s.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory() error: %v", err)
	}
	if got := s.History(); len(got) != 0 {
		t.Errorf("History() = %v after clear", got)
	}
}
