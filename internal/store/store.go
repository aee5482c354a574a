// Package store persists small pieces of caller state (pinned
// repositories, favorite users, recent searches) as JSON files under
// the user cache directory. The API client never reads any of this;
// it exists for the command layer.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/log"
)

// MaxHistory bounds the search history; older entries fall off.
const MaxHistory = 50

// SearchEntry is one remembered search.
type SearchEntry struct {
	Query      string    `json:"query"`
	SearchedAt time.Time `json:"searchedAt"`
}

type state struct {
	Pinned    []string      `json:"pinned"`
	Favorites []string      `json:"favorites"`
	History   []SearchEntry `json:"history"`
}

// Store manages persistence of pinned repos, favorite users and
// search history.
type Store struct {
	path  string
	state state
	mu    sync.RWMutex
}

// NewStore creates a store backed by the default cache location.
func NewStore() (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(cacheDir, "gitpulse")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return NewStoreAt(filepath.Join(dir, "state.json")), nil
}

// NewStoreAt creates a store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		log.Debug("could not load state store, starting fresh", "error", err)
	}
	return s
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &s.state)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Pin adds a repository (owner/name) to the pinned list. Pinning an
// already-pinned repository is a no-op.
func (s *Store) Pin(fullName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.state.Pinned {
		if p == fullName {
			return nil
		}
	}
	s.state.Pinned = append(s.state.Pinned, fullName)
	return s.save()
}

// Unpin removes a repository from the pinned list.
func (s *Store) Unpin(fullName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Pinned = remove(s.state.Pinned, fullName)
	return s.save()
}

// Pinned returns the pinned repositories in pin order.
func (s *Store) Pinned() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.state.Pinned))
	copy(out, s.state.Pinned)
	return out
}

// IsPinned reports whether a repository is pinned.
func (s *Store) IsPinned(fullName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.state.Pinned {
		if p == fullName {
			return true
		}
	}
	return false
}

// Favorite adds a user login to the favorites list.
func (s *Store) Favorite(login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.state.Favorites {
		if f == login {
			return nil
		}
	}
	s.state.Favorites = append(s.state.Favorites, login)
	return s.save()
}

// Unfavorite removes a user login from the favorites list.
func (s *Store) Unfavorite(login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Favorites = remove(s.state.Favorites, login)
	return s.save()
}

// Favorites returns the favorite users in the order added.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.state.Favorites))
	copy(out, s.state.Favorites)
	return out
}

// RecordSearch prepends a query to the search history. Repeated
// queries move to the front rather than duplicating, and the history
// is trimmed to MaxHistory.
func (s *Store) RecordSearch(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]SearchEntry, 0, len(s.state.History)+1)
	history = append(history, SearchEntry{Query: query, SearchedAt: time.Now()})
	for _, e := range s.state.History {
		if e.Query == query {
			continue
		}
		history = append(history, e)
	}
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	s.state.History = history
	return s.save()
}

// History returns the search history, most recent first.
func (s *Store) History() []SearchEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SearchEntry, len(s.state.History))
	copy(out, s.state.History)
	return out
}

// ClearHistory drops all remembered searches.
func (s *Store) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.History = nil
	return s.save()
}

func remove(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
