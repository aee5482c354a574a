// Package ratelimit tracks GitHub API quota observed by the fetch
// cores. REST derives snapshots from response headers, GraphQL from the
// embedded rateLimit field; both publish the same shape so consumers
// never need to know the source.
package ratelimit

import (
	"sync"
	"time"
)

// Snapshot is one observation of the API quota. ResetTime is epoch
// milliseconds regardless of which protocol produced it. Used carries
// the REST used-count or the GraphQL query cost.
type Snapshot struct {
	Remaining int   `json:"remaining"`
	Limit     int   `json:"limit"`
	ResetTime int64 `json:"resetTime"`
	Used      int   `json:"used"`
}

// ResetAt returns the reset time as a time.Time.
func (s Snapshot) ResetAt() time.Time {
	return time.UnixMilli(s.ResetTime)
}

// Observer receives quota snapshots published by the fetch cores.
type Observer interface {
	Publish(Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot)

// Publish calls f(snap).
func (f ObserverFunc) Publish(snap Snapshot) {
	f(snap)
}

// State is the default Observer: a last-value sink shared across both
// fetch cores, polled by display code.
type State struct {
	mu   sync.RWMutex
	last Snapshot
	seen bool
}

// NewState returns an empty State.
func NewState() *State {
	return &State{}
}

// Publish records snap as the latest observation.
func (s *State) Publish(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = snap
	s.seen = true
}

// Current returns the latest observation and whether one exists.
func (s *State) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.seen
}

// IsExhausted reports whether the last observation shows no remaining
// quota and the reset time is still in the future.
func (s *State) IsExhausted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.seen || s.last.Remaining > 0 {
		return false
	}
	return time.Now().Before(s.last.ResetAt())
}
