package ratelimit

import (
	"testing"
	"time"
)

func TestStateCurrent(t *testing.T) {
	s := NewState()

	if _, ok := s.Current(); ok {
		t.Error("fresh state should have no observation")
	}

	snap := Snapshot{Remaining: 4990, Limit: 5000, ResetTime: time.Now().Add(time.Hour).UnixMilli(), Used: 10}
	s.Publish(snap)

	got, ok := s.Current()
	if !ok {
		t.Fatal("Current should report an observation after Publish")
	}
	if got != snap {
		t.Errorf("Current = %+v, want %+v", got, snap)
	}

	// Last write wins.
	next := Snapshot{Remaining: 4989, Limit: 5000, ResetTime: snap.ResetTime, Used: 11}
	s.Publish(next)
	got, _ = s.Current()
	if got.Remaining != 4989 || got.Used != 11 {
		t.Errorf("Current = %+v, want latest publish", got)
	}
}

func TestIsExhausted(t *testing.T) {
	s := NewState()
	if s.IsExhausted() {
		t.Error("fresh state should not be exhausted")
	}

	s.Publish(Snapshot{Remaining: 0, Limit: 5000, ResetTime: time.Now().Add(time.Minute).UnixMilli()})
	if !s.IsExhausted() {
		t.Error("zero remaining with future reset should be exhausted")
	}

	s.Publish(Snapshot{Remaining: 0, Limit: 5000, ResetTime: time.Now().Add(-time.Minute).UnixMilli()})
	if s.IsExhausted() {
		t.Error("past reset time should clear exhaustion")
	}

	s.Publish(Snapshot{Remaining: 100, Limit: 5000, ResetTime: time.Now().Add(time.Minute).UnixMilli()})
	if s.IsExhausted() {
		t.Error("remaining quota should not be exhausted")
	}
}

func TestObserverFunc(t *testing.T) {
	var got Snapshot
	obs := ObserverFunc(func(s Snapshot) { got = s })
	obs.Publish(Snapshot{Remaining: 1})
	if got.Remaining != 1 {
		t.Errorf("ObserverFunc did not forward snapshot, got %+v", got)
	}
}
