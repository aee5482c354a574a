package cache

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestCache(t *testing.T) (*Cache, *time.Time) {
	t.Helper()
	c, err := New(16, DefaultPolicy())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.WithClock(func() time.Time { return now })
	return c, &now
}

func TestGetHonorsTTLBoundary(t *testing.T) {
	c, now := newTestCache(t)
	c.Set("search/repositories?q=go", json.RawMessage(`{"total_count":1}`))

	// One millisecond inside the standard window.
	*now = now.Add(10*time.Minute - time.Millisecond)
	if _, ok := c.Get("search/repositories?q=go", ClassStandard); !ok {
		t.Error("entry inside TTL should be returned")
	}

	// One millisecond past it.
	*now = now.Add(2 * time.Millisecond)
	if _, ok := c.Get("search/repositories?q=go", ClassStandard); ok {
		t.Error("entry past TTL should be treated as absent")
	}

	// The same entry is still fresh under the expensive window.
	if _, ok := c.Get("search/repositories?q=go", ClassExpensive); !ok {
		t.Error("entry should still be fresh under the 30m expensive TTL")
	}
}

func TestGetStaleIgnoresTTL(t *testing.T) {
	c, now := newTestCache(t)
	c.Set("repos/o/r/commits?page=1", json.RawMessage(`[]`))

	*now = now.Add(48 * time.Hour)
	if _, ok := c.Get("repos/o/r/commits?page=1", ClassExpensive); ok {
		t.Error("expired entry should be absent for Get")
	}
	payload, ok := c.GetStale("repos/o/r/commits?page=1")
	if !ok {
		t.Fatal("expired entry should still be visible to GetStale")
	}
	if string(payload) != `[]` {
		t.Errorf("GetStale payload = %s, want []", payload)
	}
}

func TestSetOverwritesWithFreshTimestamp(t *testing.T) {
	c, now := newTestCache(t)
	c.Set("users/octocat", json.RawMessage(`{"v":1}`))

	*now = now.Add(9 * time.Minute)
	c.Set("users/octocat", json.RawMessage(`{"v":2}`))

	// 9m after the rewrite the entry would be expired relative to the
	// first write but not the second.
	*now = now.Add(9 * time.Minute)
	payload, ok := c.Get("users/octocat", ClassStandard)
	if !ok {
		t.Fatal("rewritten entry should be fresh")
	}
	if string(payload) != `{"v":2}` {
		t.Errorf("payload = %s, want the newest full value", payload)
	}
}

func TestMissingKey(t *testing.T) {
	c, _ := newTestCache(t)
	if _, ok := c.Get("absent", ClassStandard); ok {
		t.Error("missing key should not be found")
	}
	if _, ok := c.GetStale("absent"); ok {
		t.Error("missing key should not be found stale")
	}
}

func TestLenAndPurge(t *testing.T) {
	c, _ := newTestCache(t)
	c.Set("a", json.RawMessage(`1`))
	c.Set("b", json.RawMessage(`2`))
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after Purge = %d, want 0", c.Len())
	}
}
