package ghclient

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestSearchRepositoriesEndToEnd(t *testing.T) {
	tc := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "language:Rust" {
			t.Errorf("q = %q, want language:Rust", q.Get("q"))
		}
		if q.Get("sort") != "stars" || q.Get("per_page") != "5" {
			t.Errorf("sort=%q per_page=%q", q.Get("sort"), q.Get("per_page"))
		}

		items := make([]map[string]any, 0, 5)
		for i := 1; i <= 5; i++ {
			item := map[string]any{
				"id":               i,
				"name":             "repo",
				"full_name":        "owner/repo",
				"owner":            map[string]string{"login": "owner"},
				"stargazers_count": 100 * i,
				"language":         "Rust",
				"topics":           []string{"systems"},
			}
			if i == 3 {
				delete(item, "topics") // absent upstream
			}
			items = append(items, item)
		}
		writeJSON(t, w, map[string]any{"total_count": 5, "items": items})
	}))

	repos := tc.client.SearchRepositories(context.Background(), "language:Rust", "stars", 5)
	if len(repos) != 5 {
		t.Fatalf("got %d repos, want 5", len(repos))
	}
	for _, repo := range repos {
		if repo.Topics == nil {
			t.Errorf("repo %d: Topics must be defaulted to an empty slice", repo.ID)
		}
		if repo.Owner != "owner" || repo.Language != "Rust" {
			t.Errorf("normalization lost fields: %+v", repo)
		}
	}
	if len(repos[2].Topics) != 0 {
		t.Errorf("repo without upstream topics should have an empty slice, got %v", repos[2].Topics)
	}
}

func TestSearchRepositoriesDegradesToEmpty(t *testing.T) {
	tc := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	repos := tc.client.SearchRepositories(context.Background(), "anything", "stars", 5)
	if repos == nil {
		t.Fatal("listing methods must return an empty slice, not nil")
	}
	if len(repos) != 0 {
		t.Errorf("got %d repos, want 0", len(repos))
	}
}

func TestSearchUsers(t *testing.T) {
	tc := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/users" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{
			"total_count": 2,
			"items": []map[string]any{
				{"login": "alice", "type": "User"},
				{"login": "acme", "type": "Organization"},
			},
		})
	}))

	users := tc.client.SearchUsers(context.Background(), "a", 10)
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[1].Type != "Organization" {
		t.Errorf("users[1] = %+v", users[1])
	}
}

func TestSearchCombined(t *testing.T) {
	tc := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/repositories":
			writeJSON(t, w, map[string]any{
				"total_count": 1,
				"items": []map[string]any{
					{"id": 1, "name": "r", "full_name": "o/r", "owner": map[string]string{"login": "o"}},
				},
			})
		case "/search/users":
			writeJSON(t, w, map[string]any{
				"total_count": 1,
				"items":       []map[string]any{{"login": "o"}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	repos, users := tc.client.SearchCombined(context.Background(), "o", 10)
	if len(repos) != 1 || len(users) != 1 {
		t.Errorf("repos=%d users=%d, want 1 and 1", len(repos), len(users))
	}
}

func TestTrendingRepositoriesQueryShape(t *testing.T) {
	var gotQuery string
	tc := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		writeJSON(t, w, map[string]any{"total_count": 0, "items": []any{}})
	}))

	tc.client.TrendingRepositories(context.Background(), "Go", "daily", 10)
	if !strings.Contains(gotQuery, "created:>") || !strings.Contains(gotQuery, "language:Go") {
		t.Errorf("trending query = %q", gotQuery)
	}
}
