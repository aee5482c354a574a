package scoring

import (
	"reflect"
	"testing"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/model"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func maximalRepo() model.TrendingRepo {
	return model.TrendingRepo{
		Description: "a description",
		Topics:      []string{"cli", "go"},
		Language:    "Go",
		Stars:       1000,
		Forks:       200, // ratio 0.2 > 0.1
		OpenIssues:  10,
		PushedAt:    testNow.Add(-24 * time.Hour),
	}
}

func TestHealthMaximal(t *testing.T) {
	if got := healthAt(maximalRepo(), testNow); got != 100 {
		t.Errorf("maximal repo health = %d, want 100", got)
	}
}

func TestHealthArchivedNeverExceeds80(t *testing.T) {
	repo := maximalRepo()
	repo.Archived = true
	got := healthAt(repo, testNow)
	if got > 80 {
		t.Errorf("archived repo health = %d, must never exceed 80", got)
	}
	// Archived loses the maintained weight and takes the flat penalty.
	if got != 60 {
		t.Errorf("archived otherwise-maximal repo health = %d, want 60", got)
	}
}

func TestHealthForkPenalty(t *testing.T) {
	repo := maximalRepo()
	repo.Fork = true
	if got := healthAt(repo, testNow); got != 90 {
		t.Errorf("forked repo health = %d, want 90", got)
	}
}

func TestHealthBounds(t *testing.T) {
	empty := model.TrendingRepo{Archived: true, Fork: true}
	if got := healthAt(empty, testNow); got != 0 {
		t.Errorf("empty archived fork health = %d, want clamp to 0", got)
	}
}

func TestHealthIssueRange(t *testing.T) {
	repo := maximalRepo()
	repo.OpenIssues = 0
	if got := healthAt(repo, testNow); got != 100-healthIssueRange {
		t.Errorf("zero open issues health = %d, want %d", got, 100-healthIssueRange)
	}
	repo.OpenIssues = 50
	if got := healthAt(repo, testNow); got != 100-healthIssueRange {
		t.Errorf("50 open issues health = %d, want %d", got, 100-healthIssueRange)
	}
	repo.OpenIssues = 49
	if got := healthAt(repo, testNow); got != 100 {
		t.Errorf("49 open issues health = %d, want 100", got)
	}
}

func TestLanguagesBySize(t *testing.T) {
	repos := []model.TrendingRepo{
		{Language: "TS", Size: 100, UpdatedAt: testNow},
		{Language: "TS", Size: 50, UpdatedAt: testNow.Add(-time.Hour)},
		{Language: "JS", Size: 30, UpdatedAt: testNow.Add(-2 * time.Hour)},
	}
	got := LanguagesBySize(repos)
	want := []model.LanguageStat{
		{Name: "TS", Value: 150},
		{Name: "JS", Value: 30},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LanguagesBySize = %v, want %v", got, want)
	}
}

func TestLanguagesBySizeWindow(t *testing.T) {
	// 25 repos: the 5 oldest fall outside the 20-repo window.
	var repos []model.TrendingRepo
	for i := 0; i < 25; i++ {
		lang := "Go"
		if i >= 20 {
			lang = "Rust" // only on the old repos that must be ignored
		}
		repos = append(repos, model.TrendingRepo{
			Language:  lang,
			Size:      10,
			UpdatedAt: testNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	got := LanguagesBySize(repos)
	if len(got) != 1 || got[0].Name != "Go" || got[0].Value != 200 {
		t.Errorf("LanguagesBySize window = %v, want [{Go 200}]", got)
	}
}

func TestLanguagesBySizeSkipsEmptyAndKeepsTop10(t *testing.T) {
	var repos []model.TrendingRepo
	repos = append(repos, model.TrendingRepo{Language: "", Size: 999, UpdatedAt: testNow})
	for i := 0; i < 12; i++ {
		repos = append(repos, model.TrendingRepo{
			Language:  string(rune('A' + i)),
			Size:      100 - i,
			UpdatedAt: testNow,
		})
	}
	got := LanguagesBySize(repos)
	if len(got) != 10 {
		t.Fatalf("LanguagesBySize kept %d languages, want 10", len(got))
	}
	if got[0].Name != "A" || got[0].Value != 100 {
		t.Errorf("top language = %v, want {A 100}", got[0])
	}
}

func TestActivityClamped(t *testing.T) {
	if got := Activity(0, 0, 0, 0); got != 0 {
		t.Errorf("Activity zero = %d, want 0", got)
	}
	got := Activity(10000, 1000000, 100, 100)
	if got < 0 || got > 100 {
		t.Errorf("Activity = %d, out of [0,100]", got)
	}
	if got != 100 {
		t.Errorf("saturated Activity = %d, want 100", got)
	}
}

func TestImpactTermCaps(t *testing.T) {
	// Each term individually capped: huge contributions alone cannot
	// push past the 40 cap.
	if got := Impact(100000, 0, 0, 0); got != 40 {
		t.Errorf("Impact(contributions only) = %d, want 40", got)
	}
	if got := Impact(400, 10, 1250, 300); got != 100 {
		t.Errorf("saturated Impact = %d, want 100", got)
	}
}

func TestContributionAndOpenSourceBounds(t *testing.T) {
	for _, got := range []int{
		Contribution(10000, 10000, 10000, 10000),
		OpenSource(10000, 100000, 100000),
	} {
		if got != 100 {
			t.Errorf("saturated score = %d, want 100", got)
		}
	}
	if got := Contribution(0, 0, 0, 0); got != 0 {
		t.Errorf("zero contribution = %d, want 0", got)
	}
}
