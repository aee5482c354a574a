package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/gitpulsehq/gitpulse/internal/model"
	"github.com/gitpulsehq/gitpulse/internal/priority"
)

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "0123456789", 10, "0123456789"},
		{"truncated", "a very long repository name", 10, "a very ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, width := truncateToWidth(tt.in, tt.maxWidth)
			if got != tt.want {
				t.Errorf("truncateToWidth(%q, %d) = %q, want %q", tt.in, tt.maxWidth, got, tt.want)
			}
			if width > tt.maxWidth {
				t.Errorf("reported width %d exceeds max %d", width, tt.maxWidth)
			}
		})
	}
}

func TestDisplayWidthIgnoresAnsi(t *testing.T) {
	colored := color.RedString("URGENT")
	if got := displayWidth(colored); got != len("URGENT") {
		t.Errorf("displayWidth(%q) = %d, want %d", colored, got, len("URGENT"))
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5k"},
		{12345, "12k"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.in); got != tt.want {
			t.Errorf("formatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{2 * 24 * time.Hour, "2d"},
		{14 * 24 * time.Hour, "2w"},
		{90 * 24 * time.Hour, "3mo"},
	}
	for _, tt := range tests {
		if got := formatAge(tt.d); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTableWorkItemsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).WorkItems(nil, &buf); err != nil {
		t.Fatalf("WorkItems() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No items found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTableWorkItems(t *testing.T) {
	items := []model.WorkItem{
		{
			ID: 1, Number: 42, Title: "fix the flaky watcher test",
			RepoOwner: "octo", RepoName: "widgets",
			Type: model.ItemTypePullRequest, Priority: priority.Urgent,
			Comments: 12, UpdatedAt: time.Now().Add(-2 * time.Hour),
		},
		{
			ID: 2, Number: 7, Title: "update readme",
			RepoOwner: "octo", RepoName: "widgets",
			Type: model.ItemTypeIssue, Priority: priority.Low,
			UpdatedAt: time.Now().Add(-48 * time.Hour),
		},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).WorkItems(items, &buf); err != nil {
		t.Fatalf("WorkItems() error: %v", err)
	}

	out := stripAnsi(buf.String())
	for _, want := range []string{"octo/widgets", "fix the flaky watcher test", "URGENT", "PR", "ISS", "urgent items need attention"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableReposArchivedFlag(t *testing.T) {
	repos := []model.TrendingRepo{{
		FullName: "octo/legacy", Language: "Go", Stars: 1500,
		Description: "old and dusty", Archived: true,
	}}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Repos(repos, &buf); err != nil {
		t.Fatalf("Repos() error: %v", err)
	}

	out := stripAnsi(buf.String())
	if !strings.Contains(out, "[archived]") {
		t.Errorf("archived marker missing:\n%s", out)
	}
	if !strings.Contains(out, "1.5k") {
		t.Errorf("star count not compacted:\n%s", out)
	}
}

func TestMarkdownWorkItemsGroupsByPriority(t *testing.T) {
	items := []model.WorkItem{
		{Title: "a", RepoOwner: "o", RepoName: "r", Priority: priority.Low},
		{Title: "b", RepoOwner: "o", RepoName: "r", Priority: priority.Urgent},
	}

	var buf bytes.Buffer
	if err := (&MarkdownFormatter{}).WorkItems(items, &buf); err != nil {
		t.Fatalf("WorkItems() error: %v", err)
	}

	out := buf.String()
	urgentAt := strings.Index(out, "## URGENT")
	lowAt := strings.Index(out, "## LOW")
	if urgentAt < 0 || lowAt < 0 {
		t.Fatalf("missing priority sections:\n%s", out)
	}
	if urgentAt > lowAt {
		t.Error("urgent section should come before low")
	}
}

func TestMarkdownReposEscapesPipes(t *testing.T) {
	repos := []model.TrendingRepo{{
		FullName: "octo/pipes", Description: "a | b",
	}}

	var buf bytes.Buffer
	if err := (&MarkdownFormatter{}).Repos(repos, &buf); err != nil {
		t.Fatalf("Repos() error: %v", err)
	}
	if !strings.Contains(buf.String(), `a \| b`) {
		t.Errorf("pipe not escaped:\n%s", buf.String())
	}
}

func TestJSONRoundTripShape(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.WorkItems([]model.WorkItem{{Title: "x", Priority: priority.High}}, &buf); err != nil {
		t.Fatalf("WorkItems() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"priority":"high"`) {
		t.Errorf("priority not serialized as string:\n%s", buf.String())
	}
}
