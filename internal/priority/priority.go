// Package priority classifies work items for display. Label keywords
// always win over the activity heuristics; stale pull requests are
// classified by age alone.
package priority

import (
	"strings"
	"time"
)

// Level is a display priority.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
	Urgent Level = "urgent"
)

// Display returns a human-readable level name.
func (l Level) Display() string {
	switch l {
	case Urgent:
		return "URGENT"
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Keyword tiers, checked in order across all labels. A "bug" label
// resolves high even when an "enhancement" label is also present.
var (
	urgentKeywords = []string{"critical", "urgent", "p0"}
	highKeywords   = []string{"high", "p1", "bug"}
	lowKeywords    = []string{"low", "p3", "enhancement"}
)

// Activity heuristic thresholds, used only when no label matches.
const (
	highCommentThreshold   = 10
	mediumCommentThreshold = 5
	highAgeWindow          = 24 * time.Hour
	mediumAgeWindow        = 72 * time.Hour
)

// Classify derives a priority from labels first and activity second.
func Classify(labels []string, comments int, updatedAt time.Time) Level {
	return classifyAt(labels, comments, updatedAt, time.Now())
}

func classifyAt(labels []string, comments int, updatedAt time.Time, now time.Time) Level {
	if level, ok := fromLabels(labels); ok {
		return level
	}

	age := now.Sub(updatedAt)
	switch {
	case comments > highCommentThreshold || age < highAgeWindow:
		return High
	case comments > mediumCommentThreshold || age < mediumAgeWindow:
		return Medium
	default:
		return Low
	}
}

func fromLabels(labels []string) (Level, bool) {
	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(l)
	}

	tiers := []struct {
		keywords []string
		level    Level
	}{
		{urgentKeywords, Urgent},
		{highKeywords, High},
		{lowKeywords, Low},
	}

	for _, tier := range tiers {
		for _, label := range lowered {
			for _, kw := range tier.keywords {
				if strings.Contains(label, kw) {
					return tier.level, true
				}
			}
		}
	}
	return "", false
}

// Stale-age thresholds for ByAge.
const (
	staleHighDays   = 30
	staleMediumDays = 14
)

// ByAge returns the priority for a stale pull request, driven by how
// long it has gone without an update. Labels are ignored here.
func ByAge(updatedAt time.Time) Level {
	return byAgeAt(updatedAt, time.Now())
}

func byAgeAt(updatedAt time.Time, now time.Time) Level {
	days := int(now.Sub(updatedAt).Hours() / 24)
	switch {
	case days > staleHighDays:
		return High
	case days > staleMediumDays:
		return Medium
	default:
		return Low
	}
}
