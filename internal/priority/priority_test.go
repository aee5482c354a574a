package priority

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestClassifyLabelTiers(t *testing.T) {
	old := testNow.Add(-10 * 24 * time.Hour)

	tests := []struct {
		name   string
		labels []string
		want   Level
	}{
		{"critical", []string{"critical"}, Urgent},
		{"p0 substring", []string{"prio: p0"}, Urgent},
		{"urgent wins over bug", []string{"bug", "urgent"}, Urgent},
		{"bug", []string{"bug"}, High},
		{"p1", []string{"p1"}, High},
		{"case insensitive", []string{"HIGH-priority"}, High},
		{"enhancement", []string{"enhancement"}, Low},
		{"p3", []string{"p3"}, Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAt(tt.labels, 0, old, testNow)
			if got != tt.want {
				t.Errorf("classifyAt(%v) = %v, want %v", tt.labels, got, tt.want)
			}
		})
	}
}

func TestClassifyLabelPrecedenceOverActivity(t *testing.T) {
	// Labeled bug+enhancement, zero comments, updated today: the high
	// tier matches first even though the item is also labeled low-tier
	// and the activity heuristic would say high anyway.
	got := classifyAt([]string{"bug", "enhancement"}, 0, testNow.Add(-time.Hour), testNow)
	if got != High {
		t.Errorf("bug+enhancement = %v, want %v", got, High)
	}

	// Enhancement alone, 0 comments, 10 days stale: label precedence
	// means low despite no recent activity either way.
	got = classifyAt([]string{"enhancement"}, 0, testNow.Add(-10*24*time.Hour), testNow)
	if got != Low {
		t.Errorf("enhancement alone = %v, want %v", got, Low)
	}
}

func TestClassifyActivityFallback(t *testing.T) {
	tests := []struct {
		name     string
		comments int
		age      time.Duration
		want     Level
	}{
		{"hot discussion", 11, 20 * 24 * time.Hour, High},
		{"updated today", 0, 12 * time.Hour, High},
		{"moderate comments", 6, 20 * 24 * time.Hour, Medium},
		{"updated this week", 0, 48 * time.Hour, Medium},
		{"quiet and old", 2, 10 * 24 * time.Hour, Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAt(nil, tt.comments, testNow.Add(-tt.age), testNow)
			if got != tt.want {
				t.Errorf("classifyAt(comments=%d age=%v) = %v, want %v", tt.comments, tt.age, got, tt.want)
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	labels := []string{"bug", "enhancement"}
	first := classifyAt(labels, 3, testNow.Add(-time.Hour), testNow)
	second := classifyAt(labels, 3, testNow.Add(-time.Hour), testNow)
	if first != second {
		t.Errorf("classification not stable: %v then %v", first, second)
	}
}

func TestByAge(t *testing.T) {
	tests := []struct {
		days int
		want Level
	}{
		{45, High},
		{31, High},
		{30, Medium}, // boundary: high needs strictly more than 30
		{20, Medium},
		{15, Medium},
		{14, Low},
		{7, Low},
	}

	for _, tt := range tests {
		got := byAgeAt(testNow.Add(-time.Duration(tt.days)*24*time.Hour), testNow)
		if got != tt.want {
			t.Errorf("byAgeAt(%d days) = %v, want %v", tt.days, got, tt.want)
		}
	}
}
