package cmd

import (
	"testing"
)

func TestNew(t *testing.T) {
	cmd := New()
	if cmd == nil {
		t.Fatal("New() returned nil")
	}
	if cmd.Use != "gitpulse" {
		t.Errorf("expected Use to be 'gitpulse', got %q", cmd.Use)
	}

	want := []string{"search", "trending", "issues", "user", "repo", "activity",
		"close", "pin", "fav", "history", "ratelimit", "auth", "config", "version"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.0.0", "abc123", "2024-01-01")
	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Errorf("version info not applied: %s %s %s", version, commit, date)
	}

	// Empty values keep what was set before.
	SetVersionInfo("", "", "")
	if version != "1.0.0" {
		t.Errorf("empty version overwrote existing value")
	}
}

func TestSplitRepoArg(t *testing.T) {
	owner, name, err := splitRepoArg("golang/go")
	if err != nil || owner != "golang" || name != "go" {
		t.Errorf("splitRepoArg(golang/go) = %q, %q, %v", owner, name, err)
	}

	for _, bad := range []string{"golang", "/go", "golang/", ""} {
		if _, _, err := splitRepoArg(bad); err == nil {
			t.Errorf("splitRepoArg(%q) should fail", bad)
		}
	}
}

func TestSplitItemRef(t *testing.T) {
	owner, name, number, err := splitItemRef("octo/widgets#42")
	if err != nil || owner != "octo" || name != "widgets" || number != 42 {
		t.Errorf("splitItemRef(octo/widgets#42) = %q, %q, %d, %v", owner, name, number, err)
	}

	for _, bad := range []string{"octo/widgets", "octo/widgets#", "octo/widgets#0", "octo#42"} {
		if _, _, _, err := splitItemRef(bad); err == nil {
			t.Errorf("splitItemRef(%q) should fail", bad)
		}
	}
}
