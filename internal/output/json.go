package output

import (
	"encoding/json"
	"io"

	"github.com/gitpulsehq/gitpulse/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// Repos outputs repositories as JSON
func (f *JSONFormatter) Repos(repos []model.TrendingRepo, w io.Writer) error {
	return f.encode(repos, w)
}

// Users outputs users as JSON
func (f *JSONFormatter) Users(users []model.UserSummary, w io.Writer) error {
	return f.encode(users, w)
}

// WorkItems outputs issues and pull requests as JSON
func (f *JSONFormatter) WorkItems(items []model.WorkItem, w io.Writer) error {
	return f.encode(items, w)
}

// Contributors outputs a contributor list as JSON
func (f *JSONFormatter) Contributors(contributors []model.Contributor, w io.Writer) error {
	return f.encode(contributors, w)
}

// Events outputs an activity feed as JSON
func (f *JSONFormatter) Events(events []model.Event, w io.Writer) error {
	return f.encode(events, w)
}

// Analytics outputs a user analytics report as JSON
func (f *JSONFormatter) Analytics(analytics model.UserAnalytics, w io.Writer) error {
	return f.encode(analytics, w)
}
