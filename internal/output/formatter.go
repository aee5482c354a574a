package output

import (
	"io"

	"github.com/gitpulsehq/gitpulse/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders the normalized model types for one output format.
type Formatter interface {
	Repos(repos []model.TrendingRepo, w io.Writer) error
	Users(users []model.UserSummary, w io.Writer) error
	WorkItems(items []model.WorkItem, w io.Writer) error
	Contributors(contributors []model.Contributor, w io.Writer) error
	Events(events []model.Event, w io.Writer) error
	Analytics(analytics model.UserAnalytics, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}
