package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/model"
	"github.com/gitpulsehq/gitpulse/internal/priority"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct{}

// Repos outputs repositories as a Markdown table
func (f *MarkdownFormatter) Repos(repos []model.TrendingRepo, w io.Writer) error {
	if len(repos) == 0 {
		fmt.Fprintln(w, "No repositories found.")
		return nil
	}

	fmt.Fprintln(w, "| Repository | Language | Stars | Forks | Description |")
	fmt.Fprintln(w, "|---|---|---:|---:|---|")
	for _, repo := range repos {
		desc := repo.Description
		if repo.Archived {
			desc = "*archived* " + desc
		}
		fmt.Fprintf(w, "| [%s](%s) | %s | %d | %d | %s |\n",
			repo.FullName, repo.HTMLURL, repo.Language, repo.Stars, repo.Forks,
			escapePipes(desc))
	}
	return nil
}

// Users outputs users as a Markdown table
func (f *MarkdownFormatter) Users(users []model.UserSummary, w io.Writer) error {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return nil
	}

	fmt.Fprintln(w, "| Login | Type | Followers | Name |")
	fmt.Fprintln(w, "|---|---|---:|---|")
	for _, user := range users {
		fmt.Fprintf(w, "| [%s](%s) | %s | %d | %s |\n",
			user.Login, user.HTMLURL, user.Type, user.Followers, user.Name)
	}
	return nil
}

// WorkItems outputs issues and pull requests grouped by priority
func (f *MarkdownFormatter) WorkItems(items []model.WorkItem, w io.Writer) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return nil
	}

	fmt.Fprintln(w, "# Work Items")
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", time.Now().Format("2006-01-02 15:04"))

	order := []priority.Level{priority.Urgent, priority.High, priority.Medium, priority.Low}
	for _, level := range order {
		var group []model.WorkItem
		for _, item := range items {
			if item.Priority == level {
				group = append(group, item)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(w, "## %s (%d)\n\n", level.Display(), len(group))
		for _, item := range group {
			f.formatItem(item, w)
		}
	}

	return nil
}

func (f *MarkdownFormatter) formatItem(item model.WorkItem, w io.Writer) {
	fmt.Fprintf(w, "### [%s](%s)\n\n", item.Title, item.URL)
	fmt.Fprintf(w, "- **Repository:** %s\n", item.RepoFullName())
	fmt.Fprintf(w, "- **Type:** %s\n", item.Type)
	fmt.Fprintf(w, "- **Updated:** %s ago\n", formatAge(time.Since(item.UpdatedAt)))
	if item.Comments > 0 {
		fmt.Fprintf(w, "- **Comments:** %d\n", item.Comments)
	}
	if len(item.Labels) > 0 {
		fmt.Fprintf(w, "- **Labels:** %s\n", strings.Join(item.Labels, ", "))
	}
	if item.DaysStale > 0 {
		fmt.Fprintf(w, "- **Stale for:** %d days\n", item.DaysStale)
	}
	fmt.Fprintln(w)
}

// Contributors outputs a contributor list as a Markdown table
func (f *MarkdownFormatter) Contributors(contributors []model.Contributor, w io.Writer) error {
	if len(contributors) == 0 {
		fmt.Fprintln(w, "No contributors found.")
		return nil
	}

	fmt.Fprintln(w, "| Login | Contributions |")
	fmt.Fprintln(w, "|---|---:|")
	for _, c := range contributors {
		fmt.Fprintf(w, "| %s | %d |\n", c.Login, c.Contributions)
	}
	return nil
}

// Events outputs an activity feed as a Markdown list
func (f *MarkdownFormatter) Events(events []model.Event, w io.Writer) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No recent activity.")
		return nil
	}

	for _, e := range events {
		summary := e.Summary
		if summary == "" {
			summary = e.Type
		}
		fmt.Fprintf(w, "- **%s** %s in %s *(%s ago)*\n",
			e.Actor, summary, e.Repo, formatAge(time.Since(e.CreatedAt)))
	}
	return nil
}

// Analytics outputs a user analytics report as Markdown
func (f *MarkdownFormatter) Analytics(analytics model.UserAnalytics, w io.Writer) error {
	p := analytics.Profile

	fmt.Fprintf(w, "# [%s](%s)\n\n", p.Login, p.HTMLURL)
	if p.Bio != "" {
		fmt.Fprintf(w, "%s\n\n", p.Bio)
	}
	fmt.Fprintf(w, "- **Public repos:** %d\n", p.PublicRepos)
	fmt.Fprintf(w, "- **Total stars:** %d\n", analytics.TotalStars)
	fmt.Fprintf(w, "- **Followers:** %d\n\n", p.Followers)

	if len(analytics.Languages) > 0 {
		fmt.Fprintln(w, "## Languages")
		fmt.Fprintln(w)
		for _, lang := range analytics.Languages {
			fmt.Fprintf(w, "- %s\n", lang.Name)
		}
		fmt.Fprintln(w)
	}

	if len(analytics.Weekly) == 7 {
		fmt.Fprintln(w, "## This week")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Day | Commits | PRs | Issues |")
		fmt.Fprintln(w, "|---|---:|---:|---:|")
		for _, day := range analytics.Weekly {
			fmt.Fprintf(w, "| %s | %d | %d | %d |\n",
				day.Day, day.Commits, day.PullRequests, day.Issues)
		}
	}

	return nil
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
