package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/gitpulsehq/gitpulse/internal/model"
	"github.com/gitpulsehq/gitpulse/internal/priority"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// hyperlink creates a clickable terminal hyperlink using OSC 8
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	// Only use hyperlinks if stdout is a terminal
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal
// columns, accounting for wide characters and ANSI escapes.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// truncateToWidth truncates a string to fit within maxWidth display
// columns and returns the resulting visible width.
func truncateToWidth(s string, maxWidth int) (string, int) {
	plain := stripAnsi(s)
	width := runewidth.StringWidth(plain)
	if width <= maxWidth {
		return s, width
	}

	cutWidth := 0
	cutIndex := 0
	for i, r := range plain {
		rw := runewidth.RuneWidth(r)
		if cutWidth+rw > maxWidth-3 { // Leave room for "..."
			cutIndex = i
			break
		}
		cutWidth += rw
	}

	if cutIndex > 0 && cutIndex < len(plain) {
		return plain[:cutIndex] + "...", maxWidth
	}
	return plain[:maxWidth-3] + "...", maxWidth
}

// padRight pads a string with spaces to reach the target visible width
func padRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// Repos outputs repositories as a table
func (f *TableFormatter) Repos(repos []model.TrendingRepo, w io.Writer) error {
	if len(repos) == 0 {
		fmt.Fprintln(w, "No repositories found.")
		return nil
	}

	const (
		colName  = 32
		colLang  = 12
		colStars = 8
		colForks = 8
	)

	fmt.Fprintf(w, "%-*s  %-*s  %*s  %*s  %s\n",
		colName, "Repository",
		colLang, "Language",
		colStars, "Stars",
		colForks, "Forks",
		"Description")
	fmt.Fprintln(w, strings.Repeat("-", colName+colLang+colStars+colForks+40))

	for _, repo := range repos {
		name, nameWidth := truncateToWidth(repo.FullName, colName)
		linked := padRight(hyperlink(name, repo.HTMLURL), nameWidth, colName)

		lang := repo.Language
		if lang == "" {
			lang = "-"
		}
		lang, langWidth := truncateToWidth(lang, colLang)

		desc, _ := truncateToWidth(repo.Description, 48)
		if repo.Archived {
			desc = color.YellowString("[archived] ") + desc
		}

		fmt.Fprintf(w, "%s  %s  %*s  %*s  %s\n",
			linked,
			padRight(lang, langWidth, colLang),
			colStars, formatCount(repo.Stars),
			colForks, formatCount(repo.Forks),
			desc,
		)
	}

	return nil
}

// Users outputs users as a table
func (f *TableFormatter) Users(users []model.UserSummary, w io.Writer) error {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return nil
	}

	const (
		colLogin     = 20
		colType      = 12
		colFollowers = 10
	)

	fmt.Fprintf(w, "%-*s  %-*s  %*s  %s\n",
		colLogin, "Login",
		colType, "Type",
		colFollowers, "Followers",
		"Name")
	fmt.Fprintln(w, strings.Repeat("-", colLogin+colType+colFollowers+24))

	for _, user := range users {
		login, loginWidth := truncateToWidth(user.Login, colLogin)
		fmt.Fprintf(w, "%s  %-*s  %*s  %s\n",
			padRight(hyperlink(login, user.HTMLURL), loginWidth, colLogin),
			colType, user.Type,
			colFollowers, formatCount(user.Followers),
			user.Name,
		)
	}

	return nil
}

// WorkItems outputs issues and pull requests as a table
func (f *TableFormatter) WorkItems(items []model.WorkItem, w io.Writer) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return nil
	}

	const (
		colPriority = 8
		colType     = 5
		colRepo     = 26
		colTitle    = 40
		colAge      = 5
	)

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-*s  %s\n",
		colPriority, "Priority",
		colType, "Type",
		colRepo, "Repository",
		colTitle, "Title",
		"Age")
	fmt.Fprintln(w, strings.Repeat("-", colPriority+colType+colRepo+colTitle+colAge+8))

	for _, item := range items {
		typeStr := "ISS"
		if item.Type == model.ItemTypePullRequest {
			typeStr = "PR"
		}

		title := item.Title
		if item.Draft {
			title = "[draft] " + title
		}
		if item.Comments > 10 {
			title = "🔥 " + title
		}
		title, titleWidth := truncateToWidth(title, colTitle)
		linkedTitle := padRight(hyperlink(title, item.URL), titleWidth, colTitle)

		repo, repoWidth := truncateToWidth(item.RepoFullName(), colRepo)

		priorityDisplay := item.Priority.Display()
		priorityStr := padRight(colorPriority(item.Priority), len(priorityDisplay), colPriority)

		age := formatAge(time.Since(item.UpdatedAt))
		if item.DaysStale > 0 {
			age = fmt.Sprintf("%dd", item.DaysStale)
		}

		fmt.Fprintf(w, "%s  %-*s  %s  %s  %s\n",
			priorityStr,
			colType, typeStr,
			padRight(repo, repoWidth, colRepo),
			linkedTitle,
			age,
		)
	}

	printWorkItemFooter(items, w)

	return nil
}

// printWorkItemFooter prints a short summary under the table
func printWorkItemFooter(items []model.WorkItem, w io.Writer) {
	var urgentCount, hotCount int
	for _, item := range items {
		if item.Priority == priority.Urgent {
			urgentCount++
		}
		if item.Comments > 10 {
			hotCount++
		}
	}

	if urgentCount == 0 && hotCount == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("━", 60))
	if urgentCount > 0 {
		fmt.Fprintf(w, "  %s %s urgent items need attention\n",
			color.RedString("●"),
			color.RedString("%d", urgentCount))
	}
	if hotCount > 0 {
		fmt.Fprintf(w, "  🔥 %d hot discussions\n", hotCount)
	}
}

// Contributors outputs a contributor list as a table
func (f *TableFormatter) Contributors(contributors []model.Contributor, w io.Writer) error {
	if len(contributors) == 0 {
		fmt.Fprintln(w, "No contributors found.")
		return nil
	}

	const colLogin = 24

	fmt.Fprintf(w, "%-*s  %s\n", colLogin, "Login", "Contributions")
	fmt.Fprintln(w, strings.Repeat("-", colLogin+15))
	for _, c := range contributors {
		login, loginWidth := truncateToWidth(c.Login, colLogin)
		fmt.Fprintf(w, "%s  %s\n",
			padRight(login, loginWidth, colLogin),
			formatCount(c.Contributions))
	}

	return nil
}

// Events outputs an activity feed as a table
func (f *TableFormatter) Events(events []model.Event, w io.Writer) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No recent activity.")
		return nil
	}

	const (
		colActor = 18
		colRepo  = 30
	)

	for _, e := range events {
		actor, actorWidth := truncateToWidth(e.Actor, colActor)
		repo, repoWidth := truncateToWidth(e.Repo, colRepo)
		summary := e.Summary
		if summary == "" {
			summary = e.Type
		}
		fmt.Fprintf(w, "%s  %s  %-28s  %s\n",
			padRight(color.CyanString(actor), actorWidth, colActor),
			padRight(repo, repoWidth, colRepo),
			summary,
			formatAge(time.Since(e.CreatedAt)),
		)
	}

	return nil
}

// Analytics outputs a user analytics report
func (f *TableFormatter) Analytics(analytics model.UserAnalytics, w io.Writer) error {
	p := analytics.Profile

	name := p.Login
	if p.Name != "" {
		name = fmt.Sprintf("%s (%s)", p.Name, p.Login)
	}
	fmt.Fprintln(w, color.New(color.Bold).Sprint(hyperlink(name, p.HTMLURL)))
	if p.Bio != "" {
		fmt.Fprintf(w, "  %s\n", p.Bio)
	}
	fmt.Fprintf(w, "  Repos: %s  Stars: %s  Followers: %s  Following: %s\n\n",
		formatCount(p.PublicRepos),
		formatCount(analytics.TotalStars),
		formatCount(p.Followers),
		formatCount(p.Following))

	if len(analytics.Languages) > 0 {
		fmt.Fprintln(w, "Languages:")
		max := analytics.Languages[0].Value
		for _, lang := range analytics.Languages {
			bar := ""
			if max > 0 {
				bar = strings.Repeat("█", 1+lang.Value*24/max)
			}
			fmt.Fprintf(w, "  %-14s %s\n", lang.Name, color.CyanString(bar))
		}
		fmt.Fprintln(w)
	}

	if len(analytics.Weekly) == 7 {
		fmt.Fprintln(w, "This week:")
		fmt.Fprintf(w, "  %-5s %8s %6s %8s\n", "Day", "Commits", "PRs", "Issues")
		for _, day := range analytics.Weekly {
			fmt.Fprintf(w, "  %-5s %8d %6d %8d\n", day.Day, day.Commits, day.PullRequests, day.Issues)
		}
	}

	return nil
}

func colorPriority(p priority.Level) string {
	switch p {
	case priority.Urgent:
		return color.RedString("URGENT")
	case priority.High:
		return color.YellowString("HIGH")
	case priority.Medium:
		return color.CyanString("MEDIUM")
	default:
		return color.WhiteString("LOW")
	}
}

// formatCount renders large counts compactly (12.3k)
func formatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 10000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%dk", n/1000)
}

func formatAge(d time.Duration) string {
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	days := int(d.Hours() / 24)
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}
	weeks := days / 7
	if weeks < 4 {
		return fmt.Sprintf("%dw", weeks)
	}
	months := days / 30
	return fmt.Sprintf("%dmo", months)
}
