// Package model contains the normalized GitHub shapes returned by the
// client layer. These are flattened projections holding only the fields
// the display layer consumes, independent of go-github's types.
package model

import (
	"time"

	"github.com/gitpulsehq/gitpulse/internal/priority"
)

// ItemType discriminates issues from pull requests.
type ItemType string

const (
	ItemTypeIssue       ItemType = "issue"
	ItemTypePullRequest ItemType = "pull_request"
)

// TrendingRepo is the repository projection shared by search, trending,
// pinned-repo and profile views.
type TrendingRepo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"fullName"`
	Owner       string    `json:"owner"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	OpenIssues  int       `json:"openIssues"`
	Topics      []string  `json:"topics"` // always non-nil, defaulted when absent upstream
	HTMLURL     string    `json:"htmlUrl"`
	Size        int       `json:"size"`
	Archived    bool      `json:"archived"`
	Fork        bool      `json:"fork"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	PushedAt    time.Time `json:"pushedAt"`
}

// UserSummary is the user/org projection used by search, favorites and
// profile views.
type UserSummary struct {
	Login       string    `json:"login"`
	Name        string    `json:"name,omitempty"`
	Type        string    `json:"type,omitempty"` // User or Organization
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	HTMLURL     string    `json:"htmlUrl,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Company     string    `json:"company,omitempty"`
	Location    string    `json:"location,omitempty"`
	Blog        string    `json:"blog,omitempty"`
	PublicRepos int       `json:"publicRepos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WorkItem is a flattened issue/PR search result. The assigned,
// mention, stale and good-first-issue queries all produce this shape
// and share its derivation rules; variant-only fields are omitted when
// empty.
type WorkItem struct {
	ID        int64          `json:"id"`
	Number    int            `json:"number"`
	Title     string         `json:"title"`
	RepoOwner string         `json:"repoOwner"`
	RepoName  string         `json:"repoName"`
	Type      ItemType       `json:"type"`
	Priority  priority.Level `json:"priority"`
	URL       string         `json:"url"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Author    string         `json:"author,omitempty"`
	Labels    []string       `json:"labels,omitempty"`
	Comments  int            `json:"comments"`
	State     string         `json:"state,omitempty"`

	// Stale-query metadata
	DaysStale int `json:"daysStale,omitempty"`

	// PR review metadata, when available
	Draft bool `json:"draft,omitempty"`
}

// RepoFullName returns owner/name.
func (w WorkItem) RepoFullName() string {
	return w.RepoOwner + "/" + w.RepoName
}

// LanguageStat is one language's aggregated byte size across a
// repository window.
type LanguageStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// WeekdayActivity is one weekday's worth of commit/PR/issue counts.
// Weeks start on Monday.
type WeekdayActivity struct {
	Day          string `json:"day"`
	Commits      int    `json:"commits"`
	PullRequests int    `json:"pullRequests"`
	Issues       int    `json:"issues"`
}

// UserAnalytics combines profile, repositories, language and weekly
// activity aggregation for one user.
type UserAnalytics struct {
	Profile    UserSummary       `json:"profile"`
	Repos      []TrendingRepo    `json:"repos"`
	TotalStars int               `json:"totalStars"`
	Languages  []LanguageStat    `json:"languages"`
	Weekly     []WeekdayActivity `json:"weekly"`
}

// Contributor is one entry of a repository's contributor list.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
}

// Event is a normalized activity-feed entry.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Actor     string    `json:"actor"`
	Repo      string    `json:"repo"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActionResult is the outcome of a write operation (closing an issue or
// pull request). Write operations report failure here instead of
// returning an error.
type ActionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
