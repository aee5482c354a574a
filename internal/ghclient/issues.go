package ghclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/log"
	"github.com/gitpulsehq/gitpulse/internal/model"
	"github.com/gitpulsehq/gitpulse/internal/priority"
)

// issuePayload is the raw issue/PR shape from the search API. The
// pull_request key is present exactly when the item is a PR.
type issuePayload struct {
	ID            int64     `json:"id"`
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	HTMLURL       string    `json:"html_url"`
	RepositoryURL string    `json:"repository_url"`
	State         string    `json:"state"`
	Comments      int       `json:"comments"`
	Draft         bool      `json:"draft"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          struct {
		Login string `json:"login"`
	} `json:"user"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
	PullRequest *struct{} `json:"pull_request"`
}

// splitRepositoryURL extracts owner and name from a search result's
// repository_url, e.g. https://api.github.com/repos/golang/go.
func splitRepositoryURL(repoURL string) (owner, name string) {
	parts := strings.Split(strings.TrimSuffix(repoURL, "/"), "/")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}

func (p issuePayload) normalize() model.WorkItem {
	owner, name := splitRepositoryURL(p.RepositoryURL)

	labels := make([]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		labels = append(labels, l.Name)
	}

	itemType := model.ItemTypeIssue
	if p.PullRequest != nil {
		itemType = model.ItemTypePullRequest
	}

	return model.WorkItem{
		ID:        p.ID,
		Number:    p.Number,
		Title:     p.Title,
		RepoOwner: owner,
		RepoName:  name,
		Type:      itemType,
		Priority:  priority.Classify(labels, p.Comments, p.UpdatedAt),
		URL:       p.HTMLURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    p.User.Login,
		Labels:    labels,
		Comments:  p.Comments,
		State:     p.State,
		Draft:     p.Draft,
	}
}

// searchWorkItems runs an issue search and normalizes the results.
// Shared by every issue/PR listing method.
func (c *Client) searchWorkItems(ctx context.Context, query string, limit int) []model.WorkItem {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	endpoint := fmt.Sprintf("search/issues?q=%s&sort=updated&order=desc&per_page=%d",
		url.QueryEscape(query), limit)

	resp, err := fetchJSON[searchResponse[issuePayload]](ctx, c, endpoint, RequestOptions{Authenticated: true})
	if err != nil {
		log.Debug("issue search failed", "query", query, "error", err)
		return []model.WorkItem{}
	}

	items := make([]model.WorkItem, 0, len(resp.Items))
	for _, p := range resp.Items {
		items = append(items, p.normalize())
	}
	return items
}

// AssignedItems lists open issues and PRs assigned to user. Listing
// contract: failures degrade to empty.
func (c *Client) AssignedItems(ctx context.Context, user string, limit int) []model.WorkItem {
	return c.searchWorkItems(ctx, fmt.Sprintf("assignee:%s is:open", user), limit)
}

// MentionedItems lists open items mentioning user.
func (c *Client) MentionedItems(ctx context.Context, user string, limit int) []model.WorkItem {
	return c.searchWorkItems(ctx, fmt.Sprintf("mentions:%s is:open", user), limit)
}

// ReviewRequestedItems lists open PRs waiting on user's review.
func (c *Client) ReviewRequestedItems(ctx context.Context, user string, limit int) []model.WorkItem {
	return c.searchWorkItems(ctx, fmt.Sprintf("type:pr state:open review-requested:%s", user), limit)
}

// DefaultStaleDays is the window after which an untouched PR counts as
// stale.
const DefaultStaleDays = 7

// StalePullRequests lists open PRs authored by user with no update for
// staleDays (default 7). Stale items are prioritized by age alone,
// overriding the label rules.
func (c *Client) StalePullRequests(ctx context.Context, user string, staleDays, limit int) []model.WorkItem {
	if staleDays <= 0 {
		staleDays = DefaultStaleDays
	}
	cutoff := time.Now().Add(-time.Duration(staleDays) * 24 * time.Hour)
	query := fmt.Sprintf("type:pr state:open author:%s updated:<%s", user, cutoff.Format("2006-01-02"))

	items := c.searchWorkItems(ctx, query, limit)
	now := time.Now()
	for i := range items {
		items[i].Priority = priority.ByAge(items[i].UpdatedAt)
		items[i].DaysStale = int(now.Sub(items[i].UpdatedAt).Hours() / 24)
	}
	return items
}

// CloseIssue closes an issue. Write contract: the outcome is reported
// in the result, never as an error.
func (c *Client) CloseIssue(ctx context.Context, owner, repo string, number int) model.ActionResult {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d", owner, repo, number)
	if err := c.patch(ctx, endpoint, map[string]string{"state": "closed"}); err != nil {
		return model.ActionResult{Success: false, Error: err.Error()}
	}
	return model.ActionResult{Success: true}
}

// ClosePullRequest closes a pull request without merging.
func (c *Client) ClosePullRequest(ctx context.Context, owner, repo string, number int) model.ActionResult {
	endpoint := fmt.Sprintf("repos/%s/%s/pulls/%d", owner, repo, number)
	if err := c.patch(ctx, endpoint, map[string]string{"state": "closed"}); err != nil {
		return model.ActionResult{Success: false, Error: err.Error()}
	}
	return model.ActionResult{Success: true}
}
