package ghclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gitpulsehq/gitpulse/internal/cache"
	"github.com/gitpulsehq/gitpulse/internal/log"
	"github.com/gitpulsehq/gitpulse/internal/model"
)

// repoPayload is the raw repository shape from the search and repos
// endpoints.
type repoPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Full  string `json:"full_name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	Topics          []string  `json:"topics"`
	HTMLURL         string    `json:"html_url"`
	Size            int       `json:"size"`
	Archived        bool      `json:"archived"`
	Fork            bool      `json:"fork"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
}

func (p repoPayload) normalize() model.TrendingRepo {
	topics := p.Topics
	if topics == nil {
		topics = []string{}
	}
	return model.TrendingRepo{
		ID:          p.ID,
		Name:        p.Name,
		FullName:    p.Full,
		Owner:       p.Owner.Login,
		Description: p.Description,
		Language:    p.Language,
		Stars:       p.StargazersCount,
		Forks:       p.ForksCount,
		OpenIssues:  p.OpenIssuesCount,
		Topics:      topics,
		HTMLURL:     p.HTMLURL,
		Size:        p.Size,
		Archived:    p.Archived,
		Fork:        p.Fork,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PushedAt:    p.PushedAt,
	}
}

// userPayload is the raw user shape from the search and users
// endpoints.
type userPayload struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Blog        string    `json:"blog"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p userPayload) normalize() model.UserSummary {
	return model.UserSummary{
		Login:       p.Login,
		Name:        p.Name,
		Type:        p.Type,
		AvatarURL:   p.AvatarURL,
		HTMLURL:     p.HTMLURL,
		Bio:         p.Bio,
		Company:     p.Company,
		Location:    p.Location,
		Blog:        p.Blog,
		PublicRepos: p.PublicRepos,
		Followers:   p.Followers,
		Following:   p.Following,
		CreatedAt:   p.CreatedAt,
	}
}

type searchResponse[T any] struct {
	TotalCount int `json:"total_count"`
	Items      []T `json:"items"`
}

const defaultSearchLimit = 30

// SearchRepositories searches repositories and returns normalized
// summaries. Listing contract: upstream failures degrade to an empty
// result (logged at debug), they are never surfaced as errors.
func (c *Client) SearchRepositories(ctx context.Context, query, sort string, limit int) []model.TrendingRepo {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if sort == "" {
		sort = "stars"
	}
	endpoint := fmt.Sprintf("search/repositories?q=%s&sort=%s&order=desc&per_page=%d",
		url.QueryEscape(query), sort, limit)

	resp, err := fetchJSON[searchResponse[repoPayload]](ctx, c, endpoint, RequestOptions{Authenticated: true})
	if err != nil {
		log.Debug("repository search failed", "query", query, "error", err)
		return []model.TrendingRepo{}
	}

	repos := make([]model.TrendingRepo, 0, len(resp.Items))
	for _, item := range resp.Items {
		repos = append(repos, item.normalize())
	}
	return repos
}

// SearchUsers searches users and organizations. Listing contract:
// failures degrade to an empty result.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) []model.UserSummary {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	endpoint := fmt.Sprintf("search/users?q=%s&per_page=%d", url.QueryEscape(query), limit)

	resp, err := fetchJSON[searchResponse[userPayload]](ctx, c, endpoint, RequestOptions{Authenticated: true})
	if err != nil {
		log.Debug("user search failed", "query", query, "error", err)
		return []model.UserSummary{}
	}

	users := make([]model.UserSummary, 0, len(resp.Items))
	for _, item := range resp.Items {
		users = append(users, item.normalize())
	}
	return users
}

// SearchCombined runs the repository and user searches concurrently.
// Both halves keep the listing contract, so a failed half comes back
// empty without affecting the other.
func (c *Client) SearchCombined(ctx context.Context, query string, limit int) ([]model.TrendingRepo, []model.UserSummary) {
	var (
		repos []model.TrendingRepo
		users []model.UserSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		repos = c.SearchRepositories(gctx, query, "stars", limit)
		return nil
	})
	g.Go(func() error {
		users = c.SearchUsers(gctx, query, limit)
		return nil
	})
	_ = g.Wait()
	return repos, users
}

// TrendingRepositories returns the most-starred repositories created
// within the given window ("daily", "weekly" or "monthly"), optionally
// filtered by language. Listing contract: failures degrade to empty.
func (c *Client) TrendingRepositories(ctx context.Context, language, since string, limit int) []model.TrendingRepo {
	var window time.Duration
	switch since {
	case "daily":
		window = 24 * time.Hour
	case "monthly":
		window = 30 * 24 * time.Hour
	default:
		window = 7 * 24 * time.Hour
	}

	query := fmt.Sprintf("created:>%s", time.Now().Add(-window).Format("2006-01-02"))
	if language != "" {
		query += " language:" + language
	}
	return c.SearchRepositories(ctx, query, "stars", limit)
}

// Repository fetches one repository. Profile contract: errors
// propagate.
func (c *Client) Repository(ctx context.Context, owner, name string) (model.TrendingRepo, error) {
	endpoint := fmt.Sprintf("repos/%s/%s", owner, name)
	payload, err := fetchJSON[repoPayload](ctx, c, endpoint, RequestOptions{Authenticated: true, Class: cache.ClassStandard})
	if err != nil {
		return model.TrendingRepo{}, err
	}
	return payload.normalize(), nil
}
