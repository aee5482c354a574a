package ghclient

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/gitpulsehq/gitpulse/internal/cache"
	"github.com/gitpulsehq/gitpulse/internal/log"
	"github.com/gitpulsehq/gitpulse/internal/model"
	"github.com/gitpulsehq/gitpulse/internal/scoring"
)

// Weekly-activity aggregation bounds.
const (
	weeklyRepoLimit = 5
	weeklyWindow    = 7 * 24 * time.Hour
)

// Commit pagination bounds for the fallback counting path.
const (
	commitPageSize  = 100
	commitMaxPages  = 3
	commitPageDelay = 150 * time.Millisecond
)

// weekdayNames index by Monday-start weekday.
var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// mondayWeekday converts Go's Sunday-start weekday to a Monday-start
// index.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// commitPayload is the raw commit shape from the commits endpoint. The
// top-level author is the linked GitHub account and may be null; the
// nested commit.author is free-text from the commit itself.
type commitPayload struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
}

// authoredBy attributes a commit to login, matching the structured
// author login first and falling back to a case-insensitive substring
// match on the free-text author name. GitHub's author-login linkage is
// sometimes absent, so the substring match is a deliberate fallback.
func (p commitPayload) authoredBy(login string) bool {
	if p.Author != nil && strings.EqualFold(p.Author.Login, login) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Commit.Author.Name), strings.ToLower(login))
}

// AuthenticatedLogin returns the login of the token's user. Profile
// contract: errors propagate.
func (c *Client) AuthenticatedLogin(ctx context.Context) (string, error) {
	payload, err := fetchJSON[userPayload](ctx, c, "user", RequestOptions{Authenticated: true})
	if err != nil {
		return "", err
	}
	return payload.Login, nil
}

// UserProfile fetches a user's profile. Profile contract: errors
// propagate.
func (c *Client) UserProfile(ctx context.Context, login string) (model.UserSummary, error) {
	payload, err := fetchJSON[userPayload](ctx, c, "users/"+login, RequestOptions{Authenticated: true})
	if err != nil {
		return model.UserSummary{}, err
	}
	return payload.normalize(), nil
}

// UserRepositories lists a user's repositories, most recently pushed
// first. Profile contract: errors propagate.
func (c *Client) UserRepositories(ctx context.Context, login string, limit int) ([]model.TrendingRepo, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	endpoint := fmt.Sprintf("users/%s/repos?sort=pushed&per_page=%d", login, limit)
	payloads, err := fetchJSON[[]repoPayload](ctx, c, endpoint, RequestOptions{Authenticated: true})
	if err != nil {
		return nil, err
	}
	repos := make([]model.TrendingRepo, 0, len(payloads))
	for _, p := range payloads {
		repos = append(repos, p.normalize())
	}
	return repos, nil
}

// UserAnalytics aggregates a user's profile, repositories, language
// distribution and weekly activity. Analytics contract: errors from the
// profile and repository fetches propagate, since partial analytics are
// misleading. Per-repository commit failures inside the weekly
// aggregation only drop that repository's contribution.
func (c *Client) UserAnalytics(ctx context.Context, login string) (model.UserAnalytics, error) {
	var (
		profile model.UserSummary
		repos   []model.TrendingRepo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = c.UserProfile(gctx, login)
		return err
	})
	g.Go(func() error {
		var err error
		repos, err = c.UserRepositories(gctx, login, 100)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.UserAnalytics{}, err
	}

	totalStars := 0
	for _, r := range repos {
		totalStars += r.Stars
	}

	return model.UserAnalytics{
		Profile:    profile,
		Repos:      repos,
		TotalStars: totalStars,
		Languages:  scoring.LanguagesBySize(repos),
		Weekly:     c.weeklyActivity(ctx, login, repos),
	}, nil
}

// weeklyActivity derives per-weekday commit/PR/issue counts for the
// last seven days. Commits come from the user's five most recently
// updated repositories; PRs and issues from two author searches. Weeks
// start Monday.
func (c *Client) weeklyActivity(ctx context.Context, login string, repos []model.TrendingRepo) []model.WeekdayActivity {
	weekly := make([]model.WeekdayActivity, 7)
	for i := range weekly {
		weekly[i].Day = weekdayNames[i]
	}

	since := time.Now().Add(-weeklyWindow)

	window := make([]model.TrendingRepo, len(repos))
	copy(window, repos)
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].UpdatedAt.After(window[j].UpdatedAt)
	})
	if len(window) > weeklyRepoLimit {
		window = window[:weeklyRepoLimit]
	}

	for _, repo := range window {
		endpoint := fmt.Sprintf("repos/%s/commits?since=%s&per_page=%d",
			repo.FullName, since.UTC().Format(time.RFC3339), commitPageSize)
		commits, err := fetchJSON[[]commitPayload](ctx, c, endpoint, RequestOptions{Authenticated: true, Class: cache.ClassExpensive})
		if err != nil {
			log.Debug("weekly activity: skipping repo", "repo", repo.FullName, "error", err)
			continue
		}
		for _, commit := range commits {
			if !commit.authoredBy(login) {
				continue
			}
			weekly[mondayWeekday(commit.Commit.Author.Date)].Commits++
		}
	}

	sinceDay := since.Format("2006-01-02")
	for _, item := range c.searchWorkItems(ctx, fmt.Sprintf("type:pr author:%s created:>%s", login, sinceDay), commitPageSize) {
		weekly[mondayWeekday(item.CreatedAt)].PullRequests++
	}
	for _, item := range c.searchWorkItems(ctx, fmt.Sprintf("type:issue author:%s created:>%s", login, sinceDay), commitPageSize) {
		weekly[mondayWeekday(item.CreatedAt)].Issues++
	}

	return weekly
}

// contributorPayload is the raw contributor-statistics shape.
type contributorPayload struct {
	Total  int `json:"total"`
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
}

// commitCountStrategy is one tier of the commit-count fallback
// pipeline. Strategies run in order until one yields a non-zero count.
type commitCountStrategy struct {
	name string
	run  func(ctx context.Context) (int, error)
}

// CommitCount returns the number of commits login has made to
// owner/repo. The contributor-statistics endpoint is tried first (one
// cheap call, but GitHub computes it asynchronously and may reply 202
// or with stale data); then the commits endpoint filtered by author,
// paginated and paced; and finally an unfiltered recent-commit window
// with client-side author matching. A zero count is only returned after
// at least one paginated path has been tried.
func (c *Client) CommitCount(ctx context.Context, owner, repo, login string) (int, error) {
	strategies := []commitCountStrategy{
		{"contributor-stats", func(ctx context.Context) (int, error) {
			return c.commitCountFromStats(ctx, owner, repo, login)
		}},
		{"paginated-author-commits", func(ctx context.Context) (int, error) {
			return c.commitCountPaginated(ctx, owner, repo, login)
		}},
		{"recent-window-scan", func(ctx context.Context) (int, error) {
			return c.commitCountRecentWindow(ctx, owner, repo, login)
		}},
	}

	var lastErr error
	for _, s := range strategies {
		count, err := s.run(ctx)
		if err != nil {
			log.Debug("commit count strategy failed", "strategy", s.name, "repo", owner+"/"+repo, "error", err)
			lastErr = err
			continue
		}
		if count > 0 {
			return count, nil
		}
	}
	if lastErr != nil {
		return 0, lastErr
	}
	return 0, nil
}

func (c *Client) commitCountFromStats(ctx context.Context, owner, repo, login string) (int, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/stats/contributors", owner, repo)
	stats, err := fetchJSON[[]contributorPayload](ctx, c, endpoint, RequestOptions{Authenticated: true, Class: cache.ClassExpensive})
	if err != nil {
		return 0, err
	}
	for _, s := range stats {
		if strings.EqualFold(s.Author.Login, login) {
			return s.Total, nil
		}
	}
	return 0, nil
}

func (c *Client) commitCountPaginated(ctx context.Context, owner, repo, login string) (int, error) {
	pacer := rate.NewLimiter(rate.Every(commitPageDelay), 1)
	count := 0
	for page := 1; page <= commitMaxPages; page++ {
		if err := pacer.Wait(ctx); err != nil {
			return count, err
		}
		endpoint := fmt.Sprintf("repos/%s/%s/commits?author=%s&per_page=%d&page=%d",
			owner, repo, login, commitPageSize, page)
		commits, err := fetchJSON[[]commitPayload](ctx, c, endpoint, RequestOptions{Authenticated: true, Class: cache.ClassExpensive})
		if err != nil {
			return count, err
		}
		count += len(commits)
		if len(commits) < commitPageSize {
			break
		}
	}
	return count, nil
}

func (c *Client) commitCountRecentWindow(ctx context.Context, owner, repo, login string) (int, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/commits?per_page=%d", owner, repo, commitPageSize)
	commits, err := fetchJSON[[]commitPayload](ctx, c, endpoint, RequestOptions{Authenticated: true, Class: cache.ClassExpensive})
	if err != nil {
		return 0, err
	}
	count := 0
	for _, commit := range commits {
		if commit.authoredBy(login) {
			count++
		}
	}
	return count, nil
}
