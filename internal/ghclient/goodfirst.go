package ghclient

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/gitpulsehq/gitpulse/internal/log"
	"github.com/gitpulsehq/gitpulse/internal/model"
)

// Good-first-issue fan-out defaults. Batch size and delay are the only
// throttle knobs: the fan-out issues many search calls against popular
// repositories and would trip secondary rate limits without pacing.
const (
	DefaultGoodFirstStarThreshold = 10000
	DefaultGoodFirstRepoLimit     = 8
	DefaultGoodFirstBatchSize     = 2
	DefaultGoodFirstBatchDelay    = 250 * time.Millisecond
	DefaultGoodFirstResultLimit   = 30

	goodFirstPerQueryLimit = 10
)

// goodFirstLabels are the label variants tried per repository.
var goodFirstLabels = []string{
	"good first issue",
	"good-first-issue",
	"help wanted",
	"beginner friendly",
	"easy",
}

// GoodFirstIssueOptions configures the good-first-issue fan-out. Zero
// values take the package defaults.
type GoodFirstIssueOptions struct {
	StarThreshold int
	RepoLimit     int
	BatchSize     int
	BatchDelay    time.Duration
	ResultLimit   int
	Labels        []string
}

func (o *GoodFirstIssueOptions) applyDefaults() {
	if o.StarThreshold <= 0 {
		o.StarThreshold = DefaultGoodFirstStarThreshold
	}
	if o.RepoLimit <= 0 {
		o.RepoLimit = DefaultGoodFirstRepoLimit
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultGoodFirstBatchSize
	}
	if o.BatchDelay <= 0 {
		o.BatchDelay = DefaultGoodFirstBatchDelay
	}
	if o.ResultLimit <= 0 {
		o.ResultLimit = DefaultGoodFirstResultLimit
	}
	if len(o.Labels) == 0 {
		o.Labels = goodFirstLabels
	}
}

// GoodFirstIssues finds unassigned beginner-friendly issues across the
// most popular repositories. It is a fan-out-then-merge: the top
// repositories by stars are fetched first, then each repository is
// queried once per label variant, in small serialized batches with a
// fixed inter-batch delay. Results are deduplicated by issue ID across
// labels and repositories, sorted by most recent update and truncated.
//
// Listing contract: failures degrade to whatever was collected, down to
// an empty slice.
func (c *Client) GoodFirstIssues(ctx context.Context, opts GoodFirstIssueOptions) []model.WorkItem {
	opts.applyDefaults()

	repoQuery := fmt.Sprintf("stars:>%d", opts.StarThreshold)
	repos := c.SearchRepositories(ctx, repoQuery, "stars", opts.RepoLimit)
	if len(repos) == 0 {
		return []model.WorkItem{}
	}

	var queries []string
	for _, repo := range repos {
		for _, label := range opts.Labels {
			queries = append(queries,
				fmt.Sprintf("repo:%s label:%q state:open no:assignee", repo.FullName, label))
		}
	}

	// One token per batch; the limiter provides the inter-batch delay.
	pacer := rate.NewLimiter(rate.Every(opts.BatchDelay), 1)

	seen := make(map[int64]struct{})
	var items []model.WorkItem
	var mu sync.Mutex

	for start := 0; start < len(queries); start += opts.BatchSize {
		if err := pacer.Wait(ctx); err != nil {
			log.Debug("good-first-issue fan-out interrupted", "error", err)
			break
		}

		end := min(start+opts.BatchSize, len(queries))
		g, gctx := errgroup.WithContext(ctx)
		for _, q := range queries[start:end] {
			q := q
			g.Go(func() error {
				batch := c.searchWorkItems(gctx, q, goodFirstPerQueryLimit)
				mu.Lock()
				defer mu.Unlock()
				for _, item := range batch {
					if _, dup := seen[item.ID]; dup {
						continue
					}
					seen[item.ID] = struct{}{}
					items = append(items, item)
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	if len(items) > opts.ResultLimit {
		items = items[:opts.ResultLimit]
	}
	return items
}
