// Package scoring computes the derived display scores: repository
// health, user activity and contributor impact. Every function here is
// pure over normalized records and clamps its result to [0,100];
// nothing is cached, scores are recomputed from current inputs.
package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/model"
)

// Health score weights. The positive weights sum to 100.
const (
	healthDescription = 15
	healthTopics      = 10
	healthLanguage    = 10
	healthMaintained  = 20
	healthIssueRange  = 15
	healthForkRatio   = 10
	healthRecentPush  = 20

	archivedPenalty = 20
	forkPenalty     = 10

	recentPushWindow = 30 * 24 * time.Hour
)

// Health scores a repository's upkeep out of 100. Archived repositories
// lose the maintained weight and take a flat penalty on top, so an
// otherwise-maximal archived repository caps out well below 80.
func Health(repo model.TrendingRepo) int {
	return healthAt(repo, time.Now())
}

func healthAt(repo model.TrendingRepo, now time.Time) int {
	score := 0
	if repo.Description != "" {
		score += healthDescription
	}
	if len(repo.Topics) > 0 {
		score += healthTopics
	}
	if repo.Language != "" {
		score += healthLanguage
	}
	if repo.Archived {
		score -= archivedPenalty
	} else {
		score += healthMaintained
	}
	if repo.OpenIssues >= 1 && repo.OpenIssues < 50 {
		score += healthIssueRange
	}
	if repo.Stars > 0 && float64(repo.Forks)/float64(repo.Stars) > 0.1 {
		score += healthForkRatio
	}
	if !repo.PushedAt.IsZero() && now.Sub(repo.PushedAt) < recentPushWindow {
		score += healthRecentPush
	}
	if repo.Fork {
		score -= forkPenalty
	}
	return clamp(score)
}

// Activity scores a user's overall activity from repository count, star
// count and contributor reach. Repo and star contributions are
// log-scaled; the contributor term is relative to the dataset maximum.
func Activity(repoCount, stars, contributors, maxContributors int) int {
	score := math.Min(math.Log1p(float64(repoCount))*10, 30)
	score += math.Min(math.Log1p(float64(stars))*8, 40)
	if maxContributors > 0 {
		score += float64(contributors) / float64(maxContributors) * 30
	}
	return clamp(int(math.Round(score)))
}

// Impact scores a contributor from contributions, repositories, stars
// and followers. Each term is capped before summing so no single
// dimension dominates.
func Impact(contributions, repos, stars, followers int) int {
	score := min(contributions/10, 40)
	score += min(repos*2, 20)
	score += min(stars/50, 25)
	score += min(followers/20, 15)
	return clamp(score)
}

// Contribution scores a user's direct output: commits, pull requests,
// issues and reviews, capped per term.
func Contribution(commits, pullRequests, issues, reviews int) int {
	score := min(commits/5, 40)
	score += min(pullRequests*3, 30)
	score += min(issues*2, 15)
	score += min(reviews*3, 15)
	return clamp(score)
}

// OpenSource scores public open-source presence.
func OpenSource(publicRepos, stars, forks int) int {
	score := min(publicRepos*2, 30)
	score += min(stars/10, 50)
	score += min(forks/5, 20)
	return clamp(score)
}

// languageWindow and languageKeep bound the LanguagesBySize
// aggregation: only the most recently touched repositories count, and
// only the biggest languages are kept.
const (
	languageWindow = 20
	languageKeep   = 10
)

// LanguagesBySize aggregates repository size by primary language over
// the 20 most recently updated repositories, sorted descending by
// aggregate size, top 10 kept. Repositories without a language are
// skipped.
func LanguagesBySize(repos []model.TrendingRepo) []model.LanguageStat {
	window := make([]model.TrendingRepo, len(repos))
	copy(window, repos)
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].UpdatedAt.After(window[j].UpdatedAt)
	})
	if len(window) > languageWindow {
		window = window[:languageWindow]
	}

	totals := make(map[string]int)
	for _, r := range window {
		if r.Language == "" {
			continue
		}
		totals[r.Language] += r.Size
	}

	stats := make([]model.LanguageStat, 0, len(totals))
	for name, value := range totals {
		stats = append(stats, model.LanguageStat{Name: name, Value: value})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Value != stats[j].Value {
			return stats[i].Value > stats[j].Value
		}
		return stats[i].Name < stats[j].Name
	})
	if len(stats) > languageKeep {
		stats = stats[:languageKeep]
	}
	return stats
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
