package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/internal/ghclient"
	"github.com/gitpulsehq/gitpulse/internal/model"
)

// NewCmdIssues creates the issues command with subcommands.
func NewCmdIssues(opts *Options) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "issues",
		Short: "List issues and pull requests that involve you",
	}

	cmd.PersistentFlags().StringVarP(&user, "user", "u", "", "GitHub login (defaults to the token's user)")
	cmd.PersistentFlags().IntVarP(&opts.Limit, "limit", "n", 30, "Maximum results")

	cmd.AddCommand(newCmdIssuesList("assigned", "List items assigned to you", &user, opts,
		func(ctx context.Context, rt *runtime, login string) []model.WorkItem {
			return rt.client.AssignedItems(ctx, login, opts.Limit)
		}))
	cmd.AddCommand(newCmdIssuesList("mentions", "List items that mention you", &user, opts,
		func(ctx context.Context, rt *runtime, login string) []model.WorkItem {
			return rt.client.MentionedItems(ctx, login, opts.Limit)
		}))
	cmd.AddCommand(newCmdIssuesList("reviews", "List pull requests awaiting your review", &user, opts,
		func(ctx context.Context, rt *runtime, login string) []model.WorkItem {
			return rt.client.ReviewRequestedItems(ctx, login, opts.Limit)
		}))
	cmd.AddCommand(newCmdIssuesStale(&user, opts))
	cmd.AddCommand(newCmdGoodFirst(opts))

	return cmd
}

type workItemFetch func(ctx context.Context, rt *runtime, login string) []model.WorkItem

func newCmdIssuesList(use, short string, user *string, opts *Options, fetch workItemFetch) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			ctx := context.Background()
			login, err := resolveLogin(ctx, rt, *user)
			if err != nil {
				return err
			}
			items := rt.filterExcludedItems(fetch(ctx, rt, login))
			return rt.formatter().WorkItems(items, os.Stdout)
		},
	}
}

func newCmdIssuesStale(user *string, opts *Options) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stale",
		Short: "List your open pull requests with no recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			if days <= 0 {
				days = rt.cfg.StaleDays
			}
			ctx := context.Background()
			login, err := resolveLogin(ctx, rt, *user)
			if err != nil {
				return err
			}
			items := rt.filterExcludedItems(rt.client.StalePullRequests(ctx, login, days, opts.Limit))
			return rt.formatter().WorkItems(items, os.Stdout)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days without activity before a PR counts as stale")
	return cmd
}

func newCmdGoodFirst(opts *Options) *cobra.Command {
	var (
		stars int
		repos int
	)

	cmd := &cobra.Command{
		Use:   "good-first",
		Short: "Find beginner-friendly issues in popular repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			gf := rt.cfg.GoodFirst
			fanout := ghclient.GoodFirstIssueOptions{
				StarThreshold: gf.StarThreshold,
				RepoLimit:     gf.RepoLimit,
				BatchSize:     gf.BatchSize,
				BatchDelay:    gf.BatchDelay,
				ResultLimit:   gf.ResultLimit,
			}
			if stars > 0 {
				fanout.StarThreshold = stars
			}
			if repos > 0 {
				fanout.RepoLimit = repos
			}
			items := rt.filterExcludedItems(rt.client.GoodFirstIssues(context.Background(), fanout))
			return rt.formatter().WorkItems(items, os.Stdout)
		},
	}

	cmd.Flags().IntVar(&stars, "stars", 0, "Minimum repository star count")
	cmd.Flags().IntVar(&repos, "repos", 0, "Number of repositories to scan")
	return cmd
}

// resolveLogin returns the explicit login if given, otherwise the
// authenticated user's.
func resolveLogin(ctx context.Context, rt *runtime, user string) (string, error) {
	if user != "" {
		return user, nil
	}
	login, err := rt.client.AuthenticatedLogin(ctx)
	if err != nil {
		return "", fmt.Errorf("no --user given and the token's user could not be resolved: %w", err)
	}
	return login, nil
}
