package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/internal/model"
	"github.com/gitpulsehq/gitpulse/internal/scoring"
)

// NewCmdUser creates the user command with subcommands.
func NewCmdUser(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user <login>",
		Short: "Show user analytics",
		Long: `Aggregates a user's profile, repositories, language distribution and
weekly activity into one report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserAnalytics(args[0], opts)
		},
	}

	cmd.AddCommand(newCmdUserCalendar(opts))
	cmd.AddCommand(newCmdUserPinned(opts))
	cmd.AddCommand(newCmdUserScore(opts))

	return cmd
}

func runUserAnalytics(login string, opts *Options) error {
	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}

	analytics, err := rt.client.UserAnalytics(context.Background(), login)
	if err != nil {
		return fmt.Errorf("failed to build analytics for %s: %w", login, err)
	}
	return rt.formatter().Analytics(analytics, os.Stdout)
}

func newCmdUserCalendar(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <login>",
		Short: "Show a user's contribution calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}

			cal, err := rt.client.UserContributionCalendar(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch contribution calendar: %w", err)
			}

			fmt.Printf("%d contributions in the last year\n\n", cal.Total)
			for _, day := range cal.Days {
				if day.Count == 0 {
					continue
				}
				fmt.Printf("  %s  %s\n", day.Date, calendarBar(day.Count))
			}
			return nil
		},
	}
}

// calendarBar renders a day's contribution count as a small bar.
func calendarBar(count int) string {
	width := count
	if width > 40 {
		width = 40
	}
	bar := ""
	for i := 0; i < width; i++ {
		bar += "▪"
	}
	return color.GreenString("%s %d", bar, count)
}

func newCmdUserPinned(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "pinned <login>",
		Short: "Show the repositories pinned on a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}

			pinned, err := rt.client.PinnedRepositories(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch pinned repositories: %w", err)
			}

			repos := make([]model.TrendingRepo, 0, len(pinned))
			for _, p := range pinned {
				repos = append(repos, model.TrendingRepo{
					Name:        p.Name,
					Owner:       p.Owner,
					FullName:    p.Owner + "/" + p.Name,
					Description: p.Description,
					Language:    p.Language,
					Stars:       p.Stars,
					Forks:       p.Forks,
					Topics:      []string{},
					HTMLURL:     p.URL,
				})
			}
			return rt.formatter().Repos(repos, os.Stdout)
		},
	}
}

func newCmdUserScore(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "score <login>",
		Short: "Show a user's impact and open-source scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}

			ctx := context.Background()
			analytics, err := rt.client.UserAnalytics(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to build analytics for %s: %w", args[0], err)
			}

			cal, err := rt.client.UserContributionCalendar(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch contribution calendar: %w", err)
			}

			totalForks := 0
			for _, r := range analytics.Repos {
				totalForks += r.Forks
			}

			impact := scoring.Impact(cal.Total, analytics.Profile.PublicRepos,
				analytics.TotalStars, analytics.Profile.Followers)
			openSource := scoring.OpenSource(analytics.Profile.PublicRepos,
				analytics.TotalStars, totalForks)

			fmt.Printf("%s\n", args[0])
			fmt.Printf("  Impact:      %3d/100\n", impact)
			fmt.Printf("  Open source: %3d/100\n", openSource)
			return nil
		},
	}
}
