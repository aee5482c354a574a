package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/internal/scoring"
)

// NewCmdRepo creates the repo command with subcommands.
func NewCmdRepo(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Inspect a single repository",
	}

	cmd.AddCommand(newCmdRepoReadme(opts))
	cmd.AddCommand(newCmdRepoContributors(opts))
	cmd.AddCommand(newCmdRepoHealth(opts))

	return cmd
}

func newCmdRepoReadme(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "readme <owner/name>",
		Short: "Print a repository's readme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepoArg(args[0])
			if err != nil {
				return err
			}
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			readme, err := rt.client.Readme(context.Background(), owner, name)
			if err != nil {
				return fmt.Errorf("failed to fetch readme: %w", err)
			}
			fmt.Println(readme)
			return nil
		},
	}
}

func newCmdRepoContributors(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contributors <owner/name>",
		Short: "List a repository's top contributors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepoArg(args[0])
			if err != nil {
				return err
			}
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			contributors := rt.client.Contributors(context.Background(), owner, name, opts.Limit)
			return rt.formatter().Contributors(contributors, os.Stdout)
		},
	}
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 30, "Maximum results")
	return cmd
}

func newCmdRepoHealth(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "health <owner/name>",
		Short: "Score a repository's health",
		Long: `Scores a repository out of 100 based on documentation, maintenance
activity, issue hygiene and community signals.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepoArg(args[0])
			if err != nil {
				return err
			}
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}

			repo, err := rt.client.Repository(context.Background(), owner, name)
			if err != nil {
				return fmt.Errorf("failed to fetch repository: %w", err)
			}

			score := scoring.Health(repo)
			fmt.Printf("%s  %s\n", repo.FullName, healthDisplay(score))
			if repo.Archived {
				fmt.Println("  archived")
			}
			fmt.Printf("  stars: %d  forks: %d  open issues: %d\n",
				repo.Stars, repo.Forks, repo.OpenIssues)
			fmt.Printf("  last push: %s\n", repo.PushedAt.Format("2006-01-02"))
			return nil
		},
	}
}

func healthDisplay(score int) string {
	display := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 70:
		return color.GreenString(display)
	case score >= 40:
		return color.YellowString(display)
	default:
		return color.RedString(display)
	}
}
