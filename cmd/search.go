package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/internal/log"
)

// NewCmdSearch creates the search command.
func NewCmdSearch(opts *Options) *cobra.Command {
	var (
		usersOnly bool
		reposOnly bool
		sortBy    string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search GitHub repositories and users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args[0], usersOnly, reposOnly, sortBy, opts)
		},
	}

	cmd.Flags().BoolVar(&usersOnly, "users", false, "Search users only")
	cmd.Flags().BoolVar(&reposOnly, "repos", false, "Search repositories only")
	cmd.Flags().StringVar(&sortBy, "sort", "stars", "Repository sort field (stars, forks, updated)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 30, "Maximum results")

	return cmd
}

func runSearch(query string, usersOnly, reposOnly bool, sortBy string, opts *Options) error {
	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}

	if s, err := openStore(); err == nil {
		if err := s.RecordSearch(query); err != nil {
			log.Debug("could not record search", "error", err)
		}
	}

	ctx := context.Background()
	f := rt.formatter()

	switch {
	case usersOnly:
		return f.Users(rt.client.SearchUsers(ctx, query, opts.Limit), os.Stdout)
	case reposOnly:
		repos := rt.filterExcluded(rt.client.SearchRepositories(ctx, query, sortBy, opts.Limit))
		return f.Repos(repos, os.Stdout)
	default:
		repos, users := rt.client.SearchCombined(ctx, query, opts.Limit)
		if err := f.Repos(rt.filterExcluded(repos), os.Stdout); err != nil {
			return err
		}
		fmt.Println()
		return f.Users(users, os.Stdout)
	}
}
