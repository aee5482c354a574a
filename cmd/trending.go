package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCmdTrending creates the trending command.
func NewCmdTrending(opts *Options) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "trending [language]",
		Short: "Show trending repositories",
		Long: `Show repositories created recently with the most stars, optionally
restricted to one language.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language := ""
			if len(args) == 1 {
				language = args[0]
			}
			return runTrending(language, window, opts)
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "weekly", "Time window (daily, weekly, monthly)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 30, "Maximum results")

	return cmd
}

func runTrending(language, window string, opts *Options) error {
	switch window {
	case "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("unknown window %q (want daily, weekly or monthly)", window)
	}

	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}

	repos := rt.client.TrendingRepositories(context.Background(), language, window, opts.Limit)
	return rt.formatter().Repos(rt.filterExcluded(repos), os.Stdout)
}
