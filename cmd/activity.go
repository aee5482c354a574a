package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// NewCmdActivity creates the activity command.
func NewCmdActivity(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity [user]",
		Short: "Show recent public activity",
		Long: `Show a user's recent public events, or the global public feed when no
user is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := ""
			if len(args) == 1 {
				user = args[0]
			}
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			events := rt.client.RecentActivity(context.Background(), user, opts.Limit)
			return rt.formatter().Events(events, os.Stdout)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 30, "Maximum results")
	return cmd
}
