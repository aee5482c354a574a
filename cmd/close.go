package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/internal/model"
)

// NewCmdClose creates the close command with subcommands.
func NewCmdClose(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close an issue or pull request",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "issue <owner/name#number>",
		Short: "Close an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, number, err := splitItemRef(args[0])
			if err != nil {
				return err
			}
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			result := rt.client.CloseIssue(context.Background(), owner, name, number)
			return reportAction(fmt.Sprintf("issue %s#%d", owner+"/"+name, number), result)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pr <owner/name#number>",
		Short: "Close a pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, number, err := splitItemRef(args[0])
			if err != nil {
				return err
			}
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			result := rt.client.ClosePullRequest(context.Background(), owner, name, number)
			return reportAction(fmt.Sprintf("pull request %s#%d", owner+"/"+name, number), result)
		},
	})

	return cmd
}

func reportAction(what string, result model.ActionResult) error {
	if !result.Success {
		return fmt.Errorf("failed to close %s: %s", what, result.Error)
	}
	fmt.Printf("Closed %s.\n", what)
	return nil
}
