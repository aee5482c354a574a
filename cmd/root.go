package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "gitpulse",
		Short: "GitHub analytics from the command line",
		Long: `A CLI that searches GitHub, surfaces your issues and pull requests,
and aggregates per-user analytics, with response caching and rate-limit
awareness built in.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addGlobalFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdSearch(opts))
	rootCmd.AddCommand(NewCmdTrending(opts))
	rootCmd.AddCommand(NewCmdIssues(opts))
	rootCmd.AddCommand(NewCmdUser(opts))
	rootCmd.AddCommand(NewCmdRepo(opts))
	rootCmd.AddCommand(NewCmdActivity(opts))
	rootCmd.AddCommand(NewCmdClose(opts))
	rootCmd.AddCommand(NewCmdPin())
	rootCmd.AddCommand(NewCmdFav())
	rootCmd.AddCommand(NewCmdHistory())
	rootCmd.AddCommand(NewCmdRateLimit(opts))
	rootCmd.AddCommand(NewCmdAuth(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
