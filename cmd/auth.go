package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/internal/tokens"
)

// NewCmdAuth creates the auth command.
func NewCmdAuth(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect the API credential",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether a usable token is configured",
		Long: `Reports the token from GITPULSE_TOKEN or GITHUB_TOKEN: whether one is
present and which credential format it matches. The token itself is
never printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthStatus(opts)
		},
	})

	return cmd
}

func runAuthStatus(opts *Options) error {
	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}

	token := rt.cfg.Token()
	if token == "" {
		fmt.Println("No token configured. Set GITPULSE_TOKEN or GITHUB_TOKEN.")
		fmt.Println("Unauthenticated requests run on the lower quota tier.")
		return nil
	}

	kind, err := tokens.Classify(token)
	if err != nil {
		fmt.Printf("Token present but %s %v\n", color.YellowString("unrecognized:"), err)
		fmt.Println("It will still be sent; GitHub decides whether it works.")
		return nil
	}

	fmt.Printf("Token present: %s format\n", color.GreenString(string(kind)))
	return nil
}
