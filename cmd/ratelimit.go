package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/internal/ghclient"
)

// NewCmdRateLimit creates the ratelimit command.
func NewCmdRateLimit(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ratelimit",
		Short: "Check API rate limit status",
		Long:  `Display the current API rate limit status including remaining quota and reset time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRateLimit(opts)
		},
	}
}

func runRateLimit(opts *Options) error {
	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}

	// The snapshot comes from response headers, so one cheap call
	// primes it. rate_limit itself does not count against quota.
	if _, err := rt.client.Request(context.Background(), "rate_limit",
		ghclient.RequestOptions{Authenticated: true}); err != nil {
		return fmt.Errorf("failed to query rate limit: %w", err)
	}

	snap, ok := rt.state.Current()
	if !ok {
		return fmt.Errorf("no rate limit information received")
	}

	resetIn := time.Until(snap.ResetAt()).Round(time.Second)
	if resetIn < 0 {
		resetIn = 0
	}

	fmt.Printf("Core API: %d/%d remaining", snap.Remaining, snap.Limit)
	if snap.Used > 0 {
		fmt.Printf(" (%d used)", snap.Used)
	}
	fmt.Printf(", resets in %s\n", resetIn)

	if rt.state.IsExhausted() {
		fmt.Println("Quota exhausted; cached responses will be served where available.")
	}
	return nil
}
