package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/config"
	"github.com/gitpulsehq/gitpulse/internal/cache"
	"github.com/gitpulsehq/gitpulse/internal/ghclient"
	"github.com/gitpulsehq/gitpulse/internal/log"
	"github.com/gitpulsehq/gitpulse/internal/model"
	"github.com/gitpulsehq/gitpulse/internal/output"
	"github.com/gitpulsehq/gitpulse/internal/ratelimit"
	"github.com/gitpulsehq/gitpulse/internal/store"
	"github.com/gitpulsehq/gitpulse/internal/tokens"
)

// Options holds the shared command-line options for the gitpulse CLI.
type Options struct {
	Format    string
	Limit     int
	Verbosity int
}

// runtime bundles everything a command needs: config, token store,
// cache, rate-limit state and the API client.
type runtime struct {
	cfg    *config.Config
	tokens *tokens.Store
	cache  *cache.Cache
	state  *ratelimit.State
	client *ghclient.Client
	opts   *Options
}

// newRuntime loads config and wires the client stack. The token comes
// from the environment; commands that work anonymously still function
// without one, on the lower quota tier.
func newRuntime(opts *Options) (*runtime, error) {
	log.Initialize(opts.Verbosity, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ts := tokens.NewStore()
	if token := cfg.Token(); token != "" {
		ts.SetFromEnv(token)
	}

	c, err := cache.New(cfg.CacheSize, cache.Policy{
		StandardTTL:  cfg.StandardTTL,
		ExpensiveTTL: cfg.ExpensiveTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build response cache: %w", err)
	}

	state := ratelimit.NewState()

	return &runtime{
		cfg:    cfg,
		tokens: ts,
		cache:  c,
		state:  state,
		client: ghclient.New(ts, c, state),
		opts:   opts,
	}, nil
}

// formatter resolves the output format: flag first, config second.
func (rt *runtime) formatter() output.Formatter {
	format := rt.opts.Format
	if format == "" {
		format = rt.cfg.DefaultFormat
	}
	return output.NewFormatter(output.Format(format))
}

// filterExcluded drops repositories on the config exclude list.
func (rt *runtime) filterExcluded(repos []model.TrendingRepo) []model.TrendingRepo {
	if len(rt.cfg.ExcludeRepos) == 0 {
		return repos
	}
	kept := repos[:0]
	for _, r := range repos {
		if !rt.cfg.IsRepoExcluded(r.FullName) {
			kept = append(kept, r)
		}
	}
	return kept
}

// filterExcludedItems drops work items from excluded repositories.
func (rt *runtime) filterExcludedItems(items []model.WorkItem) []model.WorkItem {
	if len(rt.cfg.ExcludeRepos) == 0 {
		return items
	}
	kept := items[:0]
	for _, item := range items {
		if !rt.cfg.IsRepoExcluded(item.RepoFullName()) {
			kept = append(kept, item)
		}
	}
	return kept
}

// openStore opens the persisted caller-state store.
func openStore() (*store.Store, error) {
	s, err := store.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	return s, nil
}

// splitRepoArg splits an owner/name argument.
func splitRepoArg(arg string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(arg, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("expected owner/name, got %q", arg)
	}
	return owner, name, nil
}

// splitItemRef splits an owner/name#number argument.
func splitItemRef(arg string) (owner, name string, number int, err error) {
	repo, num, ok := strings.Cut(arg, "#")
	if !ok {
		return "", "", 0, fmt.Errorf("expected owner/name#number, got %q", arg)
	}
	owner, name, err = splitRepoArg(repo)
	if err != nil {
		return "", "", 0, err
	}
	number, err = strconv.Atoi(num)
	if err != nil || number <= 0 {
		return "", "", 0, fmt.Errorf("invalid item number in %q", arg)
	}
	return owner, name, number, nil
}

// addGlobalFlags adds the flags every command honors.
func addGlobalFlags(cmd *cobra.Command, opts *Options) {
	cmd.PersistentFlags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
}
