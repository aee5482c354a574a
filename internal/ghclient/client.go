// Package ghclient implements the GitHub access layer: a REST fetch
// core with response caching and stale fallback, a GraphQL fetch core,
// and the domain query methods the dashboard commands build on.
//
// Error contracts differ by method class. Listing methods (search,
// issues, events) degrade to empty results and never return an error.
// Profile and analytics methods fail loudly, propagating fetch-core
// errors, because partial analytics are misleading. Write operations
// report their outcome in a model.ActionResult.
package ghclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/gitpulsehq/gitpulse/internal/cache"
	"github.com/gitpulsehq/gitpulse/internal/log"
	"github.com/gitpulsehq/gitpulse/internal/ratelimit"
	"github.com/gitpulsehq/gitpulse/internal/tokens"
)

const (
	userAgent = "gitpulse"

	defaultGraphQLURL = "https://api.github.com/graphql"

	requestTimeout = 30 * time.Second
)

// Client is the chokepoint for all GitHub API access.
type Client struct {
	tokens   *tokens.Store
	cache    *cache.Cache
	observer ratelimit.Observer

	rest       *gh.Client   // anonymous REST client (lower quota)
	restAuth   *gh.Client   // REST client carrying the bearer credential
	httpAuth   *http.Client // reused for GraphQL POSTs
	graphqlURL string
}

// New constructs a Client. The observer receives a quota snapshot after
// every successful call on either protocol; pass nil to discard them.
func New(ts *tokens.Store, c *cache.Cache, obs ratelimit.Observer) *Client {
	if obs == nil {
		obs = ratelimit.ObserverFunc(func(ratelimit.Snapshot) {})
	}

	// No ReuseTokenSource wrapper: the store is the source of truth so
	// a replaced token takes effect on the next request.
	httpAuth := &http.Client{
		Transport: &oauth2.Transport{Source: ts.Source()},
		Timeout:   requestTimeout,
	}

	rest := gh.NewClient(&http.Client{Timeout: requestTimeout})
	rest.UserAgent = userAgent
	restAuth := gh.NewClient(httpAuth)
	restAuth.UserAgent = userAgent

	return &Client{
		tokens:     ts,
		cache:      c,
		observer:   obs,
		rest:       rest,
		restAuth:   restAuth,
		httpAuth:   httpAuth,
		graphqlURL: defaultGraphQLURL,
	}
}

// WithBaseURL points both fetch cores at base, for tests and GitHub
// Enterprise deployments. base must end in a slash.
func (c *Client) WithBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		return fmt.Errorf("base URL %q must end in a slash", base)
	}
	c.rest.BaseURL = u
	c.restAuth.BaseURL = u
	c.graphqlURL = strings.TrimSuffix(base, "/") + "/graphql"
	return nil
}

// RequestOptions configures one REST call.
type RequestOptions struct {
	// Authenticated attaches the bearer credential when a token is
	// present; without one the call falls back to the anonymous tier.
	Authenticated bool

	// Class selects the cache TTL window for this endpoint.
	Class cache.Class
}

// Request performs a GET against endpoint (a path relative to the API
// root, query string included) and returns the raw JSON payload.
//
// The endpoint string is the cache key, verbatim. A fresh cache entry
// short-circuits the network entirely. On a 403/429 or a transport
// failure an existing cache entry is returned even when expired; only
// when no entry exists does the typed error propagate. No synthetic
// fallback data is ever substituted for an error.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	if payload, ok := c.cache.Get(endpoint, opts.Class); ok {
		log.Trace("cache hit", "endpoint", endpoint)
		return payload, nil
	}

	client := c.rest
	if opts.Authenticated && c.tokens.HasValidToken() {
		client = c.restAuth
	}

	req, err := client.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}

	var buf bytes.Buffer
	resp, err := client.Do(ctx, req, &buf)
	if err != nil {
		return c.classifyFailure(endpoint, resp, err)
	}

	c.publishREST(resp)

	payload := json.RawMessage(bytes.Clone(buf.Bytes()))
	c.cache.Set(endpoint, payload)
	return payload, nil
}

// classifyFailure decides between the stale-cache fallback and a typed
// error. Only this core makes that decision; domain methods either
// propagate or swallow whatever comes out.
func (c *Client) classifyFailure(endpoint string, resp *gh.Response, err error) (json.RawMessage, error) {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	rateLimited := errors.As(err, &rateErr) || errors.As(err, &abuseErr) ||
		status == http.StatusForbidden || status == http.StatusTooManyRequests

	if rateLimited {
		if payload, ok := c.cache.GetStale(endpoint); ok {
			log.Debug("rate limited, serving stale cache", "endpoint", endpoint, "status", status)
			return payload, nil
		}
		if status == 0 {
			status = http.StatusForbidden
		}
		return nil, &HTTPError{Status: status, Endpoint: endpoint}
	}

	if resp == nil {
		// No response at all: transport-level failure.
		if payload, ok := c.cache.GetStale(endpoint); ok {
			log.Debug("network failure, serving stale cache", "endpoint", endpoint, "error", err)
			return payload, nil
		}
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}

	return nil, &HTTPError{Status: status, Endpoint: endpoint}
}

// publishREST extracts the x-ratelimit-* headers and forwards them to
// the observer. http.Header lookup is case-insensitive. Used is not
// part of go-github's Rate struct, so it is parsed directly.
func (c *Client) publishREST(resp *gh.Response) {
	if resp == nil || resp.Header == nil {
		return
	}
	if resp.Rate.Limit == 0 && resp.Header.Get("X-Ratelimit-Limit") == "" {
		return
	}
	used, _ := strconv.Atoi(resp.Header.Get("X-Ratelimit-Used"))
	c.observer.Publish(ratelimit.Snapshot{
		Remaining: resp.Rate.Remaining,
		Limit:     resp.Rate.Limit,
		ResetTime: resp.Rate.Reset.Time.UnixMilli(),
		Used:      used,
	})
}

// patch issues a write request. Write operations bypass the cache.
func (c *Client) patch(ctx context.Context, endpoint string, body any) error {
	client := c.rest
	if c.tokens.HasValidToken() {
		client = c.restAuth
	}

	req, err := client.NewRequest(http.MethodPatch, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}

	resp, err := client.Do(ctx, req, nil)
	if err != nil {
		if resp == nil {
			return &NetworkError{Endpoint: endpoint, Err: err}
		}
		return &HTTPError{Status: resp.StatusCode, Endpoint: endpoint}
	}
	c.publishREST(resp)
	return nil
}

// fetchJSON runs a GET through the fetch core and decodes the payload
// into T.
func fetchJSON[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (T, error) {
	var out T
	payload, err := c.Request(ctx, endpoint, opts)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return out, nil
}
