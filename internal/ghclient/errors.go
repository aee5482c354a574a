package ghclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingToken is returned when a GraphQL query is attempted without
// a credential. GraphQL has no anonymous tier, unlike REST.
var ErrMissingToken = errors.New("github token not set")

// HTTPError is a non-2xx REST response. Rate-limited responses (403 and
// 429) only surface as HTTPError when no cache entry, stale included,
// was available to fall back on.
type HTTPError struct {
	Status   int
	Endpoint string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("github api: %s returned HTTP %d", e.Endpoint, e.Status)
}

// RateLimited reports whether the response was a quota rejection.
func (e *HTTPError) RateLimited() bool {
	return e.Status == http.StatusForbidden || e.Status == http.StatusTooManyRequests
}

// NetworkError is a transport-level failure where no response was
// received at all.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("github api: %s: network failure: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// GraphQLError is a 200 GraphQL response carrying a non-empty errors
// array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// IsRateLimited reports whether err is a quota rejection that could not
// be served from cache.
func IsRateLimited(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.RateLimited()
}
