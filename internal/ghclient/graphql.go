package ghclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/ratelimit"
)

const (
	acceptGraphQL = "application/vnd.github.v4+json"

	// graphqlMaxResponse bounds response reads so a pathological
	// payload cannot exhaust memory.
	graphqlMaxResponse = 4 << 20
)

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlErr    `json:"errors"`
}

type graphqlErr struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// graphqlRateLimit mirrors the rateLimit field callers embed in their
// query selections. GraphQL accounts quota by query cost rather than
// request count, and reports resetAt as an ISO datetime.
type graphqlRateLimit struct {
	Limit     int       `json:"limit"`
	Cost      int       `json:"cost"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// QueryGraphQL posts a GraphQL document and decodes the data field into
// into (which may be nil to discard it). A token must be set:
// unlike REST there is no anonymous GraphQL tier, so the call fails
// fast with ErrMissingToken. Responses are not cached at this level.
//
// When the caller's selection includes a rateLimit{limit cost remaining
// resetAt} field, the core publishes it through the same observer the
// REST headers feed, with resetAt converted to epoch milliseconds.
func (c *Client) QueryGraphQL(ctx context.Context, query string, variables map[string]any, into any) error {
	if !c.tokens.HasValidToken() {
		return ErrMissingToken
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Accept", acceptGraphQL)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// The oauth2 transport attaches the bearer header.
	resp, err := c.httpAuth.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: "graphql", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{Status: resp.StatusCode, Endpoint: "graphql"}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, graphqlMaxResponse))
	if err != nil {
		return &NetworkError{Endpoint: "graphql", Err: err}
	}

	var gr graphqlResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, len(gr.Errors))
		for i, e := range gr.Errors {
			msgs[i] = e.Message
		}
		return &GraphQLError{Messages: msgs}
	}

	c.publishGraphQLRate(gr.Data)

	if into != nil {
		if err := json.Unmarshal(gr.Data, into); err != nil {
			return fmt.Errorf("decode graphql data: %w", err)
		}
	}
	return nil
}

// publishGraphQLRate pulls the embedded rateLimit selection out of the
// response data, when present, and converts it to the same snapshot
// shape the REST headers produce. Cost stands in for Used.
func (c *Client) publishGraphQLRate(data json.RawMessage) {
	if len(data) == 0 {
		return
	}
	var probe struct {
		RateLimit *graphqlRateLimit `json:"rateLimit"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || probe.RateLimit == nil {
		return
	}
	rl := probe.RateLimit
	c.observer.Publish(ratelimit.Snapshot{
		Remaining: rl.Remaining,
		Limit:     rl.Limit,
		ResetTime: rl.ResetAt.UnixMilli(),
		Used:      rl.Cost,
	})
}

// contributionCalendarQuery feeds the profile heatmap. The rateLimit
// selection keeps the quota display current on GraphQL-only pages.
const contributionCalendarQuery = `
query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
  rateLimit {
    limit
    cost
    remaining
    resetAt
  }
}`

// ContributionDay is one day of a user's contribution calendar.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"contributionCount"`
}

// ContributionCalendar is a user's contribution heatmap over the last
// year.
type ContributionCalendar struct {
	Total int
	Days  []ContributionDay
}

// UserContributionCalendar fetches the contribution calendar for login.
// This data only exists on the GraphQL surface. Analytics contract:
// errors propagate.
func (c *Client) UserContributionCalendar(ctx context.Context, login string) (ContributionCalendar, error) {
	var out struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []ContributionDay `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}

	err := c.QueryGraphQL(ctx, contributionCalendarQuery, map[string]any{"login": login}, &out)
	if err != nil {
		return ContributionCalendar{}, err
	}

	cal := ContributionCalendar{
		Total: out.User.ContributionsCollection.ContributionCalendar.TotalContributions,
	}
	for _, week := range out.User.ContributionsCollection.ContributionCalendar.Weeks {
		cal.Days = append(cal.Days, week.ContributionDays...)
	}
	return cal, nil
}

// pinnedReposQuery lists a user's pinned repositories, which REST does
// not expose.
const pinnedReposQuery = `
query($login: String!) {
  user(login: $login) {
    pinnedItems(first: 6, types: REPOSITORY) {
      nodes {
        ... on Repository {
          name
          owner { login }
          description
          stargazerCount
          forkCount
          primaryLanguage { name }
          url
        }
      }
    }
  }
  rateLimit {
    limit
    cost
    remaining
    resetAt
  }
}`

// PinnedRepository is a repository pinned on a user's profile.
type PinnedRepository struct {
	Name        string
	Owner       string
	Description string
	Stars       int
	Forks       int
	Language    string
	URL         string
}

// PinnedRepositories fetches the repositories pinned on login's
// profile. Analytics contract: errors propagate.
func (c *Client) PinnedRepositories(ctx context.Context, login string) ([]PinnedRepository, error) {
	var out struct {
		User struct {
			PinnedItems struct {
				Nodes []struct {
					Name  string `json:"name"`
					Owner struct {
						Login string `json:"login"`
					} `json:"owner"`
					Description     string `json:"description"`
					StargazerCount  int    `json:"stargazerCount"`
					ForkCount       int    `json:"forkCount"`
					PrimaryLanguage *struct {
						Name string `json:"name"`
					} `json:"primaryLanguage"`
					URL string `json:"url"`
				} `json:"nodes"`
			} `json:"pinnedItems"`
		} `json:"user"`
	}

	err := c.QueryGraphQL(ctx, pinnedReposQuery, map[string]any{"login": login}, &out)
	if err != nil {
		return nil, err
	}

	pinned := make([]PinnedRepository, 0, len(out.User.PinnedItems.Nodes))
	for _, n := range out.User.PinnedItems.Nodes {
		p := PinnedRepository{
			Name:        n.Name,
			Owner:       n.Owner.Login,
			Description: n.Description,
			Stars:       n.StargazerCount,
			Forks:       n.ForkCount,
			URL:         n.URL,
		}
		if n.PrimaryLanguage != nil {
			p.Language = n.PrimaryLanguage.Name
		}
		pinned = append(pinned, p)
	}
	return pinned, nil
}
