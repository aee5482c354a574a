package ghclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/log"
	"github.com/gitpulsehq/gitpulse/internal/model"
)

// readmePayload is the raw readme shape; content arrives base64-encoded
// with embedded newlines.
type readmePayload struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Readme fetches and decodes a repository's readme. Profile contract:
// errors propagate.
func (c *Client) Readme(ctx context.Context, owner, name string) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/readme", owner, name)
	payload, err := fetchJSON[readmePayload](ctx, c, endpoint, RequestOptions{Authenticated: true})
	if err != nil {
		return "", err
	}
	if payload.Encoding != "base64" {
		return payload.Content, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode readme for %s/%s: %w", owner, name, err)
	}
	return string(decoded), nil
}

// contributorListPayload is the raw contributors-endpoint shape.
type contributorListPayload struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	AvatarURL     string `json:"avatar_url"`
}

// Contributors lists a repository's top contributors. Listing contract:
// failures degrade to empty.
func (c *Client) Contributors(ctx context.Context, owner, name string, limit int) []model.Contributor {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	endpoint := fmt.Sprintf("repos/%s/%s/contributors?per_page=%d", owner, name, limit)
	payloads, err := fetchJSON[[]contributorListPayload](ctx, c, endpoint, RequestOptions{Authenticated: true})
	if err != nil {
		log.Debug("contributor listing failed", "repo", owner+"/"+name, "error", err)
		return []model.Contributor{}
	}
	contributors := make([]model.Contributor, 0, len(payloads))
	for _, p := range payloads {
		contributors = append(contributors, model.Contributor{
			Login:         p.Login,
			Contributions: p.Contributions,
			AvatarURL:     p.AvatarURL,
		})
	}
	return contributors
}

// eventPayload is the raw events-endpoint shape.
type eventPayload struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Actor struct {
		Login string `json:"login"`
	} `json:"actor"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Action  string `json:"action"`
		RefType string `json:"ref_type"`
		Commits []struct {
			Message string `json:"message"`
		} `json:"commits"`
	} `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func (p eventPayload) normalize() model.Event {
	return model.Event{
		ID:        p.ID,
		Type:      p.Type,
		Actor:     p.Actor.Login,
		Repo:      p.Repo.Name,
		Summary:   p.summary(),
		CreatedAt: p.CreatedAt,
	}
}

func (p eventPayload) summary() string {
	switch p.Type {
	case "PushEvent":
		n := len(p.Payload.Commits)
		if n == 1 {
			return "pushed 1 commit"
		}
		return fmt.Sprintf("pushed %d commits", n)
	case "PullRequestEvent":
		return p.Payload.Action + " a pull request"
	case "IssuesEvent":
		return p.Payload.Action + " an issue"
	case "IssueCommentEvent":
		return "commented on an issue"
	case "WatchEvent":
		return "starred the repository"
	case "ForkEvent":
		return "forked the repository"
	case "CreateEvent":
		if p.Payload.RefType != "" {
			return "created " + p.Payload.RefType
		}
		return "created"
	default:
		return ""
	}
}

// RecentActivity lists a user's recent public events, or the global
// feed when user is empty. Listing contract: failures degrade to empty.
func (c *Client) RecentActivity(ctx context.Context, user string, limit int) []model.Event {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	endpoint := fmt.Sprintf("events?per_page=%d", limit)
	if user != "" {
		endpoint = fmt.Sprintf("users/%s/events/public?per_page=%d", user, limit)
	}
	payloads, err := fetchJSON[[]eventPayload](ctx, c, endpoint, RequestOptions{Authenticated: true})
	if err != nil {
		log.Debug("activity listing failed", "user", user, "error", err)
		return []model.Event{}
	}
	events := make([]model.Event, 0, len(payloads))
	for _, p := range payloads {
		events = append(events, p.normalize())
	}
	return events
}
