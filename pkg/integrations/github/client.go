package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/goodfirst/pkg/cache"
	"github.com/matzehuels/goodfirst/pkg/integrations"
)

// DefaultAPIURL is the public GitHub REST API.
const DefaultAPIURL = "https://api.github.com"

// Client provides access to the GitHub issues API.
// It handles HTTP requests with caching and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower
// rate limits), and nil for c to disable caching.
func NewClient(token string, c cache.Cache, ttl time.Duration) *Client {
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:  integrations.NewClient(c, "github:", ttl, headers),
		baseURL: DefaultAPIURL,
	}
}

// SetBaseURL points the client at another API root (GitHub Enterprise or a test server).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// ListIssues returns the first page of issues of owner/repo matching q,
// in the API's order. If refresh is true, cached data is bypassed.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, q IssueQuery, refresh bool) ([]Issue, error) {
	q = q.withDefaults()
	key := cache.Key("issues", owner+"/"+repo, q.encode())

	var issues []Issue
	err := c.Cached(ctx, key, refresh, &issues, func() error {
		return c.fetchIssues(ctx, owner, repo, q, &issues)
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *Client) fetchIssues(ctx context.Context, owner, repo string, q IssueQuery, out *[]Issue) error {
	u := fmt.Sprintf("%s/repos/%s/%s/issues?%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), q.encode())

	issues := []Issue{}
	if err := c.Get(ctx, u, &issues); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: github repo %s/%s", err, owner, repo)
		}
		return err
	}
	*out = issues
	return nil
}

// IssueQuery selects issues of a repository.
type IssueQuery struct {
	Labels  []string // all labels must match
	State   string   // "open" (default), "closed" or "all"
	PerPage int      // page size, default 30
}

func (q IssueQuery) withDefaults() IssueQuery {
	if q.State == "" {
		q.State = "open"
	}
	if q.PerPage <= 0 {
		q.PerPage = 30
	}
	return q
}

func (q IssueQuery) encode() string {
	v := url.Values{}
	if len(q.Labels) > 0 {
		v.Set("labels", strings.Join(q.Labels, ","))
	}
	v.Set("state", q.State)
	v.Set("per_page", strconv.Itoa(q.PerPage))
	return v.Encode()
}
