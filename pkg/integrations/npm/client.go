package npm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/goodfirst/pkg/cache"
	"github.com/matzehuels/goodfirst/pkg/integrations"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org"

// Metadata is the part of a package's registry document that goodfirst
// consumes: the version the "latest" dist-tag points at and that
// version's repository field.
type Metadata struct {
	Name       string      `json:"name"`
	Latest     string      `json:"latest"`
	Repository *Repository `json:"repository,omitempty"`
}

// Repository is the repository field of a published version. URL is kept
// exactly as published (e.g. "git+https://github.com/axios/axios.git").
type Repository struct {
	Type      string `json:"type,omitempty"`
	URL       string `json:"url,omitempty"`
	Directory string `json:"directory,omitempty"`
}

// Client fetches package documents from an npm-compatible registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a registry client caching metadata in c for ttl.
// Pass nil for c to disable caching.
func NewClient(c cache.Cache, ttl time.Duration) *Client {
	// "application/json" selects the full document; the abbreviated
	// install document (application/vnd.npm.install-v1+json) has no
	// repository field.
	headers := map[string]string{"Accept": "application/json"}
	return &Client{
		Client:  integrations.NewClient(c, "npm:", ttl, headers),
		baseURL: DefaultRegistryURL,
	}
}

// SetBaseURL points the client at another registry (a mirror or a test server).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// FetchMetadata returns the latest-version metadata of pkg.
// If refresh is true, cached data is bypassed.
func (c *Client) FetchMetadata(ctx context.Context, pkg string, refresh bool) (*Metadata, error) {
	pkg = strings.TrimSpace(pkg)

	var m Metadata
	err := c.Cached(ctx, pkg, refresh, &m, func() error {
		return c.fetch(ctx, pkg, &m)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, m *Metadata) error {
	var data registryResponse
	// Scoped names are requested as @scope%2Fname.
	if err := c.Get(ctx, c.baseURL+"/"+url.PathEscape(pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}

	latest := data.DistTags.Latest
	v, ok := data.Versions[latest]
	if latest == "" || !ok {
		return fmt.Errorf("%w: npm package %s has no latest version", integrations.ErrNotFound, pkg)
	}

	*m = Metadata{
		Name:       data.Name,
		Latest:     latest,
		Repository: parseRepository(v.Repository),
	}
	return nil
}

// parseRepository accepts both published shapes: an object with a url
// field, or a bare string.
func parseRepository(v any) *Repository {
	switch val := v.(type) {
	case string:
		return &Repository{URL: val}
	case map[string]any:
		r := &Repository{}
		r.Type, _ = val["type"].(string)
		r.URL, _ = val["url"].(string)
		r.Directory, _ = val["directory"].(string)
		return r
	}
	return nil
}

type registryResponse struct {
	Name     string                    `json:"name"`
	DistTags distTags                  `json:"dist-tags"`
	Versions map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Repository any `json:"repository"`
}
