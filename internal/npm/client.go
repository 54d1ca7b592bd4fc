package npm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultTimeout bounds a single registry request.
const DefaultTimeout = 30 * time.Second

// Client reads package metadata from an npm registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a registry client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type packageDocument struct {
	DistTags map[string]string `json:"dist-tags"`
}

// Latest returns the version tagged "latest" for the package.
func (c *Client) Latest(ctx context.Context, name string) (string, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, "building registry request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "querying registry for %s", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errors.WithDetail(
			errors.Newf("registry returned %s for %s", resp.Status, name),
			strings.TrimSpace(string(body)),
		)
	}

	var doc packageDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", errors.Wrapf(err, "decoding registry document for %s", name)
	}

	latest := doc.DistTags["latest"]
	if latest == "" {
		return "", errors.Newf("package %s has no latest version", name)
	}
	return latest, nil
}
