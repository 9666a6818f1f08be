// Package media resolves external playable-media references. A share URL
// maps to a media id by prefix stripping; the stable file name comes from
// scraping the structured-data block of the host's watch page.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/obs"
)

const (
	// DefaultShareBase is the prefix every share URL must carry.
	DefaultShareBase = "https://open.lbry.com/"
	// DefaultWatchBase is the host serving the watch pages.
	DefaultWatchBase = "https://odysee.com/"

	maxPageBytes = 4 << 20
)

// ldJSONPattern extracts the structured-data block from a watch page.
var ldJSONPattern = regexp.MustCompile(`(?s)<script type="application/ld\+json">(.*?)</script>`)

// Client resolves media ids against the external host.
type Client struct {
	httpClient *http.Client
	shareBase  string
	watchBase  string
}

// Option tweaks a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBases overrides the share and watch base URLs.
func WithBases(shareBase, watchBase string) Option {
	return func(c *Client) {
		c.shareBase = shareBase
		c.watchBase = watchBase
	}
}

// NewClient builds a Client with the production defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		shareBase:  DefaultShareBase,
		watchBase:  DefaultWatchBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MediaID derives the media id from a share URL. The derivation is pure
// string work; no network call happens here.
func (c *Client) MediaID(url string) (string, error) {
	id, ok := strings.CutPrefix(url, c.shareBase)
	if !ok || id == "" {
		return "", apperrors.New(apperrors.KindInvalidData, "media URL is invalid")
	}
	return id, nil
}

// FileName fetches the watch page for a media id and extracts the file name
// from its contentUrl. Failures are reported as unknown errors so the
// external host's details never leak to callers.
func (c *Client) FileName(ctx context.Context, mediaID string) (string, error) {
	name, err := c.fileName(ctx, mediaID)
	if err != nil {
		obs.ObserveMediaLookup("error")
		return "", apperrors.Wrap(apperrors.KindUnknown, "media lookup failed", err)
	}
	obs.ObserveMediaLookup("ok")
	return name, nil
}

func (c *Client) fileName(ctx context.Context, mediaID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.watchBase+mediaID, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}

	match := ldJSONPattern.FindSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("watch page has no structured data block")
	}
	var data struct {
		ContentURL string `json:"contentUrl"`
	}
	if err := json.Unmarshal(match[1], &data); err != nil {
		return "", fmt.Errorf("decode structured data: %w", err)
	}
	if data.ContentURL == "" {
		return "", fmt.Errorf("structured data has no contentUrl")
	}
	return data.ContentURL, nil
}
