package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/VimVoyager/opentube-frontend/internal/metrics"
)

// ErrNotFound reports that the backend has no stream for the requested ID.
var ErrNotFound = errors.New("api: stream not found")

const defaultTimeout = 10 * time.Second

// Client talks to the OpenTube backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Details fetches the full stream payload for a video.
func (c *Client) Details(ctx context.Context, videoID string) (*StreamDetails, error) {
	var out StreamDetails
	if err := c.getJSON(ctx, "/streams/details", videoQuery(videoID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Related fetches the related-stream previews for a video.
func (c *Client) Related(ctx context.Context, videoID string) ([]RelatedStream, error) {
	var out []RelatedStream
	if err := c.getJSON(ctx, "/streams/related", videoQuery(videoID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subtitles fetches the subtitle track descriptors for a video.
func (c *Client) Subtitles(ctx context.Context, videoID string) ([]Subtitle, error) {
	var out []Subtitle
	if err := c.getJSON(ctx, "/streams/subtitles", videoQuery(videoID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Thumbnails fetches the storyboard descriptors for a video.
func (c *Client) Thumbnails(ctx context.Context, videoID string) ([]PreviewFrames, error) {
	var out []PreviewFrames
	if err := c.getJSON(ctx, "/streams/thumbnails", videoQuery(videoID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search runs a search query. filter and page are optional.
func (c *Client) Search(ctx context.Context, query, filter, page string) (*SearchPage, error) {
	q := url.Values{}
	q.Set("query", query)
	if filter != "" {
		q.Set("filter", filter)
	}
	if page != "" {
		q.Set("page", page)
	}

	var out SearchPage
	if err := c.getJSON(ctx, "/streams/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashManifest fetches the upstream-provided MPD document for a video.
// The backend serves these pre-generated for livestreams and OTF streams.
func (c *Client) DashManifest(ctx context.Context, videoID string) ([]byte, error) {
	endpoint := "/streams/dash"
	metrics.UpstreamRequest(endpoint)

	resp, err := c.get(ctx, endpoint, videoQuery(videoID), "application/dash+xml, application/xml")
	if err != nil {
		metrics.UpstreamError(endpoint)
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, endpoint); err != nil {
		metrics.UpstreamError(endpoint)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		metrics.UpstreamError(endpoint)
		return nil, fmt.Errorf("api: read %s response: %w", endpoint, err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, out any) error {
	metrics.UpstreamRequest(endpoint)

	resp, err := c.get(ctx, endpoint, q, "application/json")
	if err != nil {
		metrics.UpstreamError(endpoint)
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, endpoint); err != nil {
		metrics.UpstreamError(endpoint)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamError(endpoint)
		return fmt.Errorf("api: decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, accept string) (*http.Response, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, err
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s: %w", endpoint, err)
	}
	return resp, nil
}

func (c *Client) checkStatus(resp *http.Response, endpoint string) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		return fmt.Errorf("api: %s: unexpected status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func videoQuery(videoID string) url.Values {
	q := url.Values{}
	q.Set("videoId", videoID)
	return q
}
