// SPDX-License-Identifier: MPL-2.0

package modrinth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.modrinth.com"

	// DefaultSearchLimit is the number of hits requested per search.
	DefaultSearchLimit = 10

	// maxJSONResponseBytes is the upper bound on JSON API response size (10 MB).
	maxJSONResponseBytes = 10 << 20
)

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("project not found")

type (
	// RateLimitError is returned when Modrinth answers 429 Too Many Requests.
	RateLimitError struct {
		Limit   int
		ResetIn time.Duration
	}

	// StatusError reports an unexpected HTTP status.
	StatusError struct {
		Op         string
		StatusCode int
	}

	// VersionFilter narrows a version listing server-side. Empty fields match
	// everything.
	VersionFilter struct {
		GameVersion string
		Loader      string
	}

	// Client queries the Modrinth API.
	Client struct {
		httpClient *http.Client
		baseURL    string // API base URL without the /v2 suffix
		userAgent  string // Modrinth asks every client to identify itself
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// Error formats the rate limit details as a human-readable message.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Modrinth API rate limit exceeded (limit %d/min, resets in %s)", e.Limit, e.ResetIn)
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(m *Client) {
		m.httpClient = c
	}
}

// WithBaseURL overrides the API base URL, primarily for test servers.
func WithBaseURL(base string) ClientOption {
	return func(m *Client) {
		m.baseURL = strings.TrimRight(base, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(m *Client) {
		m.userAgent = ua
	}
}

// WithTimeout bounds every request, including downloads.
func WithTimeout(d time.Duration) ClientOption {
	return func(m *Client) {
		m.httpClient = &http.Client{Timeout: d, Transport: m.httpClient.Transport}
	}
}

// NewClient creates a Client. Defaults: baseURL=DefaultBaseURL,
// userAgent="modify/dev", httpClient=http.DefaultClient.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		userAgent:  "modify/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a full-text project search. limit <= 0 uses DefaultSearchLimit.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(limit))

	var sr searchResponse
	if err := c.getJSON(ctx, "searching projects", "/v2/search?"+q.Encode(), &sr); err != nil {
		return nil, err
	}
	return sr.Hits, nil
}

// Project fetches a project by slug or ID. Returns ErrNotFound for unknown
// projects.
func (c *Client) Project(ctx context.Context, idOrSlug string) (*Project, error) {
	var p Project
	if err := c.getJSON(ctx, "getting project "+idOrSlug, "/v2/project/"+url.PathEscape(idOrSlug), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Versions lists a project's versions, newest first as returned by the API.
func (c *Client) Versions(ctx context.Context, idOrSlug string, filter VersionFilter) ([]Version, error) {
	q := url.Values{}
	if filter.GameVersion != "" {
		q.Set("game_versions", jsonArray(filter.GameVersion))
	}
	if filter.Loader != "" {
		q.Set("loaders", jsonArray(filter.Loader))
	}

	path := "/v2/project/" + url.PathEscape(idOrSlug) + "/version"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var versions []Version
	if err := c.getJSON(ctx, "listing versions of "+idOrSlug, path, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// Download streams the file at fileURL. The caller closes the returned body.
func (c *Client) Download(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	op := "downloading " + redactURL(fileURL)

	resp, err := c.doRequest(ctx, http.MethodGet, fileURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkResponse(op, resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, dst any) error {
	resp, err := c.doRequest(ctx, http.MethodGet, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if err := checkResponse(op, resp); err != nil {
		return err
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

// doRequest creates and executes an HTTP request with the common API headers.
func (c *Client) doRequest(ctx context.Context, method, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

func checkResponse(op string, resp *http.Response) error {
	if err := checkRateLimit(resp); err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}
}

// checkRateLimit maps a 429 to a RateLimitError using the X-Ratelimit-*
// headers. A successful response that used up the quota only logs a warning.
func checkRateLimit(resp *http.Response) error {
	limit, _ := strconv.Atoi(resp.Header.Get("X-Ratelimit-Limit"))        //nolint:errcheck // Best-effort header parsing.
	resetSecs, _ := strconv.Atoi(resp.Header.Get("X-Ratelimit-Reset"))    //nolint:errcheck // Best-effort header parsing.
	remaining, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Remaining"))
	resetIn := time.Duration(resetSecs) * time.Second

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{Limit: limit, ResetIn: resetIn}
	}

	if err == nil && remaining == 0 {
		slog.Warn("Modrinth rate limit reached", "limit", limit, "reset_in", resetIn)
	}
	return nil
}

func jsonArray(v string) string {
	b, _ := json.Marshal([]string{v}) //nolint:errcheck // a []string always marshals.
	return string(b)
}

// redactURL strips query parameters and fragments from a URL for safe inclusion
// in error messages.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
