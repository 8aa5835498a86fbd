package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://api.resend.com"

	// MaxPageSize is the provider's hard cap on list page sizes.
	MaxPageSize = 100

	// DefaultListLimit applies when a bounded list op has no explicit limit.
	DefaultListLimit = 50

	// ReturnAllTarget bounds "return all" fetches.
	ReturnAllTarget = 1000

	// DefaultPageDelay keeps sequential page requests under the provider's
	// requests-per-second ceiling. Applied between pages, not before the
	// first one.
	DefaultPageDelay = time.Second
)

// Doer is the transport seam; tests swap in httptest clients.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is one provider endpoint call, built from resolved node
// parameters. Body is JSON-marshalled when non-nil.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers http.Header
}

// APIError is a non-2xx response from the provider, propagated to the
// caller as-is.
type APIError struct {
	StatusCode int
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("resend api error (%d %s): %s", e.StatusCode, e.Name, e.Message)
	}

	return fmt.Sprintf("resend api error (%d)", e.StatusCode)
}

type Client struct {
	baseURL   string
	apiKey    string
	http      Doer
	pageDelay time.Duration
	logger    zerolog.Logger
}

type ClientOptions struct {
	BaseURL   string
	APIKey    string
	Doer      Doer
	PageDelay *time.Duration
	Logger    zerolog.Logger
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	doer := opts.Doer
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	pageDelay := DefaultPageDelay
	if opts.PageDelay != nil {
		pageDelay = *opts.PageDelay
	}

	return &Client{
		baseURL:   baseURL,
		apiKey:    opts.APIKey,
		http:      doer,
		pageDelay: pageDelay,
		logger:    opts.Logger,
	}
}

// Do executes one request descriptor and decodes the JSON response into out
// when out is non-nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var body io.Reader

	if req.Body != nil {
		bodyJSON, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		body = bytes.NewReader(bodyJSON)
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request to %s %s failed: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		// Error bodies that do not parse still surface the status code.
		_ = json.Unmarshal(respBody, apiErr)

		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type listPage struct {
	Data    []map[string]any `json:"data"`
	HasMore bool             `json:"has_more"`
}

// FetchAll walks a cursor-paginated list endpoint until the target size is
// reached or the server runs out of pages. The cursor is the id of the last
// item of the previous page, sent as the `after` query parameter. An error
// from any page aborts the listing; partial results are discarded.
func (c *Client) FetchAll(ctx context.Context, path string, query url.Values, returnAll bool, limit int) ([]map[string]any, error) {
	target := ReturnAllTarget
	if !returnAll {
		target = limit
		if target <= 0 {
			target = DefaultListLimit
		}
	}

	pageSize := target
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	items := make([]map[string]any, 0, pageSize)
	cursor := ""

	for {
		if len(items) > 0 {
			// Client-side throttle between pages, not a reaction to the
			// provider rate limiting us.
			time.Sleep(c.pageDelay)
		}

		pageQuery := url.Values{}
		for key, values := range query {
			pageQuery[key] = values
		}

		pageQuery.Set("limit", strconv.Itoa(pageSize))

		if cursor != "" {
			pageQuery.Set("after", cursor)
		}

		var page listPage

		err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: pageQuery}, &page)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Data...)

		if len(items) >= target {
			return items[:target], nil
		}

		if !page.HasMore || len(page.Data) == 0 {
			return items, nil
		}

		lastID, ok := page.Data[len(page.Data)-1]["id"].(string)
		if !ok || lastID == "" {
			// Malformed page with no usable cursor; stop rather than loop
			// on the same page forever.
			c.logger.Warn().Str("path", path).Msg("list page has no cursor id, stopping pagination")

			return items, nil
		}

		cursor = lastID
	}
}
