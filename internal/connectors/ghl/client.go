package ghl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the LeadConnector services host.
	DefaultBaseURL = "https://services.leadconnectorhq.com"

	apiVersion = "2021-07-28"
)

// APIError is the uniform classification of any non-2xx response or
// transport failure. The client never retries; retry policy belongs to
// the caller.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("ghl: request failed: %s", e.Body)
	}
	return fmt.Sprintf("ghl: unexpected status %d: %s", e.Status, e.Body)
}

// Client issues authenticated read requests against the GHL API.
// It is scoped to a single sync run and a single access token.
type Client struct {
	http      *http.Client
	baseURL   string
	token     string
	pageDelay time.Duration
}

// NewClient builds a client for one access token. pageDelay is the pause
// inserted between successive page fetches within one collection.
func NewClient(baseURL, token string, pageDelay time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   baseURL,
		token:     token,
		pageDelay: pageDelay,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{Body: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Status: resp.StatusCode, Body: fmt.Sprintf("decode: %v", err)}
	}
	return nil
}

// getPaged fetches one page, pausing first for every page after the initial one.
func (c *Client) getPaged(ctx context.Context, path string, query url.Values, page int, out any) error {
	if page > 0 && c.pageDelay > 0 {
		time.Sleep(c.pageDelay)
	}
	return c.get(ctx, path, query, out)
}

// ListPipelines fetches the full pipeline listing for a location.
func (c *Client) ListPipelines(ctx context.Context, locationID string) (*PipelineList, error) {
	q := url.Values{}
	q.Set("locationId", locationID)

	var list PipelineList
	if err := c.get(ctx, "/opportunities/pipelines", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetUser fetches a single user profile.
func (c *Client) GetUser(ctx context.Context, userID string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.get(ctx, "/users/"+userID, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SearchOpportunities fetches one page of opportunities for a pipeline.
func (c *Client) SearchOpportunities(ctx context.Context, locationID, pipelineID string, limit int, cur Cursor, page int) (*OpportunityPage, error) {
	q := url.Values{}
	q.Set("location_id", locationID)
	q.Set("pipeline_id", pipelineID)
	q.Set("limit", strconv.Itoa(limit))
	cur.apply(q)

	var p OpportunityPage
	if err := c.getPaged(ctx, "/opportunities/search", q, page, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListContacts fetches one page of contacts for a location.
func (c *Client) ListContacts(ctx context.Context, locationID string, limit int, cur Cursor, page int) (*ContactPage, error) {
	q := url.Values{}
	q.Set("locationId", locationID)
	q.Set("limit", strconv.Itoa(limit))
	cur.apply(q)

	var p ContactPage
	if err := c.getPaged(ctx, "/contacts/", q, page, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
