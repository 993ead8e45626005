// Package drata is a minimal client for the Drata public API v2
// risk-register endpoints.
//
// The client fetches one page at a time; the pagination loop lives in
// internal/core, which owns the cursor and the safety bounds. Requests are
// authenticated with a bearer token supplied per call (the token is
// pass-through: it may come from a request header or from configuration,
// but the client never looks it up itself).
package drata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxBodyBytes caps how much of an upstream response body is read.
// Error bodies are preserved for the caller; 1MB is far beyond anything
// the API returns for a single page.
const maxBodyBytes = 1 << 20

// Page is one page of the upstream risks listing.
type Page struct {
	Data       []map[string]any `json:"data"`
	Pagination struct {
		Cursor string `json:"cursor"`
	} `json:"pagination"`
}

// UpstreamError is a non-success HTTP response from the Drata API.
// Status and the raw body are preserved so the dashboard can surface
// the upstream failure verbatim.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d", e.Status)
}

// Client talks to the Drata public API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given API root, e.g.
// "https://public-api.drata.com/public/v2". The timeout bounds a single
// page request; there are no retries.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchRiskPage requests one page of risks from a register.
//
// cursor is the opaque pagination token from the previous page; pass ""
// for the first page. size requests a page size (1..50); pass 0 to let
// the API choose. The customFields expansion is always requested.
//
// A non-2xx response returns *UpstreamError with the status and body.
func (c *Client) FetchRiskPage(ctx context.Context, registerID, token, cursor string, size int) (*Page, error) {
	u, err := c.risksURL(registerID, cursor, size)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building risks request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching risks page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading risks page: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding risks page: %w", err)
	}
	return &page, nil
}

// risksURL builds the risks listing URL for a register.
// The expand[] array parameter is fixed: custom fields are always wanted.
func (c *Client) risksURL(registerID, cursor string, size int) (string, error) {
	if registerID == "" {
		return "", fmt.Errorf("risk register id is empty")
	}

	u, err := url.Parse(c.baseURL + "/risk-registers/" + url.PathEscape(registerID) + "/risks")
	if err != nil {
		return "", fmt.Errorf("parsing risks URL: %w", err)
	}

	q := u.Query()
	q.Add("expand[]", "customFields")
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
