package smartsheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// APIBaseURL is the Smartsheet REST API endpoint
	APIBaseURL = "https://api.smartsheet.com/2.0"
)

// Client is a Smartsheet REST API client
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Smartsheet API client
func NewClient(token string) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: APIBaseURL,
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint.
// Used by tests to point at a local server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// get executes a GET request and unmarshals the response into result
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr.Message = string(body)
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

// GetWorkspace returns a workspace with its directly contained sheets and
// folder references
func (c *Client) GetWorkspace(ctx context.Context, id int64) (*Workspace, error) {
	var ws Workspace
	q := url.Values{"loadAll": {"true"}}
	if err := c.get(ctx, fmt.Sprintf("/workspaces/%d", id), q, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// GetFolder returns a folder with its directly contained sheets and folder
// references. Folder stubs inside container listings are empty; this is the
// call that reveals their contents.
func (c *Client) GetFolder(ctx context.Context, id int64) (*Folder, error) {
	var f Folder
	if err := c.get(ctx, fmt.Sprintf("/folders/%d", id), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetSheet returns a full sheet: columns, rows, cell values and row
// permalinks. includeAll avoids paging through row batches.
func (c *Client) GetSheet(ctx context.Context, id int64) (*Sheet, error) {
	var s Sheet
	q := url.Values{
		"include":    {"rowPermalink"},
		"includeAll": {"true"},
	}
	if err := c.get(ctx, fmt.Sprintf("/sheets/%d", id), q, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// IsAuthenticated checks if the token is valid by fetching the current user
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	err := c.get(ctx, "/users/me", nil, nil)
	return err == nil
}
