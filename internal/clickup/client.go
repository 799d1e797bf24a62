package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the ClickUp API v2 endpoint.
const DefaultBaseURL = "https://api.clickup.com/api/v2"

// DefaultTimeout bounds every outbound API call.
const DefaultTimeout = 30 * time.Second

// Config holds the immutable settings for a Client. It is sourced once at
// process start and never mutated afterwards.
type Config struct {
	// Token is the ClickUp personal API token sent in the Authorization header
	Token string

	// BaseURL overrides the API endpoint, mainly for tests (default: DefaultBaseURL)
	BaseURL string

	// HTTPClient overrides the underlying HTTP client (default: 30s timeout)
	HTTPClient *http.Client
}

// Client provides access to the ClickUp REST API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new ClickUp client from the given configuration
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
	}
}

// BaseURL returns the API endpoint this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues one HTTP request and returns the raw response body.
// Non-2xx responses and transport failures are both reported as
// *ClickUpError; the caller can distinguish them via StatusCode.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &ClickUpError{Op: method, Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, &ClickUpError{Op: method, Err: err}
	}
	req.Header.Set("Authorization", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClickUpError{Op: method, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClickUpError{Op: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// ClickUp error bodies carry {"err": ..., "ECODE": ...}; fall back
		// to the status line when the body is not parseable JSON.
		var apiErr apiErrorBody
		if jsonErr := json.Unmarshal(data, &apiErr); jsonErr == nil && apiErr.Err != "" {
			return nil, &ClickUpError{Op: method, StatusCode: resp.StatusCode, ECode: apiErr.ECode, Err: fmt.Errorf("%s", apiErr.Err)}
		}
		return nil, &ClickUpError{Op: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", resp.Status)}
	}

	return data, nil
}

// Call issues a single API request with an arbitrary HTTP method.
// A nil body sends no payload. This is the entry point the dispatch
// package uses; typed helpers below are built on the same path.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	return c.do(ctx, method, endpoint, body)
}

// Get issues a GET request to the given endpoint
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// Post issues a POST request with a JSON body to the given endpoint
func (c *Client) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, endpoint, body)
}

// Put issues a PUT request with a JSON body to the given endpoint
func (c *Client) Put(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, endpoint, body)
}

// Delete issues a DELETE request to the given endpoint
func (c *Client) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

// getInto issues a GET request and decodes the response into out
func (c *Client) getInto(ctx context.Context, op, endpoint string, out any) error {
	data, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ClickUpError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// AuthorizedUser returns the user the API token belongs to
func (c *Client) AuthorizedUser(ctx context.Context) (*User, error) {
	var resp userResponse
	if err := c.getInto(ctx, "authorizedUser", "user", &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Teams returns all workspaces the token has access to
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var resp teamsResponse
	if err := c.getInto(ctx, "teams", "team", &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// Team returns one workspace including its member roster
func (c *Client) Team(ctx context.Context, teamID string) (*Team, error) {
	var resp teamResponse
	if err := c.getInto(ctx, "team", "team/"+teamID, &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

// Spaces returns the non-archived spaces of a workspace
func (c *Client) Spaces(ctx context.Context, teamID string) ([]Space, error) {
	var resp spacesResponse
	if err := c.getInto(ctx, "spaces", fmt.Sprintf("team/%s/space?archived=false", teamID), &resp); err != nil {
		return nil, err
	}
	return resp.Spaces, nil
}

// Folders returns the folders of a space
func (c *Client) Folders(ctx context.Context, spaceID string) ([]Folder, error) {
	var resp foldersResponse
	if err := c.getInto(ctx, "folders", fmt.Sprintf("space/%s/folder?archived=false", spaceID), &resp); err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

// SpaceLists returns the folderless lists of a space
func (c *Client) SpaceLists(ctx context.Context, spaceID string) ([]List, error) {
	var resp listsResponse
	if err := c.getInto(ctx, "spaceLists", fmt.Sprintf("space/%s/list?archived=false", spaceID), &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

// FolderLists returns the lists inside a folder
func (c *Client) FolderLists(ctx context.Context, folderID string) ([]List, error) {
	var resp listsResponse
	if err := c.getInto(ctx, "folderLists", fmt.Sprintf("folder/%s/list?archived=false", folderID), &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

// ListTasks returns the non-archived tasks of a list
func (c *Client) ListTasks(ctx context.Context, listID string) ([]Task, error) {
	var resp tasksResponse
	if err := c.getInto(ctx, "listTasks", fmt.Sprintf("list/%s/task?archived=false", listID), &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// TaskComments returns the comments of a task
func (c *Client) TaskComments(ctx context.Context, taskID string) ([]Comment, error) {
	var resp commentsResponse
	if err := c.getInto(ctx, "taskComments", fmt.Sprintf("task/%s/comment", taskID), &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}
