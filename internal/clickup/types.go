package clickup

import "fmt"

// ClickUpError represents an error that occurred during ClickUp API operations
type ClickUpError struct {
	// Op is the operation that failed (e.g., "get", "createTask", "search")
	Op string

	// StatusCode is the HTTP status returned by the API, or 0 for
	// transport-level failures
	StatusCode int

	// ECode is the machine-readable error code from the ClickUp error body
	// (e.g., "OAUTH_027"), if the API provided one
	ECode string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *ClickUpError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("clickup %s (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("clickup %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ClickUpError) Unwrap() error {
	return e.Err
}

// Transient reports whether the error is a transport-level failure rather
// than a response the API produced.
func (e *ClickUpError) Transient() bool {
	return e.StatusCode == 0
}

// User represents the authenticated ClickUp user
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Color    string `json:"color,omitempty"`
}

// Team represents a ClickUp workspace (the API still calls these teams)
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color,omitempty"`
	Members []Member `json:"members,omitempty"`
}

// Member represents a workspace member
type Member struct {
	User User `json:"user"`
}

// Space represents a ClickUp space within a workspace
type Space struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Private bool   `json:"private,omitempty"`
}

// Folder represents a ClickUp folder within a space
type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Lists []List `json:"lists,omitempty"`
}

// List represents a ClickUp list that contains tasks
type List struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TaskCount int    `json:"task_count,omitempty"`
}

// TaskStatus is the status object ClickUp attaches to tasks
type TaskStatus struct {
	Status string `json:"status"`
	Color  string `json:"color,omitempty"`
	Type   string `json:"type,omitempty"`
}

// TaskPriority is the priority object ClickUp attaches to tasks.
// Priority values range from 1 (urgent) to 4 (low).
type TaskPriority struct {
	ID       string `json:"id,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// Task represents a ClickUp task
type Task struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	DueDate     string        `json:"due_date,omitempty"`
	URL         string        `json:"url,omitempty"`
	List        *List         `json:"list,omitempty"`
	Assignees   []User        `json:"assignees,omitempty"`
}

// Comment represents a task comment
type Comment struct {
	ID          string `json:"id"`
	CommentText string `json:"comment_text"`
	User        *User  `json:"user,omitempty"`
	Date        string `json:"date,omitempty"`
}

// SpaceNode is one space in an assembled workspace hierarchy
type SpaceNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Lists []List `json:"lists"`
}

// Hierarchy is the assembled workspace structure: the workspace itself plus
// every space and the lists each space contains
type Hierarchy struct {
	Workspace Team        `json:"workspace"`
	Spaces    []SpaceNode `json:"spaces"`
}

// SearchResults holds the matches of a workspace-wide name search
type SearchResults struct {
	Tasks  []Task  `json:"tasks"`
	Lists  []List  `json:"lists"`
	Spaces []Space `json:"spaces"`
}

// TaskFilter narrows WorkspaceTasks to a list, space or assignee.
// Zero values mean no filtering on that dimension.
type TaskFilter struct {
	ListID   string
	SpaceID  string
	Assignee string
}

// Wire envelopes the API wraps collection responses in.

type teamsResponse struct {
	Teams []Team `json:"teams"`
}

type spacesResponse struct {
	Spaces []Space `json:"spaces"`
}

type foldersResponse struct {
	Folders []Folder `json:"folders"`
}

type listsResponse struct {
	Lists []List `json:"lists"`
}

type tasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type commentsResponse struct {
	Comments []Comment `json:"comments"`
}

type userResponse struct {
	User User `json:"user"`
}

type teamResponse struct {
	Team Team `json:"team"`
}

// apiErrorBody is the error shape ClickUp returns on non-2xx responses,
// e.g. {"err": "Team not found", "ECODE": "TEAM_001"}
type apiErrorBody struct {
	Err   string `json:"err"`
	ECode string `json:"ECODE"`
}
