package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient returns a client pointed at a stub API handler
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{Token: "pk_test_token", BaseURL: srv.URL})
}

func TestClientSendsAuthorizationHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"user": {"id": 1, "username": "jane"}}`))
	})

	user, err := client.AuthorizedUser(context.Background())
	if err != nil {
		t.Fatalf("AuthorizedUser() unexpected error = %v", err)
	}
	if gotAuth != "pk_test_token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "pk_test_token")
	}
	if user.Username != "jane" {
		t.Errorf("Username = %q, want %q", user.Username, "jane")
	}
}

func TestClientParsesAPIErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"err": "Token invalid", "ECODE": "OAUTH_027"}`))
	})

	_, err := client.Teams(context.Background())
	if err == nil {
		t.Fatal("Teams() expected error, got nil")
	}

	var cuErr *ClickUpError
	if !errors.As(err, &cuErr) {
		t.Fatalf("error type = %T, want *ClickUpError", err)
	}
	if cuErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", cuErr.StatusCode, http.StatusUnauthorized)
	}
	if cuErr.ECode != "OAUTH_027" {
		t.Errorf("ECode = %q, want %q", cuErr.ECode, "OAUTH_027")
	}
	if !strings.Contains(cuErr.Error(), "Token invalid") {
		t.Errorf("Error() = %q, want it to contain %q", cuErr.Error(), "Token invalid")
	}
	if cuErr.Transient() {
		t.Error("Transient() = true for an API-level error, want false")
	}
}

func TestClientFallsBackToStatusLine(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.Get(context.Background(), "task/abc")
	var cuErr *ClickUpError
	if !errors.As(err, &cuErr) {
		t.Fatalf("error type = %T, want *ClickUpError", err)
	}
	if cuErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want %d", cuErr.StatusCode, http.StatusBadGateway)
	}
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := NewClient(Config{Token: "t", BaseURL: srv.URL})

	_, err := client.Get(context.Background(), "user")
	var cuErr *ClickUpError
	if !errors.As(err, &cuErr) {
		t.Fatalf("error type = %T, want *ClickUpError", err)
	}
	if !cuErr.Transient() {
		t.Error("Transient() = false for a connection failure, want true")
	}
}

func TestWorkspaceHierarchy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/team":
			_, _ = w.Write([]byte(`{"teams": [{"id": "9001", "name": "Acme"}]}`))
		case r.URL.Path == "/team/9001/space":
			_, _ = w.Write([]byte(`{"spaces": [{"id": "s1", "name": "Engineering"}]}`))
		case r.URL.Path == "/space/s1/list":
			_, _ = w.Write([]byte(`{"lists": [{"id": "l1", "name": "Sprint 12"}]}`))
		case r.URL.Path == "/space/s1/folder":
			_, _ = w.Write([]byte(`{"folders": [{"id": "f1", "name": "Backlog", "lists": [{"id": "l2", "name": "Icebox"}]}]}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	hierarchy, err := client.WorkspaceHierarchy(context.Background())
	if err != nil {
		t.Fatalf("WorkspaceHierarchy() unexpected error = %v", err)
	}
	if hierarchy.Workspace.Name != "Acme" {
		t.Errorf("Workspace.Name = %q, want %q", hierarchy.Workspace.Name, "Acme")
	}
	if len(hierarchy.Spaces) != 1 {
		t.Fatalf("len(Spaces) = %d, want 1", len(hierarchy.Spaces))
	}
	// Folderless list plus the foldered one, flattened
	if len(hierarchy.Spaces[0].Lists) != 2 {
		t.Errorf("len(Spaces[0].Lists) = %d, want 2", len(hierarchy.Spaces[0].Lists))
	}
}

func TestSearchWorkspaceMatchesCaseInsensitive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/team":
			_, _ = w.Write([]byte(`{"teams": [{"id": "9001", "name": "Acme"}]}`))
		case r.URL.Path == "/team/9001/space":
			_, _ = w.Write([]byte(`{"spaces": [{"id": "s1", "name": "Engineering"}]}`))
		case r.URL.Path == "/space/s1/list":
			_, _ = w.Write([]byte(`{"lists": [{"id": "l1", "name": "Deploy Checklist"}]}`))
		case r.URL.Path == "/space/s1/folder":
			_, _ = w.Write([]byte(`{"folders": []}`))
		case r.URL.Path == "/list/l1/task":
			_, _ = w.Write([]byte(`{"tasks": [{"id": "t1", "name": "Deploy staging"}, {"id": "t2", "name": "Write docs"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	results, err := client.SearchWorkspace(context.Background(), "DEPLOY")
	if err != nil {
		t.Fatalf("SearchWorkspace() unexpected error = %v", err)
	}
	if len(results.Lists) != 1 {
		t.Errorf("len(Lists) = %d, want 1", len(results.Lists))
	}
	if len(results.Tasks) != 1 || results.Tasks[0].ID != "t1" {
		t.Errorf("Tasks = %+v, want single match t1", results.Tasks)
	}
}

func TestWorkspaceTasksListFilterShortCircuits(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		if r.URL.Path != "/list/l9/task" {
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"tasks": [{"id": "t1", "name": "Only one"}]}`))
	})

	tasks, err := client.WorkspaceTasks(context.Background(), TaskFilter{ListID: "l9"})
	if err != nil {
		t.Fatalf("WorkspaceTasks() unexpected error = %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("len(tasks) = %d, want 1", len(tasks))
	}
	if len(calls) != 1 {
		t.Errorf("API calls = %v, want exactly one list fetch", calls)
	}
}

func TestFilterByAssignee(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Assignees: []User{{ID: 7, Username: "jane"}}},
		{ID: "t2", Assignees: []User{{ID: 8, Username: "sam"}}},
		{ID: "t3"},
	}

	tests := []struct {
		name     string
		assignee string
		wantIDs  []string
	}{
		{name: "no filter", assignee: "", wantIDs: []string{"t1", "t2", "t3"}},
		{name: "by username", assignee: "jane", wantIDs: []string{"t1"}},
		{name: "by user id", assignee: "8", wantIDs: []string{"t2"}},
		{name: "no match", assignee: "nobody", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterByAssignee(tasks, tt.assignee)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, task := range got {
				if task.ID != tt.wantIDs[i] {
					t.Errorf("task[%d].ID = %q, want %q", i, task.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestDeleteReturnsEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	data, err := client.Delete(context.Background(), "task/t1")
	if err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Delete() body = %q, want empty", data)
	}
}

func TestPostMarshalsBody(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		_, _ = w.Write([]byte(`{"id": "t1"}`))
	})

	_, err := client.Post(context.Background(), "list/l1/task", map[string]any{"name": "New Task"})
	if err != nil {
		t.Fatalf("Post() unexpected error = %v", err)
	}
	if got["name"] != "New Task" {
		t.Errorf("request body name = %v, want %q", got["name"], "New Task")
	}
}
