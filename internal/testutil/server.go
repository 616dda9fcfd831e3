package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// wireTask mirrors the task service's wire representation.
type wireTask struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskServer is an in-memory HTTP stand-in for the task service, implementing
// the /api/{userId}/tasks contract.
type TaskServer struct {
	*httptest.Server

	mu    sync.Mutex
	tasks map[string][]wireTask // userID -> newest first
}

// NewTaskServer starts a fake task service.
func NewTaskServer() *TaskServer {
	ts := &TaskServer{tasks: make(map[string][]wireTask)}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.handle))
	return ts
}

// Seed adds a task for userID and returns its id.
func (ts *TaskServer) Seed(userID, title, description string, completed bool) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	task := wireTask{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		IsCompleted: completed,
		CreatedAt:   time.Now().UTC(),
	}
	ts.tasks[userID] = append([]wireTask{task}, ts.tasks[userID]...)
	return task.ID
}

// Count returns the number of stored tasks for userID.
func (ts *TaskServer) Count(userID string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.tasks[userID])
}

func (ts *TaskServer) handle(w http.ResponseWriter, r *http.Request) {
	// Paths: /api/{userID}/tasks[/{taskID}[/complete]]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[2] != "tasks" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	userID := parts[1]

	switch {
	case len(parts) == 3 && r.Method == http.MethodGet:
		ts.list(w, userID)
	case len(parts) == 3 && r.Method == http.MethodPost:
		ts.create(w, r, userID)
	case len(parts) == 4 && r.Method == http.MethodGet:
		ts.get(w, userID, parts[3])
	case len(parts) == 4 && r.Method == http.MethodPut:
		ts.update(w, r, userID, parts[3])
	case len(parts) == 4 && r.Method == http.MethodDelete:
		ts.delete(w, userID, parts[3])
	case len(parts) == 5 && parts[4] == "complete" && r.Method == http.MethodPatch:
		ts.toggle(w, userID, parts[3])
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (ts *TaskServer) list(w http.ResponseWriter, userID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	tasks := ts.tasks[userID]
	if tasks == nil {
		tasks = []wireTask{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks, "total": len(tasks)})
}

func (ts *TaskServer) get(w http.ResponseWriter, userID, taskID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, t := range ts.tasks[userID] {
		if t.ID == taskID {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (ts *TaskServer) create(w http.ResponseWriter, r *http.Request, userID string) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if body.Title == "" || len(body.Title) > 100 {
		writeError(w, http.StatusUnprocessableEntity, "Invalid title")
		return
	}

	ts.mu.Lock()
	task := wireTask{
		ID:          uuid.NewString(),
		Title:       body.Title,
		Description: body.Description,
		CreatedAt:   time.Now().UTC(),
	}
	ts.tasks[userID] = append([]wireTask{task}, ts.tasks[userID]...)
	ts.mu.Unlock()

	writeJSON(w, http.StatusCreated, task)
}

func (ts *TaskServer) update(w http.ResponseWriter, r *http.Request, userID, taskID string) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	for i, t := range ts.tasks[userID] {
		if t.ID == taskID {
			t.Title = body.Title
			t.Description = body.Description
			ts.tasks[userID][i] = t
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (ts *TaskServer) delete(w http.ResponseWriter, userID, taskID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	tasks := ts.tasks[userID]
	for i, t := range tasks {
		if t.ID == taskID {
			ts.tasks[userID] = append(tasks[:i], tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (ts *TaskServer) toggle(w http.ResponseWriter, userID, taskID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for i, t := range ts.tasks[userID] {
		if t.ID == taskID {
			t.IsCompleted = !t.IsCompleted
			ts.tasks[userID][i] = t
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
