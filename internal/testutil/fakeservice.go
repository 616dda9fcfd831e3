// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/service"
	"taskpad/internal/transport"
)

// NotFoundErr builds the API error the task service returns for a missing task.
func NotFoundErr() *transport.APIError {
	return &transport.APIError{Status: http.StatusNotFound, Message: "Task not found"}
}

// FakeService is an in-memory implementation of service.Service for testing.
// Tasks are kept newest-first, matching server list order.
type FakeService struct {
	mu    sync.RWMutex
	tasks map[string][]service.Task // userID -> tasks

	// Error injection for testing
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	ToggleErr error
	DeleteErr error

	// Calls records operation names in order, for asserting that
	// validation failures never reach the backend.
	Calls []string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{tasks: make(map[string][]service.Task)}
}

// AddTask seeds a task for a user and returns it. Tasks are prepended so the
// most recently added comes first, like the real service.
func (f *FakeService) AddTask(userID, title, description string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   time.Now(),
	}
	f.tasks[userID] = append([]service.Task{task}, f.tasks[userID]...)
	return task
}

func (f *FakeService) record(op string) {
	f.Calls = append(f.Calls, op)
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context, userID string) ([]service.Task, error) {
	f.mu.Lock()
	f.record("list")
	f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks[userID]))
	copy(result, f.tasks[userID])
	return result, nil
}

// Get implements service.Service.
func (f *FakeService) Get(ctx context.Context, userID, taskID string) (service.Task, error) {
	f.mu.Lock()
	f.record("get")
	f.mu.Unlock()
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks[userID] {
		if t.ID == taskID {
			return t, nil
		}
	}
	return service.Task{}, NotFoundErr()
}

// Create implements service.Service with the same pre-flight validation as
// the real store client.
func (f *FakeService) Create(ctx context.Context, userID string, draft service.TaskDraft) (service.Task, error) {
	if err := service.ValidateDraft(draft); err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	f.record("create")
	f.mu.Unlock()
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	draft = draft.Trimmed()
	return f.AddTask(userID, draft.Title, draft.Description, false), nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, userID, taskID string, draft service.TaskDraft) (service.Task, error) {
	if err := service.ValidateDraft(draft); err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update")
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	draft = draft.Trimmed()
	for i, t := range f.tasks[userID] {
		if t.ID == taskID {
			t.Title = draft.Title
			t.Description = draft.Description
			f.tasks[userID][i] = t
			return t, nil
		}
	}
	return service.Task{}, NotFoundErr()
}

// ToggleComplete implements service.Service.
func (f *FakeService) ToggleComplete(ctx context.Context, userID, taskID string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("toggle")
	if f.ToggleErr != nil {
		return service.Task{}, f.ToggleErr
	}
	for i, t := range f.tasks[userID] {
		if t.ID == taskID {
			t.Completed = !t.Completed
			f.tasks[userID][i] = t
			return t, nil
		}
	}
	return service.Task{}, NotFoundErr()
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, userID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	tasks := f.tasks[userID]
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[userID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return NotFoundErr()
}
