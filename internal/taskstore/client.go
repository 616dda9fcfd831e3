// Package taskstore implements the service.Service interface against the
// task service's REST contract.
package taskstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"taskpad/internal/service"
	"taskpad/internal/transport"
)

// Client implements service.Service over the HTTP transport.
type Client struct {
	tr *transport.Client
}

// New creates a store client on top of the given transport.
func New(tr *transport.Client) *Client {
	return &Client{tr: tr}
}

// taskDTO is the wire representation of a task.
type taskDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// taskListDTO is the wire shape of the list endpoint payload.
type taskListDTO struct {
	Tasks []taskDTO `json:"tasks"`
	Total int       `json:"total"`
}

// draftDTO is the request body for create and update.
type draftDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (d taskDTO) toTask() service.Task {
	return service.Task{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.IsCompleted,
		CreatedAt:   d.CreatedAt,
	}
}

func tasksPath(userID string) string {
	return fmt.Sprintf("/api/%s/tasks", url.PathEscape(userID))
}

func taskPath(userID, taskID string) string {
	return fmt.Sprintf("/api/%s/tasks/%s", url.PathEscape(userID), url.PathEscape(taskID))
}

// List implements service.Service.
func (c *Client) List(ctx context.Context, userID string) ([]service.Task, error) {
	var payload taskListDTO
	if err := c.tr.Do(ctx, http.MethodGet, tasksPath(userID), nil, &payload); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(payload.Tasks))
	for _, dto := range payload.Tasks {
		tasks = append(tasks, dto.toTask())
	}
	return tasks, nil
}

// Get implements service.Service.
func (c *Client) Get(ctx context.Context, userID, taskID string) (service.Task, error) {
	var dto taskDTO
	if err := c.tr.Do(ctx, http.MethodGet, taskPath(userID, taskID), nil, &dto); err != nil {
		return service.Task{}, err
	}
	return dto.toTask(), nil
}

// Create implements service.Service. The draft is validated and trimmed
// before any network call.
func (c *Client) Create(ctx context.Context, userID string, draft service.TaskDraft) (service.Task, error) {
	if err := service.ValidateDraft(draft); err != nil {
		return service.Task{}, err
	}
	draft = draft.Trimmed()

	var dto taskDTO
	body := draftDTO{Title: draft.Title, Description: draft.Description}
	if err := c.tr.Do(ctx, http.MethodPost, tasksPath(userID), body, &dto); err != nil {
		return service.Task{}, err
	}
	return dto.toTask(), nil
}

// Update implements service.Service. Same pre-flight validation as Create.
func (c *Client) Update(ctx context.Context, userID, taskID string, draft service.TaskDraft) (service.Task, error) {
	if err := service.ValidateDraft(draft); err != nil {
		return service.Task{}, err
	}
	draft = draft.Trimmed()

	var dto taskDTO
	body := draftDTO{Title: draft.Title, Description: draft.Description}
	if err := c.tr.Do(ctx, http.MethodPut, taskPath(userID, taskID), body, &dto); err != nil {
		return service.Task{}, err
	}
	return dto.toTask(), nil
}

// ToggleComplete implements service.Service. The server computes the new
// completion flag; the returned task is taken as authoritative.
func (c *Client) ToggleComplete(ctx context.Context, userID, taskID string) (service.Task, error) {
	var dto taskDTO
	path := taskPath(userID, taskID) + "/complete"
	if err := c.tr.Do(ctx, http.MethodPatch, path, nil, &dto); err != nil {
		return service.Task{}, err
	}
	return dto.toTask(), nil
}

// Delete implements service.Service. Success is a 204 with no payload.
func (c *Client) Delete(ctx context.Context, userID, taskID string) error {
	return c.tr.Do(ctx, http.MethodDelete, taskPath(userID, taskID), nil, nil)
}
