// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task store operations.
// All HTTP calls to the task service go through this interface.
// Commands and the TUI never touch the transport directly.
//
// Every operation is scoped to a user id resolved from the current session;
// implementations must never fetch or mutate another user's tasks.
type Service interface {
	// List returns all tasks for a user in server order (newest first).
	List(ctx context.Context, userID string) ([]Task, error)

	// Get returns a single task by id.
	Get(ctx context.Context, userID, taskID string) (Task, error)

	// Create creates a new task from the draft.
	// The server assigns the id and creation timestamp.
	// Returns *ValidationError before any network call for a bad draft.
	Create(ctx context.Context, userID string, draft TaskDraft) (Task, error)

	// Update replaces a task's title and description.
	// Same pre-flight validation as Create.
	Update(ctx context.Context, userID, taskID string, draft TaskDraft) (Task, error)

	// ToggleComplete inverts a task's completion flag.
	// The new flag is computed by the server; the returned task is
	// authoritative.
	ToggleComplete(ctx context.Context, userID, taskID string) (Task, error)

	// Delete removes a task. Success carries no payload.
	Delete(ctx context.Context, userID, taskID string) error
}
