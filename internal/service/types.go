// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxTitleLen is the maximum task title length after trimming.
	MaxTitleLen = 100

	// MaxDescriptionLen is the maximum task description length after trimming.
	MaxDescriptionLen = 500
)

// Task represents a single task item owned by one user.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time // server-assigned, never changes
}

// TaskDraft is the user-supplied input for creating or updating a task.
type TaskDraft struct {
	Title       string
	Description string
}

// Trimmed returns a copy of the draft with surrounding whitespace removed.
func (d TaskDraft) Trimmed() TaskDraft {
	return TaskDraft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
	}
}

// ValidationError reports a draft rejected before any network call was made.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ValidateDraft checks a draft against the title and description bounds.
// The draft is trimmed before checking.
func ValidateDraft(d TaskDraft) error {
	t := d.Trimmed()
	if t.Title == "" {
		return &ValidationError{Field: "title", Msg: "title is required"}
	}
	if len([]rune(t.Title)) > MaxTitleLen {
		return &ValidationError{Field: "title", Msg: fmt.Sprintf("title exceeds %d characters", MaxTitleLen)}
	}
	if len([]rune(t.Description)) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Msg: fmt.Sprintf("description exceeds %d characters", MaxDescriptionLen)}
	}
	return nil
}
