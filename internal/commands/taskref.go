package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskpad/internal/service"
)

// ErrTaskRefRequired is returned when no task reference was given.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrTaskRefOutOfRange is returned when a numeric reference does not point
// into the current collection.
var ErrTaskRefOutOfRange = errors.New("task number out of range")

// ResolveTask resolves a task reference to a task.
//
// A reference is either a task id, or a 1-based number (optionally prefixed
// with '#') into the newest-first collection as printed by the list command.
// Numeric references cost one extra list call.
func ResolveTask(ctx context.Context, svc service.Service, userID, ref string) (service.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Task{}, ErrTaskRefRequired
	}

	numStr := strings.TrimPrefix(ref, "#")
	num, err := strconv.Atoi(numStr)
	if err != nil {
		// Not numeric, treat as a task id.
		return svc.Get(ctx, userID, ref)
	}
	if num < 1 {
		return service.Task{}, fmt.Errorf("%w: %d", ErrTaskRefOutOfRange, num)
	}

	tasks, err := svc.List(ctx, userID)
	if err != nil {
		return service.Task{}, err
	}
	if num > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", ErrTaskRefOutOfRange, num)
	}
	return tasks[num-1], nil
}

// refFromArgs extracts the single task reference argument.
func refFromArgs(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrTaskRefRequired
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}
	return args[0], nil
}
