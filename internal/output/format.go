// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"taskpad/internal/service"
)

var (
	headerColor    = color.New(color.Bold)
	completedColor = color.New(color.Faint)
	errorColor     = color.New(color.FgRed)
)

// FormatTask writes one task line.
// Format: "{N:>4}  [ ] {TITLE}" with "[x]" for completed tasks; completed
// lines are dimmed when the terminal supports it.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%4d  %s %s", num, box, normalizeTitle(task.Title))
	if task.Completed {
		line = completedColor.Sprint(line)
	}
	fmt.Fprintln(w, line)
}

// FormatSection writes a section header ("Pending", "Completed").
func FormatSection(w io.Writer, title string, count int) {
	fmt.Fprintln(w, headerColor.Sprintf("%s (%d)", title, count))
}

// FormatTaskDetail writes the full task view for the show command.
func FormatTaskDetail(w io.Writer, task service.Task) {
	status := "pending"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
	fmt.Fprintf(w, "status:      %s\n", status)
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(w, "created:     %s\n", task.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// FormatError writes a user-facing error line to errOut.
func FormatError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, errorColor.Sprint("error: ")+fmt.Sprintf(format, args...))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
