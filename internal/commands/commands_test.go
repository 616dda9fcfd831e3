package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/session"
	"taskpad/internal/testutil"
)

const testUserID = "user-1"

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}
	sess := session.Session{UserID: testUserID, Email: "ada@example.com"}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, sess, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskpad 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	if !strings.Contains(stdout, "taskpad login") {
		t.Error("help output should mention login")
	}
	// The command list comes from the registry: aliases share a line with
	// the primary name, session-gated commands carry the marker.
	if !strings.Contains(stdout, "add, create") {
		t.Errorf("help should group aliases with the command, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "* ") {
		t.Error("help should mark session-gated commands")
	}
	if !strings.Contains(stdout, "version") {
		t.Error("help should list every registered command")
	}
}

// Tests for whoami command
func TestWhoamiCommand(t *testing.T) {
	cmd := &commands.WhoamiCmd{}

	stdout, _, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ada@example.com (user-1)\n" {
		t.Errorf("unexpected whoami output: %q", stdout)
	}
}

// Tests for list command
func TestListCommand_PendingOnly(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(testUserID, "Buy milk", "", false)
	svc.AddTask(testUserID, "Ship release", "", true)
	svc.AddTask(testUserID, "Buy eggs", "", false)

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "Pending (2)") {
		t.Errorf("expected pending section header, got %q", stdout)
	}
	if strings.Contains(stdout, "Completed (") {
		t.Errorf("completed section shown without --all: %q", stdout)
	}
	// Newest first.
	if strings.Index(stdout, "Buy eggs") > strings.Index(stdout, "Buy milk") {
		t.Errorf("expected newest-first order, got %q", stdout)
	}
}

func TestListCommand_All(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(testUserID, "open", "", false)
	svc.AddTask(testUserID, "closed", "", true)

	cmd := &commands.ListCmd{}
	cmd.SetAll(true)
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(stdout, "Pending (1)") || !strings.Contains(stdout, "Completed (1)") {
		t.Errorf("expected both sections, got %q", stdout)
	}
	if !strings.Contains(stdout, "[x] closed") {
		t.Errorf("expected checked box for completed task, got %q", stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if stdout != "no tasks\n" {
		t.Errorf("expected 'no tasks', got %q", stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = testutil.NotFoundErr()

	cmd := &commands.ListCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error for 404, got %d", code)
	}
	if !strings.Contains(stderr, "Task not found") {
		t.Errorf("expected server message surfaced, got %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetDescription("two liters")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if !strings.HasPrefix(stdout, "created ") {
		t.Errorf("expected created output, got %q", stdout)
	}

	tasks, _ := svc.List(context.Background(), testUserID)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task created, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" {
		t.Errorf("expected joined title, got %q", tasks[0].Title)
	}
	if tasks[0].Description != "two liters" {
		t.Errorf("expected description, got %q", tasks[0].Description)
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "title required") {
		t.Errorf("expected title required error, got %q", stderr)
	}
	if len(svc.Calls) != 0 {
		t.Errorf("no backend call expected, got %v", svc.Calls)
	}
}

func TestAddCommand_WhitespaceTitleNeverReachesBackend(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"   "}, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "title is required") {
		t.Errorf("expected validation message, got %q", stderr)
	}
	for _, call := range svc.Calls {
		if call == "create" {
			t.Error("whitespace-only title must not issue a create call")
		}
	}
}

func TestAddCommand_TitleTooLong(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	long := strings.Repeat("x", service.MaxTitleLen+1)
	_, stderr, code := runCommand(t, cmd, svc, []string{long}, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "title exceeds") {
		t.Errorf("expected length validation message, got %q", stderr)
	}
}

// Tests for done command
func TestDoneCommand_TogglesTwiceBackToPending(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask(testUserID, "flip", "", false)

	cmd := &commands.DoneCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{task.ID}, false)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.HasPrefix(stdout, "completed ") {
		t.Errorf("expected completed output, got %q", stdout)
	}

	stdout, _, code = runCommand(t, cmd, svc, []string{task.ID}, false)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.HasPrefix(stdout, "pending ") {
		t.Errorf("toggle twice should read pending, got %q", stdout)
	}

	got, _ := svc.Get(context.Background(), testUserID, task.ID)
	if got.Completed {
		t.Error("two toggles should restore the original flag")
	}
}

func TestDoneCommand_NumericRef(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(testUserID, "older", "", false)
	newest := svc.AddTask(testUserID, "newest", "", false)

	cmd := &commands.DoneCmd{}
	_, _, code := runCommand(t, cmd, svc, []string{"#1"}, true)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}

	got, _ := svc.Get(context.Background(), testUserID, newest.ID)
	if !got.Completed {
		t.Error("ref #1 should resolve to the newest task")
	}
}

func TestDoneCommand_MissingRef(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "task reference required") {
		t.Errorf("expected ref required message, got %q", stderr)
	}
}

func TestDoneCommand_RefOutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(testUserID, "only", "", false)

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "out of range") {
		t.Errorf("expected out of range message, got %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand_TitleOnlyKeepsDescription(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask(testUserID, "old", "keep me", false)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("new")
	_, stderr, code := runCommand(t, cmd, svc, []string{task.ID}, true)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}

	got, _ := svc.Get(context.Background(), testUserID, task.ID)
	if got.Title != "new" {
		t.Errorf("title not updated: %q", got.Title)
	}
	if got.Description != "keep me" {
		t.Errorf("description should be preserved, got %q", got.Description)
	}
}

func TestEditCommand_NothingToChange(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask(testUserID, "t", "", false)

	cmd := &commands.EditCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{task.ID}, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "nothing to change") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestEditCommand_EmptyTitleRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask(testUserID, "t", "", false)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("   ")
	_, stderr, code := runCommand(t, cmd, svc, []string{task.ID}, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "title is required") {
		t.Errorf("expected validation message, got %q", stderr)
	}
	for _, call := range svc.Calls {
		if call == "update" {
			t.Error("invalid draft must not issue an update call")
		}
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask(testUserID, "doomed", "", false)

	cmd := &commands.RmCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{task.ID}, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}

	tasks, _ := svc.List(context.Background(), testUserID)
	if len(tasks) != 0 {
		t.Errorf("expected task deleted, %d remain", len(tasks))
	}
}

func TestRmCommand_NotFound(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"ghost"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected user error for 404, got %d", code)
	}
	if !strings.Contains(stderr, "Task not found") {
		t.Errorf("expected not found message, got %q", stderr)
	}
}

// Tests for show command
func TestShowCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask(testUserID, "inspect", "the details", false)

	cmd := &commands.ShowCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{task.ID}, false)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	for _, want := range []string{task.ID, "inspect", "the details", "pending"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q: %q", want, stdout)
		}
	}
}

// Quiet mode
func TestQuietSuppressesConfirmation(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"task"}, true)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}
