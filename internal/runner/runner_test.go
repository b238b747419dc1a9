package runner

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	var out bytes.Buffer
	return &Runner{
		Workspace: t.TempDir(),
		Stdin:     strings.NewReader(""),
		Stdout:    &out,
		Stderr:    &out,
		Logger:    logger,
	}, &out
}

func TestRun_Success(t *testing.T) {
	r, out := newTestRunner(t)
	res, err := r.Run(context.Background(), []string{"echo", "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("output = %q, want to contain 'hello'", out.String())
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	r, _ := newTestRunner(t)
	res, err := r.Run(context.Background(), []string{"sh", "-c", "exit 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
}

func TestRun_ExitCodePreserved(t *testing.T) {
	r, _ := newTestRunner(t)
	res, err := r.Run(context.Background(), []string{"sh", "-c", "exit 137"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 137 {
		t.Errorf("ExitCode = %d, want 137", res.ExitCode)
	}
}

func TestRun_KilledBySignal(t *testing.T) {
	r, _ := newTestRunner(t)
	res, err := r.Run(context.Background(), []string{"sh", "-c", "kill -9 $$"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode == 0 {
		t.Error("ExitCode = 0, want non-zero")
	}
}

func TestRun_StderrPassesThrough(t *testing.T) {
	r, _ := newTestRunner(t)
	var stderr bytes.Buffer
	r.Stderr = &stderr
	if _, err := r.Run(context.Background(), []string{"sh", "-c", "echo oops >&2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stderr.String(); got != "oops\n" {
		t.Errorf("stderr = %q, want %q", got, "oops\n")
	}
}

func TestRun_BinaryNotFound(t *testing.T) {
	r, _ := newTestRunner(t)
	_, err := r.Run(context.Background(), []string{"nonexistent-binary-xyz-123"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "nonexistent-binary-xyz-123") {
		t.Errorf("error = %q, want to mention the binary name", err)
	}
}

func TestRun_EmptyArgv(t *testing.T) {
	r, _ := newTestRunner(t)
	_, err := r.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestRun_RunsInWorkspace(t *testing.T) {
	r, out := newTestRunner(t)
	if _, err := r.Run(context.Background(), []string{"pwd"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := filepath.EvalSymlinks(r.Workspace)
	if err != nil {
		t.Fatal(err)
	}
	got, err := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestRun_LogsRunID(t *testing.T) {
	r, _ := newTestRunner(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	r.Logger = logger

	res, err := r.Run(context.Background(), []string{"sh", "-c", "exit 3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := hook.LastEntry()
	if last == nil {
		t.Fatal("no log entries recorded")
	}
	if last.Data["run_id"] != res.RunID {
		t.Errorf("run_id = %v, want %q", last.Data["run_id"], res.RunID)
	}
	if last.Data["exit_code"] != 3 {
		t.Errorf("exit_code = %v, want 3", last.Data["exit_code"])
	}
}
