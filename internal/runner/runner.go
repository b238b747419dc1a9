// Package runner spawns a single child process in a workspace directory,
// waits for it, and reports its exit code. The child's output streams
// pass straight through.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Runner executes commands from a workspace directory.
type Runner struct {
	Workspace string // working directory of the child; empty means ours

	// Stdin, Stdout and Stderr are handed to the child unmodified.
	// Nil means the corresponding stream of this process.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives debug traces. Nil means the logrus standard logger.
	Logger *log.Logger
}

// Run executes a command with the given argv and blocks until it exits.
// The first element is the binary name (resolved via PATH), and the rest
// are arguments.
//
// A process that started and exited, whatever its status, yields a
// Result. An error means the process never ran.
func (r *Runner) Run(ctx context.Context, argv []string) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	runID := uuid.New().String()
	entry := r.logger().WithFields(log.Fields{
		"run_id": runID,
		"argv":   strings.Join(argv, " "),
		"dir":    r.Workspace,
	})

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Workspace
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	entry.Debug("starting command")
	runErr := cmd.Run()

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// Binary not found or other exec error.
			entry.WithError(runErr).Debug("command did not start")
			return nil, fmt.Errorf("executing %s: %w", argv[0], runErr)
		}
	}

	entry.WithField("exit_code", exitCode).Debug("command exited")
	return &Result{
		RunID:    runID,
		ExitCode: exitCode,
	}, nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.StandardLogger()
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
