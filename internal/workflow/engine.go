// Package workflow drives a single test run: spawn the configured
// command, wait for it, and classify how it ended.
package workflow

import (
	"context"

	"github.com/deixis/testgate/internal/config"
	"github.com/deixis/testgate/internal/runner"
	log "github.com/sirupsen/logrus"
)

// CommandRunner executes commands within a workspace.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string) (*runner.Result, error)
}

// State is a step of the run lifecycle. Succeeded and Failed are terminal.
type State string

const (
	StateStart     State = "start"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Engine holds shared dependencies for a test run.
type Engine struct {
	Config *config.Config
	Runner CommandRunner // rooted at the workspace; commands run from its root

	// Logger receives state transitions at debug level and launch
	// failures at error level. Nil means the logrus standard logger.
	Logger *log.Logger
}

// Test runs the configured invocation once and returns its outcome.
// It blocks until the child exits; there is no timeout and no retry.
func (e *Engine) Test(ctx context.Context) Outcome {
	argv := e.Config.Invocation.Argv()
	logger := e.logger()

	logger.WithField("state", StateStart).Debug("test run")

	logger.WithField("state", StateRunning).Debug("test run")
	res, err := e.Runner.Run(ctx, argv)
	if err != nil {
		logger.WithError(err).WithField("state", StateFailed).Error("test command did not start")
		return Outcome{Kind: LaunchError, Cause: err}
	}

	entry := logger.WithFields(log.Fields{
		"run_id":    res.RunID,
		"exit_code": res.ExitCode,
	})
	if res.ExitCode != 0 {
		entry.WithField("state", StateFailed).Debug("test run")
		return Outcome{Kind: Failed, RunID: res.RunID, Code: res.ExitCode}
	}
	entry.WithField("state", StateSucceeded).Debug("test run")
	return Outcome{Kind: Success, RunID: res.RunID}
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.StandardLogger()
}
