// Command testgate runs the Cargo workspace's release-mode test suite and
// prints a single pass/fail line. It exits 0 on success and 1 otherwise.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/deixis/testgate/internal/config"
	"github.com/deixis/testgate/internal/report"
	"github.com/deixis/testgate/internal/runner"
	"github.com/deixis/testgate/internal/workflow"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "testgate: %v\n", err)
		return workflow.ExitFailure
	}
	return workflow.ExitSuccess
}

// exitError carries a non-zero exit code out of cobra without printing.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (e exitError) ExitCode() int { return e.code }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testgate",
		Short: "Run the workspace test suite in release mode and report pass/fail",
		Long: `testgate runs "cargo test --workspace --release" from the Cargo workspace
root, lets its output through untouched, and prints one status line.

It exits 0 when the suite passes and 1 for any failure.`,
		// No flags at all, -h included: every argument is rejected.
		DisableFlagParsing: true,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTests(cmd, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func runTests(cmd *cobra.Command, stdout, stderr io.Writer) error {
	logger := newLogger(stderr)

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	loaded, err := config.Load(wd)
	if err != nil {
		return fmt.Errorf("locating workspace: %w", err)
	}
	logger.WithFields(log.Fields{
		"root":    loaded.RepoRoot,
		"members": loaded.Members,
	}).Debug("workspace")

	eng := &workflow.Engine{
		Config: loaded.Config,
		Runner: &runner.Runner{
			Workspace: loaded.RepoRoot,
			Stdout:    stdout,
			Stderr:    stderr,
			Logger:    logger,
		},
		Logger: logger,
	}

	outcome := eng.Test(cmd.Context())
	if err := report.NewPrinter(stdout).Print(outcome); err != nil {
		return fmt.Errorf("writing status: %w", err)
	}
	if code := outcome.ExitCode(); code != workflow.ExitSuccess {
		return exitError{code: code}
	}
	return nil
}

// newLogger returns a logger that only surfaces errors, such as a test
// command that could not be started.
func newLogger(w io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger.SetLevel(log.WarnLevel)
	return logger
}
