package workflow

import "fmt"

// Exit codes reported to the invoking shell or CI system.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Kind classifies how a test run ended.
type Kind int

const (
	// Success means the test command exited 0.
	Success Kind = iota
	// Failed means the test command ran and exited non-zero.
	Failed
	// LaunchError means the test command could not be started.
	LaunchError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case LaunchError:
		return "launch-error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the tagged result of one test run.
type Outcome struct {
	Kind  Kind
	RunID string // empty for LaunchError
	Code  int    // child exit code; meaningful for Failed
	Cause error  // set for LaunchError
}

// OK reports whether the run succeeded.
func (o Outcome) OK() bool { return o.Kind == Success }

// ExitCode collapses the outcome to the 0/1 contract. The child's own
// non-zero code is not propagated.
func (o Outcome) ExitCode() int {
	if o.OK() {
		return ExitSuccess
	}
	return ExitFailure
}

func (o Outcome) String() string {
	switch o.Kind {
	case Failed:
		return fmt.Sprintf("failed (exit %d)", o.Code)
	case LaunchError:
		return fmt.Sprintf("launch error: %v", o.Cause)
	default:
		return o.Kind.String()
	}
}
