package runner

// Result holds the outcome of a finished command. It is only built once
// the process has exited.
type Result struct {
	RunID    string // unique identifier for this run
	ExitCode int    // process exit code; -1 when killed by a signal
}
