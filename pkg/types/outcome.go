package types

import "fmt"

// ExitOutcome is the result of running an external process
type ExitOutcome struct {
	// Code is the process exit status, -1 when the process never ran to completion
	Code int
	// NotFound is set when the executable could not be located or started
	NotFound bool
	// TimedOut is set when the process was killed after its deadline
	TimedOut bool
	// Exited is set when the process started and ended on its own or by a
	// signal; Code is -1 for a signal
	Exited bool
	Err    error
}

// Success reports whether the process ran and exited with status 0
func (o ExitOutcome) Success() bool {
	return !o.NotFound && !o.TimedOut && o.Err == nil && o.Code == 0
}

func (o ExitOutcome) String() string {
	switch {
	case o.NotFound:
		return "not found"
	case o.TimedOut:
		return "timed out"
	case o.Success():
		return "exit status 0"
	case o.Code > 0:
		return fmt.Sprintf("exit status %d", o.Code)
	case o.Err != nil:
		return o.Err.Error()
	default:
		return fmt.Sprintf("exit status %d", o.Code)
	}
}
