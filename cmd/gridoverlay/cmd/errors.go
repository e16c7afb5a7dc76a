package cmd

import "fmt"

// ErrExitWith is returned by a command that wants the program to exit with
// the given code.
type ErrExitWith struct {
	Err       error
	Msg       string
	ExitCode  int
	ShowUsage bool
}

func (e ErrExitWith) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%v: %v", e.Msg, e.Err)
}

// Cause returns the underlying error
func (e ErrExitWith) Cause() error { return e.Err }
