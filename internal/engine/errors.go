package engine

import "fmt"

// InitError reports a failure to bring up the window or the GL context.
// It is the only fatal error kind besides a strict-policy shader failure.
type InitError struct {
	Step string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Step, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
