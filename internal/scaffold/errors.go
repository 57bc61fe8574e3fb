package scaffold

import "fmt"

// StepError wraps a filesystem failure with the step and path that caused it.
type StepError struct {
	Step string
	Path string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *StepError) Unwrap() error {
	return e.Err
}
