package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the editor should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrSaveAborted is returned when the save-as prompt is cancelled.
	ErrSaveAborted = errors.New("save aborted")
)

// OperationError is an error from a file or startup operation.
type OperationError struct {
	Op     string // Operation name, e.g. "open" or "save"
	Target string // File path or component name
	Err    error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
