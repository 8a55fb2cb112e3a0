package report

import "fmt"

// RenderError reports a structurally invalid dataset or a document
// encoding failure.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("report: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("report: %s", e.Reason)
}

func (e *RenderError) Unwrap() error { return e.Err }
