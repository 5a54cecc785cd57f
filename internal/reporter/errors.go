package reporter

import (
	"fmt"
	"strconv"
)

// StatusError presents a Failure as an error for callers that propagate errors
// rather than outcomes.
type StatusError struct {
	Failure *Failure
}

// AsError wraps f. It returns nil for a nil Failure.
func AsError(f *Failure) error {
	if f == nil {
		return nil
	}
	return &StatusError{Failure: f}
}

func (e *StatusError) Error() string {
	f := e.Failure
	if !f.HasStatus() {
		return "request failed: " + f.Message()
	}
	if label := f.Label(); label != "" {
		return fmt.Sprintf("%d %s: %s", f.StatusCode, label, f.Message())
	}
	return fmt.Sprintf("%d: %s", f.StatusCode, f.Message())
}

func (e *StatusError) Unwrap() error { return e.Failure.Err }

func (e *StatusError) ErrorCode() string {
	if !e.Failure.HasStatus() {
		return "TRANSPORT_ERROR"
	}
	return "HTTP_" + strconv.Itoa(e.Failure.StatusCode)
}

func (e *StatusError) Context() map[string]string {
	ctx := map[string]string{"status": "undefined"}
	if e.Failure.HasStatus() {
		ctx["status"] = strconv.Itoa(e.Failure.StatusCode)
	}
	if label := e.Failure.Label(); label != "" {
		ctx["label"] = label
	}
	return ctx
}

func (e *StatusError) SuggestedAction() string {
	if !e.Failure.HasStatus() {
		return "check that the catalog API is reachable (shelf status)"
	}
	return ""
}
