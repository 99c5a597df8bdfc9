package odoo

import (
	"errors"
	"fmt"
)

// AuthError reports a rejected or expired session. The client clears
// its cached uid and re-authenticates before the next retry when it
// sees one.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("helpdesk authentication failed: %s", e.Reason)
}

// PermanentError reports a fault retrying cannot fix, such as a
// missing record or an access rule rejection.
type PermanentError struct {
	Name     string
	Reason   string
	NotFound bool
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("helpdesk rejected call (%s): %s", e.Name, e.Reason)
}

// TransientError reports a fault worth retrying: network failures,
// server errors, malformed responses.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("helpdesk %s failed: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// CallError wraps the last fault after the retry budget is exhausted.
type CallError struct {
	Model    string
	Method   string
	Attempts int
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("helpdesk call %s.%s failed after %d attempts: %v", e.Model, e.Method, e.Attempts, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the remote record does not
// exist.
func IsNotFound(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe) && pe.NotFound
}

// IsPermanent reports whether retrying err is pointless.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
