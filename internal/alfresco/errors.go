// ABOUTME: Closed error-kind taxonomy for Alfresco API failures
// ABOUTME: Kinds are derived from HTTP status codes, never from message text
package alfresco

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure into a small closed set so callers can
// branch on error semantics instead of substring-matching messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindNotFound
	KindAlreadyLocked
	KindPermissionDenied
	KindUnsupported
	KindUnavailable
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindAlreadyLocked:
		return "already locked"
	case KindPermissionDenied:
		return "permission denied"
	case KindUnsupported:
		return "unsupported by server"
	case KindUnavailable:
		return "server unavailable"
	case KindServer:
		return "server error"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every Client method.
type Error struct {
	Kind       Kind
	StatusCode int // zero when the request never reached the server
	Op         string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("alfresco: %s: %s (%s)", e.Op, e.Message, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("alfresco: %s: %v (%s)", e.Op, e.Err, e.Kind)
	}
	return fmt.Sprintf("alfresco: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// kindForStatus maps an HTTP status to an error kind. 423 is the lock
// conflict Alfresco returns for already-locked nodes; some versions use 409.
func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusBadRequest:
		return KindInvalidInput
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindPermissionDenied
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusMethodNotAllowed, code == http.StatusNotImplemented:
		return KindUnsupported
	case code == http.StatusConflict, code == http.StatusLocked:
		return KindAlreadyLocked
	case code >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

func kindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a 404-class failure.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

// IsAlreadyLocked reports whether err indicates a lock held elsewhere.
func IsAlreadyLocked(err error) bool { return kindOf(err) == KindAlreadyLocked }

// IsPermissionDenied reports whether err is an auth failure.
func IsPermissionDenied(err error) bool { return kindOf(err) == KindPermissionDenied }

// IsUnsupported reports whether the server lacks the requested API.
func IsUnsupported(err error) bool { return kindOf(err) == KindUnsupported }

// IsUnavailable reports whether the request never got an HTTP response.
func IsUnavailable(err error) bool { return kindOf(err) == KindUnavailable }
