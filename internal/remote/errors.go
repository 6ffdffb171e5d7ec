package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a failed remote call. The set is closed on purpose:
// the offline layer decides queue-vs-surface from the kind alone, so every
// failure must map to exactly one of these.
type ErrorKind int

const (
	// KindConnectivity covers no network, timeouts, resets and DNS failures.
	// These are retried through the sync queue and never surfaced to the
	// caller of a progress mutation.
	KindConnectivity ErrorKind = iota

	// KindValidation covers malformed input the server rejected (4xx other
	// than 404/409). Never queued, replaying cannot succeed.
	KindValidation

	// KindNotFound covers 404 responses. Reads treat it as an empty result.
	KindNotFound

	// KindConflict covers server-side business-rule rejections (409).
	KindConflict

	// KindServer covers 5xx responses.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every remote client method.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a typed remote error.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the error kind, defaulting to KindConnectivity for
// transport-level errors that never reached classification.
func KindOf(err error) (ErrorKind, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

// IsConnectivity reports whether err represents a network-level failure
// that the offline layer should absorb.
func IsConnectivity(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindConnectivity
}

// IsNotFound reports whether err is a remote not-found response.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// IsRetryable reports whether a drain should keep the entry for later.
// Only connectivity failures are retryable; everything else the server has
// already decided on.
func IsRetryable(err error) bool {
	return IsConnectivity(err)
}

// classifyTransport wraps an error from the HTTP round trip itself.
// Anything that failed before an HTTP status came back is a connectivity
// failure: deadline expiry, cancelled context, DNS, refused/reset conns.
func classifyTransport(op string, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return NewError(KindConnectivity, op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewError(KindConnectivity, op, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NewError(KindConnectivity, op, err)
	}

	// url.Error wraps the transport cause; unwrap and retry classification
	// once before giving up.
	if cause := errors.Unwrap(err); cause != nil && cause != err {
		return classifyTransport(op, cause)
	}

	return NewError(KindConnectivity, op, err)
}

// classifyStatus maps an HTTP status code to an error kind.
func classifyStatus(op string, status int, body string) *Error {
	err := fmt.Errorf("status %d: %s", status, body)
	switch {
	case status == 404:
		return NewError(KindNotFound, op, err)
	case status == 409:
		return NewError(KindConflict, op, err)
	case status >= 400 && status < 500:
		return NewError(KindValidation, op, err)
	default:
		return NewError(KindServer, op, err)
	}
}
