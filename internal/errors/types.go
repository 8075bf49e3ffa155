// Package errors provides the single error type surfaced by the client SDK.
// Failures are tagged with a Kind so callers can branch on network, HTTP status
// and decode failures, and with a Category used by retry policies.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of a remote call failed.
type Kind int

const (
	// KindNetwork covers connection, TLS and timeout failures before a response arrived.
	KindNetwork Kind = iota + 1

	// KindHTTPStatus is a response with a non-2xx status code.
	KindHTTPStatus

	// KindDecode is a 2xx response whose body could not be decoded into the declared type.
	KindDecode
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 403 Forbidden, 404 Not Found, malformed bodies.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// MicroBlogError is returned by every remote operation of the SDK.
type MicroBlogError struct {
	Kind       Kind
	Category   ErrorCategory
	StatusCode int    // HTTP status code (0 for network errors)
	Request    string // API path, e.g. /users/show.json
	Message    string // server supplied error text, if any
	Body       string // raw response body, truncated
	Underlying error
}

// Error implements the error interface.
func (e *MicroBlogError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("microblog: %s %s: HTTP %d: %s", e.Kind, e.Request, e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("microblog: %s %s: HTTP %d: %v", e.Kind, e.Request, e.StatusCode, e.Underlying)
	default:
		return fmt.Sprintf("microblog: %s %s: %v", e.Kind, e.Request, e.Underlying)
	}
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *MicroBlogError) Unwrap() error {
	return e.Underlying
}

// As reports whether err is or wraps a *MicroBlogError and returns it.
func As(err error) (*MicroBlogError, bool) {
	var mbe *MicroBlogError
	if errors.As(err, &mbe) {
		return mbe, true
	}
	return nil, false
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	if mbe, ok := As(err); ok {
		return mbe.Category == Irrecoverable
	}
	return false
}
