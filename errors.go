package client

import (
	"errors"
	"net/http"

	mberrors "github.com/fanfou-go/client/internal/errors"
)

// MicroBlogError is the error returned by every remote operation.
type MicroBlogError = mberrors.MicroBlogError

// ErrorKind tells network, HTTP status and decode failures apart.
type ErrorKind = mberrors.Kind

const (
	KindNetwork    = mberrors.KindNetwork
	KindHTTPStatus = mberrors.KindHTTPStatus
	KindDecode     = mberrors.KindDecode
)

// ErrBackPressure is returned when the lookup queue is full.
var ErrBackPressure = errors.New("back-pressure (queue full)")

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// ErrClosed is returned by LookupUsers after Close.
var ErrClosed = errors.New("client closed")

// AsMicroBlogError returns the *MicroBlogError in err's chain, if any.
func AsMicroBlogError(err error) (*MicroBlogError, bool) { return mberrors.As(err) }

// IsNotFound reports whether err is an HTTP 404 from the service.
func IsNotFound(err error) bool {
	mbe, ok := mberrors.As(err)
	return ok && mbe.Kind == KindHTTPStatus && mbe.StatusCode == http.StatusNotFound
}
