package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxBodyLen bounds how much of a response body is kept on an error.
const maxBodyLen = 4 << 10

// serverError is the error object Fanfou returns alongside non-2xx statuses.
type serverError struct {
	Request string `json:"request"`
	Error   string `json:"error"`
}

// ClassifyHTTPError builds a KindHTTPStatus error for a non-2xx response.
//   - 4xx client errors (except 408 and 429) are irrecoverable
//   - 5xx server errors are recoverable
func ClassifyHTTPError(statusCode int, body, request string, underlyingErr error) *MicroBlogError {
	e := &MicroBlogError{
		Kind:       KindHTTPStatus,
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Request:    request,
		Body:       truncate(body),
		Underlying: underlyingErr,
	}
	var se serverError
	if err := json.Unmarshal([]byte(body), &se); err == nil {
		e.Message = se.Error
	}
	return e
}

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// 1xx/3xx that made it past the transport; be conservative.
		return Irrecoverable
	}
}

// NewHTTPError creates a classified error for a non-2xx response.
func NewHTTPError(statusCode int, body, request string) *MicroBlogError {
	underlyingErr := fmt.Errorf("%s failed: %s", request, http.StatusText(statusCode))
	return ClassifyHTTPError(statusCode, body, request, underlyingErr)
}

// NewNetworkError creates an error for transport-level failures.
// Network errors are recoverable as they may be transient.
func NewNetworkError(request string, err error) *MicroBlogError {
	return &MicroBlogError{
		Kind:       KindNetwork,
		Category:   Recoverable,
		Request:    request,
		Underlying: err,
	}
}

// NewDecodeError creates an error for a 2xx body that did not decode.
func NewDecodeError(statusCode int, body, request string, err error) *MicroBlogError {
	return &MicroBlogError{
		Kind:       KindDecode,
		Category:   Irrecoverable,
		StatusCode: statusCode,
		Request:    request,
		Body:       truncate(body),
		Underlying: fmt.Errorf("decode response: %w", err),
	}
}

func truncate(body string) string {
	body = strings.TrimSpace(body)
	if len(body) <= maxBodyLen {
		return body
	}
	cut := maxBodyLen
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
