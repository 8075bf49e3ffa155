package api

import (
	"fmt"
	"net/http"
	"strings"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// errBody fails mid-read.
type errBody struct{}

func (errBody) Read([]byte) (int, error) { return 0, fmt.Errorf("connection reset") }
func (errBody) Close() error             { return nil }

type bodyErrRT struct{}

func (bodyErrRT) RoundTrip(r *http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: http.StatusOK, Body: errBody{}, Header: make(http.Header), Request: r}, nil
}

// usersJSON returns a JSON array of n user objects with ids u00..u(n-1).
func usersJSON(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"id":"u%02d","name":"User %d","screen_name":"user%d"}`, i, i, i)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// endlessRT answers every request with a 200 whose body never ends.
type endlessRT struct{}

type endlessBody struct{}

func (endlessBody) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = ' '
	}
	return len(p), nil
}
func (endlessBody) Close() error { return nil }

func (endlessRT) RoundTrip(r *http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: http.StatusOK, Body: endlessBody{}, Header: make(http.Header), Request: r}, nil
}
