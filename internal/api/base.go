package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fanfou-go/client/internal/errors"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes one GET against the API: the operation name used for
// metrics, the path relative to the base URL and the query parameters.
type Request struct {
	Operation string
	Path      string
	Query     url.Values
}

// validator is implemented by response types that can detect partial objects.
type validator interface {
	Validate() error
}

// Execute performs req and decodes the JSON body into out. Any failure after
// the context check is a *errors.MicroBlogError. On success the response
// headers are returned so callers can pick up paging metadata.
func Execute(ctx context.Context, hc HTTPClient, baseURL string, req Request, out any) (http.Header, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := strings.TrimRight(baseURL, "/") + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", req.Operation, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := hc.Do(httpReq)
	if err != nil {
		observe(req.Operation, outcomeNetwork, start)
		return nil, errors.NewNetworkError(req.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		observe(req.Operation, outcomeNetwork, start)
		return nil, errors.NewNetworkError(req.Path, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(req.Operation, outcomeHTTPStatus, start)
		return nil, errors.NewHTTPError(resp.StatusCode, string(body), req.Path)
	}

	if len(body) > maxResponseBytes {
		observe(req.Operation, outcomeDecode, start)
		return nil, errors.NewDecodeError(resp.StatusCode, string(body[:512]), req.Path,
			fmt.Errorf("response body exceeds %d bytes", maxResponseBytes))
	}
	if err := decode(body, out); err != nil {
		observe(req.Operation, outcomeDecode, start)
		return nil, errors.NewDecodeError(resp.StatusCode, string(body), req.Path, err)
	}
	observe(req.Operation, outcomeOK, start)
	return resp.Header, nil
}

// decode requires exactly one non-null JSON value in body.
func decode(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty body")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("null body")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(out); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after JSON value")
	}
	if v, ok := out.(validator); ok {
		return v.Validate()
	}
	return nil
}
