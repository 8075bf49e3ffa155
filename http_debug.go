package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"

	"github.com/rs/zerolog/log"
)

// debugTransport logs each request and response dump at debug level.
//
// Enable with WithDebugLogging(true), FANFOU_DEBUG=true or DEBUG=true. Dumps
// include bodies and every header except Authorization, so keep it out of
// production.
type debugTransport struct{ base http.RoundTripper }

var authorizationLine = regexp.MustCompile(`(?mi)^(Authorization:)[^\r\n]*`)

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqID := req.Header.Get(RequestIDHeader)
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().
			Str("request_id", reqID).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_dump", string(redactAuthorization(reqDump))).
			Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().
			Str("request_id", reqID).
			Str("url", req.URL.String()).
			Int("status_code", resp.StatusCode).
			Str("response_dump", string(respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

func redactAuthorization(dump []byte) []byte {
	return authorizationLine.ReplaceAll(dump, []byte("$1 [redacted]"))
}

// debugLoggingRequested reports whether FANFOU_DEBUG=true or DEBUG=true.
func debugLoggingRequested() bool {
	return os.Getenv("FANFOU_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
