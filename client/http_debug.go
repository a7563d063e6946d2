package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
)

// debugTransport dumps requests and responses at debug level.
//
// Enable with CAPYDIARY_DEBUG=true or DEBUG=true, or WithDebugLogging.
// Dumps contain the Authorization header and entry text.
type debugTransport struct {
	base http.RoundTripper
	log  *zerolog.Logger
}

func (dt *debugTransport) next() http.RoundTripper {
	if dt.base == nil {
		return http.DefaultTransport
	}
	return dt.base
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	l := dt.log
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		l.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_id", req.Header.Get("X-Request-ID")).
			Str("request_dump", string(reqDump)).
			Msg("HTTP request")
	}

	resp, err := dt.next().RoundTrip(req)
	if err != nil {
		l.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		l.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("status_code", resp.StatusCode).
			Str("response_dump", string(respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether CAPYDIARY_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("CAPYDIARY_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
