package utils

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Extractor derives the rate limiting key from an HTTP request. Anything on
// the request that identifies the client can serve as the key (headers,
// authentication info, the peer address); implementations must not read the
// request body.
type Extractor interface {
	Extract(r *http.Request) (string, error)
}

type httpHeaderExtractor struct {
	headers []string
}

// NewHTTPHeadersExtractor builds the key by joining the values of the given
// headers. Use headers that are guaranteed to be unique per client.
func NewHTTPHeadersExtractor(headers ...string) Extractor {
	return &httpHeaderExtractor{headers: headers}
}

// Extract joins the configured header values into a single key. A missing or
// empty header fails extraction rather than producing a partial key.
func (h *httpHeaderExtractor) Extract(r *http.Request) (string, error) {
	values := make([]string, 0, len(h.headers))

	for _, key := range h.headers {
		value := strings.TrimSpace(r.Header.Get(key))
		if value == "" {
			return "", fmt.Errorf("the header %v must have a value set", key)
		}
		values = append(values, value)
	}

	return strings.Join(values, "-"), nil
}

type remoteAddrExtractor struct{}

// NewRemoteAddrExtractor keys requests by the peer address, with the port
// stripped so a reconnecting client keeps the same key.
func NewRemoteAddrExtractor() Extractor {
	return remoteAddrExtractor{}
}

func (remoteAddrExtractor) Extract(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr may already be a bare host
		host = r.RemoteAddr
	}
	if host == "" {
		return "", fmt.Errorf("request has no remote address")
	}
	return host, nil
}
