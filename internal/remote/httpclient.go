package remote

import (
	"net"
	"net/http"
	"time"
)

// newAPIHTTPClient creates an HTTP client tuned for short JSON API calls
// from a device that is frequently on flaky networks. Per-call deadlines
// come from the request context; the client timeout is only a backstop.
func newAPIHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
