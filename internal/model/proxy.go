// Package model defines shared types for the proxy.
package model

import (
	"io"
	"net/http"
)

// UpstreamResponse is the raw outcome of one upstream call.
// The caller owns Body and must close it.
type UpstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}
