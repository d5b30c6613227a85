// Package service implements the model listing forward-and-decode logic.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"openrouter-proxy-go/internal/config"
	"openrouter-proxy-go/internal/metrics"
	"openrouter-proxy-go/internal/model"
)

// allowedUpstreamHosts restricts which hosts the proxy will forward to.
var allowedUpstreamHosts = map[string]bool{
	"openrouter.ai": true,
}

// modelsPath is resolved against the upstream base URL.
const modelsPath = "models/"

const userAgent = "openrouter-proxy-go/1.0"

// errBodyTooLarge is wrapped in a DecodeError when the upstream body exceeds the configured cap.
var errBodyTooLarge = errors.New("upstream body exceeds max_body_bytes")

// Upstream performs one outbound HTTP call. The caller closes the response body.
type Upstream interface {
	Do(req *http.Request) (*model.UpstreamResponse, error)
}

// TransportError means the upstream call did not complete.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the upstream answered but its body is not a model listing.
// StatusCode is the upstream's status, kept for diagnostics only.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string { return "decode upstream response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// ListModelsResult is a decoded upstream listing together with the status it came with.
type ListModelsResult struct {
	StatusCode int
	Body       *model.ListModelsResponse
}

// ModelsService forwards model listing requests to OpenRouter.
type ModelsService struct {
	upstream     Upstream
	logger       *slog.Logger
	metrics      *metrics.Metrics
	modelsURL    *url.URL
	maxBodyBytes int64
}

// NewModelsService creates a ModelsService. The metrics parameter is optional.
func NewModelsService(up Upstream, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*ModelsService, error) {
	s, err := newModelsService(up, cfg, logger, m)
	if err != nil {
		return nil, err
	}
	if host := s.modelsURL.Hostname(); !allowedUpstreamHosts[host] {
		return nil, fmt.Errorf("upstream host %q is not in the allowlist", host)
	}
	return s, nil
}

// NewModelsServiceForTest creates a ModelsService without host allowlist validation.
// This is intended only for tests that use httptest servers on localhost.
func NewModelsServiceForTest(up Upstream, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*ModelsService, error) {
	return newModelsService(up, cfg, logger, m)
}

func newModelsService(up Upstream, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*ModelsService, error) {
	base, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base_url: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	return &ModelsService{
		upstream:     up,
		logger:       logger.With("component", "models_service"),
		metrics:      m,
		modelsURL:    base.ResolveReference(&url.URL{Path: modelsPath}),
		maxBodyBytes: cfg.Upstream.MaxBodyBytes,
	}, nil
}

// ModelsURL returns the upstream listing URL without a query.
func (s *ModelsService) ModelsURL() string {
	return s.modelsURL.String()
}

// ListModels performs exactly one upstream call for params and decodes the
// listing. It returns a *TransportError when the call fails and a
// *DecodeError when the body is not a model listing; in both cases the
// upstream status is not relayed. Any other outcome carries the upstream
// status unchanged, error statuses included.
func (s *ModelsService) ListModels(ctx context.Context, params model.ListModelsParams) (*ListModelsResult, error) {
	req, err := s.newRequest(ctx, params)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := s.upstream.Do(req)
	if err != nil {
		s.metrics.RecordFailure(metrics.FailureTransport)
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := s.decode(resp.Body)
	if err != nil {
		s.metrics.RecordFailure(metrics.FailureDecode)
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		s.logger.Warn("relaying upstream error status",
			"status", resp.StatusCode,
			"models", len(body.Data),
		)
	}

	return &ListModelsResult{StatusCode: resp.StatusCode, Body: body}, nil
}

func (s *ModelsService) newRequest(ctx context.Context, params model.ListModelsParams) (*http.Request, error) {
	u := *s.modelsURL
	u.RawQuery = params.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	s.logger.Debug("forwarding request", "url", u.Redacted())
	return req, nil
}

func (s *ModelsService) decode(r io.Reader) (*model.ListModelsResponse, error) {
	if s.maxBodyBytes > 0 {
		r = io.LimitReader(r, s.maxBodyBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if s.maxBodyBytes > 0 && int64(len(data)) > s.maxBodyBytes {
		return nil, errBodyTooLarge
	}

	var body model.ListModelsResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	if err := body.Validate(); err != nil {
		return nil, err
	}
	return &body, nil
}
