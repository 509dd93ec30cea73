package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/metrics"
	"github.com/MKhiriev/go-session-keeper/internal/utils"
	"github.com/MKhiriev/go-session-keeper/models"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"
)

// HTTPServerAdapter is the HTTP/JSON implementation of [API]. It is safe for
// concurrent use.
type HTTPServerAdapter struct {
	client   *utils.HTTPClient
	sessions SessionSource
	limiter  *rate.Limiter
	ids      utils.IDGenerator
	metrics  metrics.Recorder

	logger *logger.Logger
}

var _ API = (*HTTPServerAdapter)(nil)

// NewHTTPServerAdapter constructs the adapter. It normalises and validates
// the base URL from adapterCfg.HTTPAddress and configures the underlying HTTP
// client with the resolved base URL and request timeout. A positive
// adapterCfg.RateLimit enables a client-side token bucket.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, sessions SessionSource, recorder metrics.Recorder, log *logger.Logger) (*HTTPServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	if recorder == nil {
		recorder = metrics.Nop{}
	}

	h := &HTTPServerAdapter{
		client:   utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		sessions: sessions,
		ids:      utils.NewUUIDGenerator(),
		metrics:  recorder,
		logger:   log.WithComponent("adapter"),
	}

	if adapterCfg.RateLimit > 0 {
		burst := max(adapterCfg.RateBurst, 1)
		h.limiter = rate.NewLimiter(rate.Limit(adapterCfg.RateLimit), burst)
	}

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Request sends desc through api and decodes the response into a new T.
func Request[T any](ctx context.Context, api API, desc models.RequestDescriptor) (T, error) {
	var out T
	err := api.Do(ctx, desc, &out)
	return out, err
}

// Do implements [API].
//
// When desc requires authentication and the session holds a credential, it is
// sent as "Authorization: Bearer <credential>". A missing credential is not an
// error here; the request goes out unauthenticated and the backend decides.
// A 401 response to a request that carried a credential invalidates the
// session. Nothing is retried.
func (h *HTTPServerAdapter) Do(ctx context.Context, desc models.RequestDescriptor, out any) error {
	method := desc.Method
	if method == "" {
		method = models.MethodGet
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	var credential string
	if desc.RequiresAuth() {
		credential = h.sessions.Current().Credential
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeaders(h.buildHeaders(ctx, desc.Headers, credential))

	if desc.Body != nil {
		payload, err := json.Marshal(desc.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncodeRequest, err)
		}
		req.SetBody(payload)
	}

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return &NetworkError{Err: err}
		}
	}

	start := time.Now()
	resp, err := req.Execute(string(method), desc.Endpoint)
	if err != nil {
		h.metrics.RecordAPIRequest(string(method), 0, time.Since(start))
		h.logger.Err(err).
			Str("func", "HTTPServerAdapter.Do").
			Str("method", string(method)).
			Str("endpoint", desc.Endpoint).
			Msg("transport call failed")
		return &NetworkError{Err: err}
	}

	status := resp.StatusCode()
	h.metrics.RecordAPIRequest(string(method), status, time.Since(start))
	h.logger.Debug().
		Str("func", "HTTPServerAdapter.Do").
		Str("method", string(method)).
		Str("endpoint", desc.Endpoint).
		Str("request_id", resp.Request.Header.Get(headerRequestID)).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("request finished")

	if status == http.StatusUnauthorized && credential != "" {
		h.invalidate(ctx, credential, desc.Endpoint)
	}

	parsed, err := parseBody(status, resp.Body())
	if err != nil {
		return err
	}
	if err = mapHTTPError(status, parsed); err != nil {
		return err
	}

	if out == nil || parsed == nil {
		return nil
	}
	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return &MalformedResponseError{Status: status, Err: err}
	}
	return nil
}

// buildHeaders merges extra over the defaults. The computed Authorization
// header always wins.
func (h *HTTPServerAdapter) buildHeaders(ctx context.Context, extra map[string]string, credential string) map[string]string {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.ids.Generate()
	}

	headers := map[string]string{
		headerContentType: contentTypeJSON,
		headerAccept:      contentTypeJSON,
		headerRequestID:   requestID,
	}
	for name, value := range extra {
		name = http.CanonicalHeaderKey(name)
		if name == headerAuthorization && credential != "" {
			continue
		}
		headers[name] = value
	}
	if credential != "" {
		headers[headerAuthorization] = "Bearer " + credential
	}

	return headers
}

// invalidate runs detached from ctx so an abandoned caller cannot keep a
// rejected credential alive.
func (h *HTTPServerAdapter) invalidate(ctx context.Context, credential, endpoint string) {
	reason := fmt.Errorf("%w: %s", ErrUnauthorized, endpoint)
	if err := h.sessions.Invalidate(context.WithoutCancel(ctx), credential, reason); err != nil {
		h.logger.Err(err).Str("func", "HTTPServerAdapter.invalidate").Msg("failed to invalidate session")
	}
}
