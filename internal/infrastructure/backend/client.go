// Package backend talks to the portfolio backend REST API over fasthttp.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/pkg/apperror"
	"portfolio_dashboard/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rateLimitMarker is what the backend puts in the error body of a 500 when
// its balance provider quota is exhausted.
const rateLimitMarker = "Internal Server Error"

// Options configures a Client.
type Options struct {
	BaseURL            string
	Timeout            time.Duration
	RateLimitPerSecond float64
	Burst              int
	MaxConnsPerHost    int
}

// clientImpl implements port.BackendClient.
type clientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a backend client.
func NewClient(opts Options, logger *zap.Logger) port.BackendClient {
	limit := rate.Inf
	if opts.RateLimitPerSecond > 0 {
		limit = rate.Limit(opts.RateLimitPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &clientImpl{
		client: &fasthttp.Client{
			Name:            "portfolio-dashboard",
			MaxConnsPerHost: opts.MaxConnsPerHost,
		},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.Named("BackendClient"),
	}
}

// call describes one backend request.
type call struct {
	endpoint string // metrics label
	method   string
	path     string
	sess     *session.Session
	body     any
}

// errorBody is the error payload shape used by the backend.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do executes the call and returns the raw response body of a 2xx response.
func (c *clientImpl) do(ctx context.Context, cl call) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperror.ErrUpstream(fmt.Errorf("rate limiter wait for %s: %w", cl.endpoint, err))
	}

	requestURL := c.baseURL + cl.path
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(cl.method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if cl.sess != nil {
		req.Header.Set(fasthttp.HeaderAuthorization, cl.sess.AuthorizationHeader())
	}
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", cl.endpoint, err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBodyRaw(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	started := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.ObserveBackendRequest(cl.endpoint, "error", started)
		c.logger.Error("Backend request failed", zap.String("endpoint", cl.endpoint), zap.String("url", requestURL), zap.Error(err))
		return nil, apperror.ErrUpstream(fmt.Errorf("request to %s: %w", cl.path, err))
	}

	status := resp.StatusCode()
	metrics.ObserveBackendRequest(cl.endpoint, strconv.Itoa(status), started)

	// The body is only valid until the response is released.
	rawBody := append([]byte(nil), resp.Body()...)
	if status >= 200 && status < 300 {
		c.logger.Debug("Backend request succeeded", zap.String("endpoint", cl.endpoint), zap.Int("statusCode", status))
		return rawBody, nil
	}

	c.logger.Warn("Backend returned an error status",
		zap.String("endpoint", cl.endpoint),
		zap.Int("statusCode", status),
		zap.ByteString("responseBody", truncate(rawBody, 512)),
	)
	return nil, mapStatus(status, rawBody)
}

// getJSON performs the call and decodes a 2xx body into out.
func (c *clientImpl) getJSON(ctx context.Context, cl call, out any) error {
	raw, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Error("Failed to decode backend response",
			zap.String("endpoint", cl.endpoint),
			zap.ByteString("responseBody", truncate(raw, 512)),
			zap.Error(err))
		return apperror.ErrUpstream(fmt.Errorf("decode %s response: %w", cl.endpoint, err))
	}
	return nil
}

// mapStatus turns a non-2xx response into an AppError.
func mapStatus(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	message := eb.Message
	if message == "" {
		message = eb.Error
	}

	switch {
	case status == http.StatusUnauthorized:
		return apperror.ErrSessionExpired()
	case status == http.StatusForbidden:
		return apperror.ErrForbidden()
	case status == http.StatusInternalServerError && strings.Contains(eb.Error, rateLimitMarker):
		return apperror.ErrRateLimited(fmt.Errorf("backend status %d: %s", status, eb.Error))
	case status >= 500:
		return apperror.ErrUpstream(fmt.Errorf("backend status %d: %s", status, message))
	default:
		return apperror.ErrUpstreamRejected(status, message)
	}
}

// decodeList decodes a JSON array. Any other payload is treated as an empty
// list and logged, as the admin and wallet endpoints sometimes answer with an
// object.
func decodeList[T any](logger *zap.Logger, endpoint string, raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		logger.Warn("Expected a JSON array, using an empty list",
			zap.String("endpoint", endpoint),
			zap.ByteString("responseBody", truncate(trimmed, 256)))
		return []T{}, nil
	}
	out := make([]T, 0)
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, apperror.ErrUpstream(fmt.Errorf("decode %s list: %w", endpoint, err))
	}
	return out, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
