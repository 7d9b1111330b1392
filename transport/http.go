package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http2"

	"github.com/kbukum/arangodb/logger"
	"github.com/kbukum/arangodb/version"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-Id"

// HTTP is a Transport over net/http.
type HTTP struct {
	client  *http.Client
	config  Config
	prefix  string
	cb      *CircuitBreaker
	log     *logger.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	metrics *instruments
}

// Option configures an HTTP transport.
type Option func(*HTTP)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *HTTP) {
		if l != nil {
			h.log = l
		}
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *HTTP) {
		h.tracer = tp.Tracer(instrumentationName)
	}
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(h *HTTP) {
		h.meter = mp.Meter(instrumentationName)
	}
}

// WithRoundTripper replaces the underlying round tripper.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(h *HTTP) {
		h.client.Transport = rt
	}
}

// NewHTTP creates an HTTP transport with the given configuration.
func NewHTTP(cfg Config, opts ...Option) (*HTTP, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		rt.TLSClientConfig = tlsCfg
	}
	if cfg.HTTP2 {
		if err := http2.ConfigureTransport(rt); err != nil {
			return nil, fmt.Errorf("transport: configure http2: %w", err)
		}
	}

	h := &HTTP{
		client: &http.Client{Transport: rt, Timeout: cfg.Timeout},
		config: cfg,
		prefix: strings.TrimRight(cfg.Endpoint, "/"),
		log:    logger.Nop(),
		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
		meter:  otel.GetMeterProvider().Meter(instrumentationName),
	}
	if cfg.Database != "" {
		h.prefix += "/_db/" + cfg.Database
	}
	if cfg.CircuitBreaker != nil {
		h.cb = NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithComponent("transport").WithFields(logger.Fields(logger.FieldDatabase, cfg.Database))

	if h.metrics, err = newInstruments(h.meter); err != nil {
		return nil, err
	}
	return h, nil
}

// Do sends req, retrying retryable transport failures when configured.
func (h *HTTP) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, NewError(ErrCodeInvalidRequest, nil, errors.New("nil request"))
	}
	requestID := req.headers.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx, span := h.startSpan(ctx, req, requestID)
	defer span.End()

	start := time.Now()
	resp, attempts, err := h.send(ctx, req, requestID)
	h.observe(ctx, span, req, requestID, resp, err, attempts, time.Since(start))
	return resp, err
}

// send runs one or more attempts and reports how many were made.
func (h *HTTP) send(ctx context.Context, req *Request, requestID string) (*Response, int, error) {
	if h.config.Retry == nil {
		resp, err := h.attempt(ctx, req, requestID)
		return resp, 1, err
	}

	rc := h.config.Retry
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = rc.InitialBackoff
	b.MaxInterval = rc.MaxBackoff
	b.Multiplier = rc.Multiplier
	b.RandomizationFactor = rc.Jitter

	attempts := 0
	op := func() (*Response, error) {
		attempts++
		resp, err := h.attempt(ctx, req, requestID)
		if err != nil && !IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return resp, err
	}
	notify := func(err error, wait time.Duration) {
		h.log.WithContext(ctx).Debug("retrying request", logger.Fields(
			logger.FieldMethod, req.method,
			logger.FieldPath, req.path,
			logger.FieldRequestID, requestID,
			logger.FieldAttempt, attempts,
			logger.FieldError, err.Error(),
			"backoff_ms", wait.Milliseconds(),
		))
	}

	resp, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(rc.MaxAttempts)),
		backoff.WithNotify(notify),
	)
	if err != nil {
		return nil, attempts, classify(ctx, req, err)
	}
	return resp, attempts, nil
}

// attempt sends req once through the circuit breaker.
func (h *HTTP) attempt(ctx context.Context, req *Request, requestID string) (*Response, error) {
	if h.cb != nil && !h.cb.Allow() {
		return nil, NewError(ErrCodeCircuitOpen, req, ErrCircuitOpen)
	}

	resp, err := h.roundTrip(ctx, req, requestID)
	if h.cb != nil {
		h.cb.Record(breakerOutcome(err))
	}
	return resp, err
}

// breakerOutcome keeps caller-side failures from tripping the breaker.
func breakerOutcome(err error) error {
	if IsCanceled(err) || hasCode(err, ErrCodeInvalidRequest) {
		return nil
	}
	return err
}

func (h *HTTP) roundTrip(ctx context.Context, req *Request, requestID string) (*Response, error) {
	httpReq, err := h.buildRequest(ctx, req, requestID)
	if err != nil {
		return nil, NewError(ErrCodeInvalidRequest, req, err)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, classify(ctx, req, err)
	}
	return NewResponse(resp.StatusCode, resp.Header, resp.Body), nil
}

// buildRequest constructs an *http.Request from the transport config and req.
func (h *HTTP) buildRequest(ctx context.Context, req *Request, requestID string) (*http.Request, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, h.resolve(req.path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if len(req.query) > 0 {
		q := httpReq.URL.Query()
		for k, vs := range req.query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range h.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, vs := range req.headers {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	if req.body != nil && req.contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", version.UserAgent())
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderRequestID, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	if err := h.config.Auth.apply(httpReq); err != nil {
		return nil, err
	}
	return httpReq, nil
}

// resolve joins path onto the endpoint. Paths that already name a database
// (/_db/<name>/...) bypass the configured database.
func (h *HTTP) resolve(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if strings.HasPrefix(path, "/_db/") {
		return strings.TrimRight(h.config.Endpoint, "/") + path
	}
	return h.prefix + path
}

// Database returns the database requests are scoped to.
func (h *HTTP) Database() string {
	return h.config.Database
}

// Config returns the transport's configuration.
func (h *HTTP) Config() Config {
	return h.config
}

// CircuitState returns the breaker state, or StateClosed when disabled.
func (h *HTTP) CircuitState() State {
	if h.cb == nil {
		return StateClosed
	}
	return h.cb.State()
}

// Close releases idle connections.
func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
