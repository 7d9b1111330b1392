package arangodb

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/collection"
	"github.com/kbukum/arangodb/cursor"
	"github.com/kbukum/arangodb/database"
	"github.com/kbukum/arangodb/document"
	"github.com/kbukum/arangodb/graph"
	"github.com/kbukum/arangodb/logger"
	"github.com/kbukum/arangodb/observability"
	"github.com/kbukum/arangodb/serialization"
	"github.com/kbukum/arangodb/transaction"
	"github.com/kbukum/arangodb/transport"
)

// Client is the entry point to one database.
type Client struct {
	api      *apiclient.Client
	log      *logger.Logger
	shutdown observability.ShutdownFunc

	Document    *document.Client
	Graph       *graph.Client
	Collection  *collection.Client
	Cursor      *cursor.Client
	Database    *database.Client
	Transaction *transaction.Client
}

type options struct {
	log           *logger.Logger
	transportOpts []transport.Option
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger used by the client and its transport.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTransportOptions passes options to the HTTP transport built by New.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) { o.transportOpts = append(o.transportOpts, opts...) }
}

// New validates cfg and creates a Client over an HTTP transport. When
// cfg.Observability is enabled it also installs the OTLP providers, which
// Close shuts down.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tc, err := cfg.TransportConfig()
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.New(&cfg.Logging, cfg.Name)
	}

	shutdown, err := observability.Init(context.Background(), cfg.Observability, o.log)
	if err != nil {
		return nil, err
	}
	tr, err := transport.NewHTTP(tc, append([]transport.Option{transport.WithLogger(o.log)}, o.transportOpts...)...)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}
	o.log.Debug("client created", logger.Fields(
		"endpoint", tc.Endpoint,
		logger.FieldDatabase, tr.Database(),
	))
	c := NewFromTransport(tr, WithLogger(o.log))
	c.shutdown = shutdown
	return c, nil
}

// NewFromTransport creates a Client over any Transport.
func NewFromTransport(t transport.Transport, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	api := apiclient.New(t, apiclient.WithLogger(o.log))
	return &Client{
		api:         api,
		log:         o.log.WithComponent("arangodb"),
		Document:    document.New(api),
		Graph:       graph.New(api),
		Collection:  collection.New(api),
		Cursor:      cursor.New(api),
		Database:    database.New(api),
		Transaction: transaction.New(api),
	}
}

// API returns the shared request pipeline for endpoints not wrapped here.
func (c *Client) API() *apiclient.Client {
	return c.api
}

// VersionInfo describes the server.
type VersionInfo struct {
	Server  string            `json:"server" validate:"required"`
	Version string            `json:"version" validate:"required"`
	License string            `json:"license"`
	Details map[string]string `json:"details,omitempty"`
}

type versionQuery struct {
	Details bool `query:"details,omitempty"`
}

// Version returns the server version. details adds build information.
func (c *Client) Version(ctx context.Context, details bool) (VersionInfo, error) {
	return apiclient.Send[VersionInfo](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         apiclient.Path("_api", "version"),
		Query:        serialization.EncodeQuery(versionQuery{Details: details}),
		DecodePolicy: serialization.DefaultPolicy,
	})
}

// CheckHealth probes the server with a version request.
func (c *Client) CheckHealth(ctx context.Context) observability.Health {
	ctx, span := observability.StartSpan(ctx, "arangodb.health")
	start := time.Now()
	info, err := c.Version(ctx, false)
	observability.EndSpan(span, err)

	h := observability.Health{Name: "arangodb", Details: map[string]string{
		"latency": time.Since(start).String(),
	}}
	if err != nil {
		c.log.WithContext(ctx).Warn("health check failed", logger.Fields(logger.FieldError, err.Error()))
		h.Status = observability.HealthStatusDown
		h.Message = err.Error()
		return h
	}
	h.Status = observability.HealthStatusUp
	h.Details["version"] = info.Version
	h.Details["license"] = info.License
	return h
}

// Close releases the transport and flushes telemetry installed by New.
func (c *Client) Close() error {
	err := c.api.Transport().Close()
	if c.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = errors.Join(err, c.shutdown(ctx))
	}
	return err
}

var _ observability.HealthChecker = (*Client)(nil)
