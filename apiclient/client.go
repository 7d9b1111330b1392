package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/kbukum/arangodb/logger"
	"github.com/kbukum/arangodb/serialization"
	"github.com/kbukum/arangodb/transport"
)

// HeaderTransactionID binds a request to a stream transaction.
const HeaderTransactionID = "x-arango-trx-id"

// Client sends Calls through a transport.
type Client struct {
	transport transport.Transport
	log       *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Client over t.
func New(t transport.Transport, opts ...Option) *Client {
	c := &Client{transport: t, log: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("apiclient")
	return c
}

// Transport returns the underlying transport.
func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Call describes one REST endpoint invocation.
type Call struct {
	// Method is the HTTP method.
	Method string
	// Path is the escaped request path; build it with Path.
	Path string
	// Query holds query parameters, typically from serialization.EncodeQuery.
	Query url.Values
	// Headers are added to the request.
	Headers http.Header
	// Body is encoded under EncodePolicy. Nil sends no body.
	Body any
	// EncodePolicy governs the request body.
	EncodePolicy serialization.Policy
	// DecodePolicy governs the success body.
	DecodePolicy serialization.Policy
}

// Do encodes and sends call. A non-success status is translated and
// returned as an error; on success the caller owns the response.
func (c *Client) Do(ctx context.Context, call Call) (*transport.Response, error) {
	req, err := newRequest(ctx, call)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		err := TranslateError(resp)
		c.log.WithContext(ctx).Debug("server rejected request", logger.Fields(
			logger.FieldMethod, call.Method,
			logger.FieldPath, call.Path,
			logger.FieldStatus, resp.StatusCode,
			logger.FieldError, err.Error(),
		))
		return nil, err
	}
	return resp, nil
}

// newRequest builds the transport request for call. Encoding failures are
// returned before anything is sent.
func newRequest(ctx context.Context, call Call) (*transport.Request, error) {
	var opts []transport.RequestOption
	if call.Body != nil {
		content, err := serialization.Encode(call.Body, call.EncodePolicy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, transport.WithBody(content.Data, content.ContentType))
	}
	if len(call.Query) > 0 {
		opts = append(opts, transport.WithQuery(call.Query))
	}
	for k, vs := range call.Headers {
		for _, v := range vs {
			opts = append(opts, transport.WithHeader(k, v))
		}
	}
	if id, ok := TransactionID(ctx); ok && call.Headers.Get(HeaderTransactionID) == "" {
		opts = append(opts, transport.WithHeader(HeaderTransactionID, id))
	}
	return transport.NewRequest(call.Method, call.Path, opts...), nil
}

// Send executes call and decodes the success body into a new T.
func Send[T any](ctx context.Context, c *Client, call Call) (T, error) {
	var out T
	if err := SendInto(ctx, c, call, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// SendInto executes call and decodes the success body into dst.
func SendInto(ctx context.Context, c *Client, call Call, dst any) error {
	resp, err := c.Do(ctx, call)
	if err != nil {
		return err
	}
	defer resp.Close()
	return serialization.DecodeInto(resp.Body, call.DecodePolicy, dst)
}

// SendNoContent executes call and discards the success body.
func SendNoContent(ctx context.Context, c *Client, call Call) error {
	resp, err := c.Do(ctx, call)
	if err != nil {
		return err
	}
	serialization.Discard(resp.Body)
	return resp.Close()
}

// Path joins escaped segments into an absolute request path.
//
//	Path("_api", "document", "users", "a/b") == "/_api/document/users/a%2Fb"
func Path(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

type trxKey struct{}

// WithTransactionID returns a context whose requests run inside the stream
// transaction id.
func WithTransactionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, trxKey{}, id)
}

// TransactionID returns the stream transaction bound to ctx, if any.
func TransactionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(trxKey{}).(string)
	return id, ok && id != ""
}
