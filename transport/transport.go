package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// Transport executes raw requests against a server.
type Transport interface {
	// Do sends req and returns the raw response. The caller owns the
	// response and must close it. Non-2xx statuses are not errors.
	Do(ctx context.Context, req *Request) (*Response, error)
	// Close releases idle connections and other resources.
	Close() error
}

// Request is an immutable HTTP request description. Build one with
// NewRequest; accessors return copies so a Request can be shared.
type Request struct {
	method      string
	path        string
	query       url.Values
	headers     http.Header
	body        []byte
	contentType string
}

// RequestOption configures a Request.
type RequestOption func(*Request)

// WithBody sets a copy of data as the request body, with its content type.
func WithBody(data []byte, contentType string) RequestOption {
	var body []byte
	if data != nil {
		body = make([]byte, len(data))
		copy(body, data)
	}
	return func(r *Request) {
		r.body = body
		r.contentType = contentType
	}
}

// WithQuery merges query parameters into the request.
func WithQuery(q url.Values) RequestOption {
	return func(r *Request) {
		for k, vs := range q {
			for _, v := range vs {
				r.query.Add(k, v)
			}
		}
	}
}

// WithHeader sets a request header, replacing any previous value.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.headers.Set(key, value)
	}
}

// NewRequest builds a request for method and path. Path is relative to the
// transport's database, e.g. "/_api/document/users/1".
func NewRequest(method, path string, opts ...RequestOption) *Request {
	r := &Request{
		method:  method,
		path:    path,
		query:   url.Values{},
		headers: http.Header{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Method returns the HTTP method.
func (r *Request) Method() string { return r.method }

// Path returns the request path.
func (r *Request) Path() string { return r.path }

// Query returns a copy of the query parameters.
func (r *Request) Query() url.Values {
	q := make(url.Values, len(r.query))
	for k, vs := range r.query {
		q[k] = append([]string(nil), vs...)
	}
	return q
}

// Header returns a copy of the request headers.
func (r *Request) Header() http.Header { return r.headers.Clone() }

// Body returns a copy of the request body, or nil.
func (r *Request) Body() []byte {
	if r.body == nil {
		return nil
	}
	return append([]byte(nil), r.body...)
}

// ContentType returns the body's content type.
func (r *Request) ContentType() string { return r.contentType }

// HasBody reports whether the request carries a body.
func (r *Request) HasBody() bool { return r.body != nil }

// With returns a copy of r with opts applied.
func (r *Request) With(opts ...RequestOption) *Request {
	c := &Request{
		method:      r.method,
		path:        r.path,
		query:       r.Query(),
		headers:     r.Header(),
		body:        r.body,
		contentType: r.contentType,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a raw server response. Body is unread; Close is safe to call
// more than once.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser

	closeOnce sync.Once
	closeErr  error
}

// NewResponse wraps a status, headers and body into a Response.
func NewResponse(status int, header http.Header, body io.ReadCloser) *Response {
	if header == nil {
		header = http.Header{}
	}
	if body == nil {
		body = http.NoBody
	}
	return &Response{StatusCode: status, Header: header.Clone(), Body: body}
}

// IsSuccess reports whether the status is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Close closes the body once.
func (r *Response) Close() error {
	if r == nil || r.Body == nil {
		return nil
	}
	r.closeOnce.Do(func() { r.closeErr = r.Body.Close() })
	return r.closeErr
}

// Get sends a GET request.
func Get(ctx context.Context, t Transport, path string, opts ...RequestOption) (*Response, error) {
	return t.Do(ctx, NewRequest(http.MethodGet, path, opts...))
}

// Post sends a POST request.
func Post(ctx context.Context, t Transport, path string, opts ...RequestOption) (*Response, error) {
	return t.Do(ctx, NewRequest(http.MethodPost, path, opts...))
}

// Put sends a PUT request.
func Put(ctx context.Context, t Transport, path string, opts ...RequestOption) (*Response, error) {
	return t.Do(ctx, NewRequest(http.MethodPut, path, opts...))
}

// Patch sends a PATCH request.
func Patch(ctx context.Context, t Transport, path string, opts ...RequestOption) (*Response, error) {
	return t.Do(ctx, NewRequest(http.MethodPatch, path, opts...))
}

// Delete sends a DELETE request. A body may be attached with WithBody.
func Delete(ctx context.Context, t Transport, path string, opts ...RequestOption) (*Response, error) {
	return t.Do(ctx, NewRequest(http.MethodDelete, path, opts...))
}
