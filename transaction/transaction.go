package transaction

import (
	"context"
	"net/http"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/errors"
	"github.com/kbukum/arangodb/serialization"
)

// Policies used by the transaction endpoints.
var (
	BodyPolicy   = serialization.CamelCaseOmitNullsPolicy
	ResultPolicy = serialization.DefaultPolicy
)

// Stream transaction states.
const (
	StatusRunning   = "running"
	StatusCommitted = "committed"
	StatusAborted   = "aborted"
)

// Collections declares the collections a transaction locks.
type Collections struct {
	Read      []string
	Write     []string
	Exclusive []string
}

// ExecuteBody is the request body of Execute.
type ExecuteBody struct {
	Collections        Collections
	Action             string
	Params             any
	WaitForSync        *bool
	AllowImplicit      *bool
	LockTimeout        *int
	MaxTransactionSize *int64
}

// BeginBody is the request body of Begin.
type BeginBody struct {
	Collections        Collections
	WaitForSync        *bool
	AllowImplicit      *bool
	LockTimeout        *int
	MaxTransactionSize *int64
}

// Status is the state of a stream transaction.
type Status struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status"`
}

type statusResponse struct {
	apiclient.ResponseBase
	Result Status `json:"result"`
}

// ExecuteResponse is the result of Execute.
type ExecuteResponse[T any] struct {
	apiclient.ResponseBase
	Result T `json:"result"`
}

// Client accesses the transaction endpoints of one database.
type Client struct {
	api *apiclient.Client
}

// New creates a transaction client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// WithID returns a context whose requests run inside stream transaction id.
func WithID(ctx context.Context, id string) context.Context {
	return apiclient.WithTransactionID(ctx, id)
}

// Execute runs a JavaScript transaction and returns its result.
func Execute[T any](ctx context.Context, c *Client, body ExecuteBody) (T, error) {
	var zero T
	if body.Action == "" {
		return zero, errors.NewValidationError("action", "", "must not be empty")
	}
	resp, err := apiclient.Send[ExecuteResponse[T]](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         apiclient.Path("_api", "transaction"),
		Body:         body,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
	if err != nil {
		return zero, err
	}
	return resp.Result, nil
}

// Begin starts a stream transaction.
func (c *Client) Begin(ctx context.Context, body BeginBody) (Status, error) {
	return c.status(ctx, apiclient.Call{
		Method:       http.MethodPost,
		Path:         apiclient.Path("_api", "transaction", "begin"),
		Body:         body,
		EncodePolicy: BodyPolicy,
	})
}

// Commit commits the stream transaction id.
func (c *Client) Commit(ctx context.Context, id string) (Status, error) {
	return c.byID(ctx, http.MethodPut, id)
}

// Abort rolls back the stream transaction id.
func (c *Client) Abort(ctx context.Context, id string) (Status, error) {
	return c.byID(ctx, http.MethodDelete, id)
}

// Status returns the state of the stream transaction id.
func (c *Client) Status(ctx context.Context, id string) (Status, error) {
	return c.byID(ctx, http.MethodGet, id)
}

func (c *Client) byID(ctx context.Context, method, id string) (Status, error) {
	if id == "" {
		return Status{}, errors.NewValidationError("transaction id", "", "must not be empty")
	}
	return c.status(ctx, apiclient.Call{
		Method: method,
		Path:   apiclient.Path("_api", "transaction", id),
	})
}

func (c *Client) status(ctx context.Context, call apiclient.Call) (Status, error) {
	call.DecodePolicy = ResultPolicy
	resp, err := apiclient.Send[statusResponse](ctx, c.api, call)
	return resp.Result, err
}
