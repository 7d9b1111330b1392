package cursor

import (
	"context"
	"net/http"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/errors"
	"github.com/kbukum/arangodb/serialization"
	"github.com/kbukum/arangodb/util"
)

// Policies used by the cursor endpoints.
var (
	BodyPolicy   = serialization.CamelCaseOmitNullsPolicy
	ResultPolicy = serialization.DefaultPolicy
)

// Client accesses the cursor endpoints of one database.
type Client struct {
	api *apiclient.Client
}

// New creates a cursor client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Create runs a query and returns its first batch.
func Create[T any](ctx context.Context, c *Client, body CreateBody) (Response[T], error) {
	if body.Query == "" {
		return Response[T]{}, errors.NewValidationError("query", "", "must not be empty")
	}
	wire := wireBody{CreateBody: body}
	if body.TTL > 0 {
		ttl := body.TTL.Seconds()
		wire.TTL = &ttl
	}
	return apiclient.Send[Response[T]](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         apiclient.Path("_api", "cursor"),
		Body:         wire,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
}

// Next reads the next batch of cursor id.
func Next[T any](ctx context.Context, c *Client, id string) (Response[T], error) {
	if id == "" {
		return Response[T]{}, errors.NewValidationError("cursor id", "", "must not be empty")
	}
	return apiclient.Send[Response[T]](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         apiclient.Path("_api", "cursor", id),
		DecodePolicy: ResultPolicy,
	})
}

// Delete releases cursor id before it is exhausted.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("cursor id", "", "must not be empty")
	}
	return apiclient.SendNoContent(ctx, c.api, apiclient.Call{
		Method: http.MethodDelete,
		Path:   apiclient.Path("_api", "cursor", id),
	})
}

// preallocBatches bounds how far ahead of the first batch ReadAll trusts the
// reported count when sizing its result.
const preallocBatches = 4

// ReadAll runs a query and collects every batch. If a batch fails the
// cursor is released before the error is returned.
func ReadAll[T any](ctx context.Context, c *Client, body CreateBody) ([]T, error) {
	resp, err := Create[T](ctx, c, body)
	if err != nil {
		return nil, err
	}
	capacity := min(util.Deref(resp.Count), int64(preallocBatches*len(resp.Result)))
	out := make([]T, 0, max(len(resp.Result), int(capacity)))
	out = append(out, resp.Result...)
	for resp.HasMore {
		id := resp.ID
		resp, err = Next[T](ctx, c, id)
		if err != nil {
			_ = c.Delete(context.WithoutCancel(ctx), id)
			return nil, err
		}
		out = append(out, resp.Result...)
	}
	return out, nil
}
