package collection

import (
	"context"
	"net/http"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/serialization"
	"github.com/kbukum/arangodb/validation"
)

// Policies used by the collection endpoints.
var (
	BodyPolicy   = serialization.CamelCaseOmitNullsPolicy
	ResultPolicy = serialization.DefaultPolicy
)

// Client accesses the collection endpoints of one database.
type Client struct {
	api *apiclient.Client
}

// New creates a collection client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func collectionPath(name string, rest ...string) (string, error) {
	if err := validation.ValidateCollectionName(name); err != nil {
		return "", err
	}
	return apiclient.Path(append([]string{"_api", "collection", name}, rest...)...), nil
}

// Create creates a collection. A zero Type creates a document collection.
func (c *Client) Create(ctx context.Context, body CreateBody, q *CreateQuery) (Info, error) {
	if err := validation.ValidateCollectionName(body.Name); err != nil {
		return Info{}, err
	}
	if body.Type == 0 {
		body.Type = TypeDocument
	}
	return apiclient.Send[Info](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         apiclient.Path("_api", "collection"),
		Query:        serialization.EncodeQuery(q),
		Body:         body,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
}

// List returns the collections of the database.
func (c *Client) List(ctx context.Context, q *ListQuery) ([]Summary, error) {
	resp, err := apiclient.Send[ListResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         apiclient.Path("_api", "collection"),
		Query:        serialization.EncodeQuery(q),
		DecodePolicy: ResultPolicy,
	})
	return resp.Result, err
}

// Get returns the collection name.
func (c *Client) Get(ctx context.Context, name string) (Info, error) {
	path, err := collectionPath(name)
	if err != nil {
		return Info{}, err
	}
	return apiclient.Send[Info](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         path,
		DecodePolicy: ResultPolicy,
	})
}

// Delete drops the collection name.
func (c *Client) Delete(ctx context.Context, name string, q *DeleteQuery) (DeleteResponse, error) {
	path, err := collectionPath(name)
	if err != nil {
		return DeleteResponse{}, err
	}
	return apiclient.Send[DeleteResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodDelete,
		Path:         path,
		Query:        serialization.EncodeQuery(q),
		DecodePolicy: ResultPolicy,
	})
}

// Truncate removes every document of the collection name.
func (c *Client) Truncate(ctx context.Context, name string) (Info, error) {
	path, err := collectionPath(name, "truncate")
	if err != nil {
		return Info{}, err
	}
	return apiclient.Send[Info](ctx, c.api, apiclient.Call{
		Method:       http.MethodPut,
		Path:         path,
		DecodePolicy: ResultPolicy,
	})
}

// Count returns the number of documents in the collection name.
func (c *Client) Count(ctx context.Context, name string) (int64, error) {
	path, err := collectionPath(name, "count")
	if err != nil {
		return 0, err
	}
	resp, err := apiclient.Send[CountResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         path,
		DecodePolicy: ResultPolicy,
	})
	return resp.Count, err
}
