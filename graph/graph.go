package graph

import (
	"context"
	"net/http"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/serialization"
	"github.com/kbukum/arangodb/validation"
)

// Policies used by the graph endpoints.
var (
	BodyPolicy   = serialization.CamelCaseOmitNullsPolicy
	ResultPolicy = serialization.DefaultPolicy
)

// Client accesses the graph endpoints of one database.
type Client struct {
	api *apiclient.Client
}

// New creates a graph client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func graphPath(name string, rest ...string) (string, error) {
	if err := validation.ValidateGraphName(name); err != nil {
		return "", err
	}
	return apiclient.Path(append([]string{"_api", "gharial", name}, rest...)...), nil
}

// Create defines a new graph.
func (c *Client) Create(ctx context.Context, body CreateBody, q *CreateQuery) (Graph, error) {
	if err := validation.ValidateGraphName(body.Name); err != nil {
		return Graph{}, err
	}
	for _, def := range body.EdgeDefinitions {
		if err := validation.ValidateCollectionName(def.Collection); err != nil {
			return Graph{}, err
		}
	}
	resp, err := apiclient.Send[GraphResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         apiclient.Path("_api", "gharial"),
		Query:        serialization.EncodeQuery(q),
		Body:         body,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
	return resp.Graph, err
}

// List returns every graph of the database.
func (c *Client) List(ctx context.Context) ([]Graph, error) {
	resp, err := apiclient.Send[ListResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         apiclient.Path("_api", "gharial"),
		DecodePolicy: ResultPolicy,
	})
	return resp.Graphs, err
}

// Get returns the graph name.
func (c *Client) Get(ctx context.Context, name string) (Graph, error) {
	path, err := graphPath(name)
	if err != nil {
		return Graph{}, err
	}
	resp, err := apiclient.Send[GraphResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         path,
		DecodePolicy: ResultPolicy,
	})
	return resp.Graph, err
}

// Delete removes the graph name. The server answers 202 with removed set.
func (c *Client) Delete(ctx context.Context, name string, q *DeleteQuery) (DeleteResponse, error) {
	path, err := graphPath(name)
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

// VertexCollections lists the vertex collections of graph name.
func (c *Client) VertexCollections(ctx context.Context, name string) ([]string, error) {
	return c.collections(ctx, name, "vertex")
}

// EdgeCollections lists the edge collections of graph name.
func (c *Client) EdgeCollections(ctx context.Context, name string) ([]string, error) {
	return c.collections(ctx, name, "edge")
}

func (c *Client) collections(ctx context.Context, name, kind string) ([]string, error) {
	path, err := graphPath(name, kind)
	if err != nil {
		return nil, err
	}
	resp, err := apiclient.Send[CollectionsResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         path,
		DecodePolicy: ResultPolicy,
	})
	return resp.Collections, err
}

// AddVertexCollection adds collection to graph name as an orphan vertex
// collection and returns the updated graph.
func (c *Client) AddVertexCollection(ctx context.Context, name, collection string) (Graph, error) {
	path, err := graphPath(name, "vertex")
	if err != nil {
		return Graph{}, err
	}
	if err := validation.ValidateCollectionName(collection); err != nil {
		return Graph{}, err
	}
	resp, err := apiclient.Send[GraphResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         path,
		Body:         struct{ Collection string }{collection},
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
	return resp.Graph, err
}

// AddEdgeDefinition adds def to graph name and returns the updated graph.
func (c *Client) AddEdgeDefinition(ctx context.Context, name string, def EdgeDefinition) (Graph, error) {
	path, err := graphPath(name, "edge")
	if err != nil {
		return Graph{}, err
	}
	if err := validation.ValidateCollectionName(def.Collection); err != nil {
		return Graph{}, err
	}
	resp, err := apiclient.Send[GraphResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         path,
		Body:         def,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
	return resp.Graph, err
}

// CreateEdge inserts edge into the edge collection of graph name. The edge
// type must carry _from and _to.
func CreateEdge[T any](ctx context.Context, c *Client, name, collection string, edge T, q *WriteQuery) (EdgeResponse[T], error) {
	path, err := graphPath(name, "edge", collection)
	if err != nil {
		return EdgeResponse[T]{}, err
	}
	if err := validation.ValidateCollectionName(collection); err != nil {
		return EdgeResponse[T]{}, err
	}
	return apiclient.Send[EdgeResponse[T]](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         path,
		Query:        serialization.EncodeQuery(q),
		Body:         edge,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
}

// CreateVertex inserts vertex into the vertex collection of graph name.
func CreateVertex[T any](ctx context.Context, c *Client, name, collection string, vertex T, q *WriteQuery) (VertexResponse[T], error) {
	path, err := graphPath(name, "vertex", collection)
	if err != nil {
		return VertexResponse[T]{}, err
	}
	if err := validation.ValidateCollectionName(collection); err != nil {
		return VertexResponse[T]{}, err
	}
	return apiclient.Send[VertexResponse[T]](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         path,
		Query:        serialization.EncodeQuery(q),
		Body:         vertex,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
}
