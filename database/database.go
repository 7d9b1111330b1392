package database

import (
	"context"
	"net/http"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/serialization"
	"github.com/kbukum/arangodb/validation"
)

// SystemDatabase is the database that administers all others.
const SystemDatabase = "_system"

// Policies used by the database endpoints.
var (
	BodyPolicy   = serialization.CamelCaseOmitNullsPolicy
	ResultPolicy = serialization.DefaultPolicy
)

// User is an initial user of a new database.
type User struct {
	Username string
	Passwd   string `json:"passwd,omitempty"`
	Active   *bool
	Extra    map[string]any
}

// Options are the cluster defaults of a new database.
type Options struct {
	Sharding          string `json:",omitempty"`
	ReplicationFactor any
	WriteConcern      *int
}

// CreateBody is the request body of Create.
type CreateBody struct {
	Name    string
	Options *Options
	Users   []User
}

// Info describes the current database.
type Info struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Path     string `json:"path"`
	IsSystem bool   `json:"isSystem"`
}

type boolResponse struct {
	apiclient.ResponseBase
	Result bool `json:"result"`
}

type listResponse struct {
	apiclient.ResponseBase
	Result []string `json:"result"`
}

type infoResponse struct {
	apiclient.ResponseBase
	Result Info `json:"result"`
}

// Client accesses the database endpoints.
type Client struct {
	api *apiclient.Client
}

// New creates a database client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func systemPath(segments ...string) string {
	return apiclient.Path(append([]string{"_db", SystemDatabase, "_api", "database"}, segments...)...)
}

// Create creates a database.
func (c *Client) Create(ctx context.Context, body CreateBody) (bool, error) {
	if err := validation.ValidateDatabaseName(body.Name); err != nil {
		return false, err
	}
	resp, err := apiclient.Send[boolResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodPost,
		Path:         systemPath(),
		Body:         body,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	})
	return resp.Result, err
}

// List returns the names of all databases.
func (c *Client) List(ctx context.Context) ([]string, error) {
	resp, err := apiclient.Send[listResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         systemPath(),
		DecodePolicy: ResultPolicy,
	})
	return resp.Result, err
}

// ListUser returns the databases the current user can access.
func (c *Client) ListUser(ctx context.Context) ([]string, error) {
	resp, err := apiclient.Send[listResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         apiclient.Path("_api", "database", "user"),
		DecodePolicy: ResultPolicy,
	})
	return resp.Result, err
}

// Current describes the database the client is scoped to.
func (c *Client) Current(ctx context.Context) (Info, error) {
	resp, err := apiclient.Send[infoResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodGet,
		Path:         apiclient.Path("_api", "database", "current"),
		DecodePolicy: ResultPolicy,
	})
	return resp.Result, err
}

// Delete drops the database name.
func (c *Client) Delete(ctx context.Context, name string) (bool, error) {
	if err := validation.ValidateDatabaseName(name); err != nil {
		return false, err
	}
	resp, err := apiclient.Send[boolResponse](ctx, c.api, apiclient.Call{
		Method:       http.MethodDelete,
		Path:         systemPath(name),
		DecodePolicy: ResultPolicy,
	})
	return resp.Result, err
}
