package document

import (
	"context"
	"net/http"
	"strings"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/serialization"
	"github.com/kbukum/arangodb/validation"
)

// Policies used by the document endpoints.
var (
	// BodyPolicy writes documents with their declared names and explicit nulls.
	BodyPolicy = serialization.DefaultPolicy
	// PatchPolicy leaves nil fields out of partial updates.
	PatchPolicy = serialization.OmitNullsPolicy
	// ResultPolicy reads write results.
	ResultPolicy = serialization.DefaultPolicy
	// DeleteResultPolicy reads delete results.
	DeleteResultPolicy = serialization.CamelCasePolicy
)

// Client accesses the document endpoints of one database.
type Client struct {
	api *apiclient.Client
}

// New creates a document client.
func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func collectionPath(collection string) string {
	return apiclient.Path("_api", "document", collection)
}

// documentPath validates id and returns its endpoint path.
func documentPath(id string) (string, error) {
	if err := validation.ValidateDocumentID(id); err != nil {
		return "", err
	}
	collection, key, _ := strings.Cut(id, "/")
	return apiclient.Path("_api", "document", collection, key), nil
}

func ifMatch(h http.Header, name, rev string) http.Header {
	if rev == "" {
		return h
	}
	if h == nil {
		h = http.Header{}
	}
	h.Set(name, rev)
	return h
}

// Create inserts doc into collection.
func Create[T any](ctx context.Context, c *Client, collection string, doc T, opts *CreateOptions) (Result[T], error) {
	if err := validation.ValidateCollectionName(collection); err != nil {
		return Result[T]{}, err
	}
	call := apiclient.Call{
		Method:       http.MethodPost,
		Path:         collectionPath(collection),
		Query:        serialization.EncodeQuery(opts),
		Body:         doc,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	}
	if opts != nil && opts.Silent {
		return Result[T]{}, apiclient.SendNoContent(ctx, c.api, call)
	}
	return apiclient.Send[Result[T]](ctx, c.api, call)
}

// CreateMany inserts docs into collection in one request. Per-document
// failures are reported on the items, not as the returned error.
func CreateMany[T any](ctx context.Context, c *Client, collection string, docs []T, opts *CreateOptions) ([]ItemResult[T], error) {
	if err := validation.ValidateCollectionName(collection); err != nil {
		return nil, err
	}
	return sendMany[T](ctx, c, apiclient.Call{
		Method:       http.MethodPost,
		Path:         collectionPath(collection),
		Query:        serialization.EncodeQuery(opts),
		Body:         nonNil(docs),
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	}, opts != nil && opts.Silent)
}

// Replace replaces the document id ("collection/key") with doc.
func Replace[T any](ctx context.Context, c *Client, id string, doc T, opts *ReplaceOptions) (Result[T], error) {
	path, err := documentPath(id)
	if err != nil {
		return Result[T]{}, err
	}
	call := apiclient.Call{
		Method:       http.MethodPut,
		Path:         path,
		Query:        serialization.EncodeQuery(opts),
		Body:         doc,
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	}
	if opts != nil {
		call.Headers = ifMatch(call.Headers, "If-Match", opts.IfMatch)
		if opts.Silent {
			return Result[T]{}, apiclient.SendNoContent(ctx, c.api, call)
		}
	}
	return apiclient.Send[Result[T]](ctx, c.api, call)
}

// ReplaceMany replaces documents of collection; each must carry its _key.
func ReplaceMany[T any](ctx context.Context, c *Client, collection string, docs []T, opts *ReplaceOptions) ([]ItemResult[T], error) {
	if err := validation.ValidateCollectionName(collection); err != nil {
		return nil, err
	}
	return sendMany[T](ctx, c, apiclient.Call{
		Method:       http.MethodPut,
		Path:         collectionPath(collection),
		Query:        serialization.EncodeQuery(opts),
		Body:         nonNil(docs),
		EncodePolicy: BodyPolicy,
		DecodePolicy: ResultPolicy,
	}, opts != nil && opts.Silent)
}

// Update merges patch into the document id.
func Update[T any](ctx context.Context, c *Client, id string, patch T, opts *UpdateOptions) (Result[T], error) {
	path, err := documentPath(id)
	if err != nil {
		return Result[T]{}, err
	}
	call := apiclient.Call{
		Method:       http.MethodPatch,
		Path:         path,
		Query:        serialization.EncodeQuery(opts),
		Body:         patch,
		EncodePolicy: opts.patchPolicy(),
		DecodePolicy: ResultPolicy,
	}
	if opts != nil {
		call.Headers = ifMatch(call.Headers, "If-Match", opts.IfMatch)
		if opts.Silent {
			return Result[T]{}, apiclient.SendNoContent(ctx, c.api, call)
		}
	}
	return apiclient.Send[Result[T]](ctx, c.api, call)
}

// UpdateMany merges patches into documents of collection; each must carry
// its _key.
func UpdateMany[T any](ctx context.Context, c *Client, collection string, patches []T, opts *UpdateOptions) ([]ItemResult[T], error) {
	if err := validation.ValidateCollectionName(collection); err != nil {
		return nil, err
	}
	return sendMany[T](ctx, c, apiclient.Call{
		Method:       http.MethodPatch,
		Path:         collectionPath(collection),
		Query:        serialization.EncodeQuery(opts),
		Body:         nonNil(patches),
		EncodePolicy: opts.patchPolicy(),
		DecodePolicy: ResultPolicy,
	}, opts != nil && opts.Silent)
}

func (o *UpdateOptions) patchPolicy() serialization.Policy {
	if o != nil && o.KeepNull != nil && *o.KeepNull {
		return BodyPolicy
	}
	return PatchPolicy
}

// Get reads the document id ("collection/key").
func Get[T any](ctx context.Context, c *Client, id string, opts *GetOptions) (T, error) {
	path, err := documentPath(id)
	if err != nil {
		var zero T
		return zero, err
	}
	call := apiclient.Call{
		Method:       http.MethodGet,
		Path:         path,
		DecodePolicy: ResultPolicy,
	}
	if opts != nil {
		call.Headers = ifMatch(call.Headers, "If-None-Match", opts.IfNoneMatch)
		call.Headers = ifMatch(call.Headers, "If-Match", opts.IfMatch)
	}
	return apiclient.Send[T](ctx, c.api, call)
}

// GetByKey reads the document key of collection.
func GetByKey[T any](ctx context.Context, c *Client, collection, key string, opts *GetOptions) (T, error) {
	id, err := validation.DocumentID(collection, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return Get[T](ctx, c, id, opts)
}

// Delete removes the document id. T types Old when ReturnOld is set.
func Delete[T any](ctx context.Context, c *Client, id string, opts *DeleteOptions) (Result[T], error) {
	path, err := documentPath(id)
	if err != nil {
		return Result[T]{}, err
	}
	call := apiclient.Call{
		Method:       http.MethodDelete,
		Path:         path,
		Query:        serialization.EncodeQuery(opts),
		DecodePolicy: DeleteResultPolicy,
	}
	if opts != nil {
		call.Headers = ifMatch(call.Headers, "If-Match", opts.IfMatch)
		if opts.Silent {
			return Result[T]{}, apiclient.SendNoContent(ctx, c.api, call)
		}
	}
	return apiclient.Send[Result[T]](ctx, c.api, call)
}

// DeleteByKey removes the document key of collection.
func DeleteByKey(ctx context.Context, c *Client, collection, key string, opts *DeleteOptions) (Result[map[string]any], error) {
	id, err := validation.DocumentID(collection, key)
	if err != nil {
		return Result[map[string]any]{}, err
	}
	return Delete[map[string]any](ctx, c, id, opts)
}

// DeleteMany removes the documents named by selectors (keys or ids) from
// collection. The selectors travel as the body of the DELETE request.
func DeleteMany[T any](ctx context.Context, c *Client, collection string, selectors []string, opts *DeleteOptions) ([]ItemResult[T], error) {
	if err := validation.ValidateCollectionName(collection); err != nil {
		return nil, err
	}
	return sendMany[T](ctx, c, apiclient.Call{
		Method:       http.MethodDelete,
		Path:         collectionPath(collection),
		Query:        serialization.EncodeQuery(opts),
		Body:         nonNil(selectors),
		EncodePolicy: BodyPolicy,
		DecodePolicy: DeleteResultPolicy,
	}, opts != nil && opts.Silent)
}

func sendMany[T any](ctx context.Context, c *Client, call apiclient.Call, silent bool) ([]ItemResult[T], error) {
	if silent {
		return nil, apiclient.SendNoContent(ctx, c.api, call)
	}
	return apiclient.Send[[]ItemResult[T]](ctx, c.api, call)
}

// nonNil keeps an empty batch encoding as [] rather than null.
func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
