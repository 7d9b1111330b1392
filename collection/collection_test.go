package collection

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/errors"
	"github.com/kbukum/arangodb/transport"
)

const usersJSON = `{"error":false,"code":200,"id":"101","name":"users","globallyUniqueId":"h1/101",` +
	`"type":2,"status":3,"statusString":"loaded","isSystem":false,"waitForSync":false,` +
	`"keyOptions":{"type":"traditional","allowUserKeys":true,"lastValue":0}}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tr, err := transport.NewHTTP(transport.Config{Endpoint: srv.URL, Database: "shop"})
	if err != nil {
		t.Fatal(err)
	}
	return New(apiclient.New(tr))
}

func TestCreate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/_db/shop/_api/collection" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"name":"users","type":2}` {
			t.Errorf("unexpected body %s", body)
		}
		_, _ = io.WriteString(w, usersJSON)
	})
	info, err := c.Create(context.Background(), CreateBody{Name: "users"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID != "101" || info.Type != TypeDocument || info.StatusString != "loaded" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.KeyOptions == nil || info.KeyOptions.Type != "traditional" {
		t.Errorf("unexpected key options %+v", info.KeyOptions)
	}
}

func TestCreate_EdgeWithOptions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("waitForSyncReplication") != "false" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"name":"knows","type":3,"keyOptions":{"type":"autoincrement","increment":5}}` {
			t.Errorf("unexpected body %s", body)
		}
		_, _ = io.WriteString(w, `{"id":"102","name":"knows","type":3}`)
	})
	inc := 5
	no := false
	info, err := c.Create(context.Background(), CreateBody{
		Name:       "knows",
		Type:       TypeEdge,
		KeyOptions: &KeyOptions{Type: "autoincrement", Increment: &inc},
	}, &CreateQuery{WaitForSyncReplication: &no})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Type != TypeEdge || info.Type.String() != "edge" {
		t.Errorf("unexpected type %v", info.Type)
	}
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("excludeSystem") != "true" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"error":false,"code":200,"result":[{"id":"101","name":"users","type":2,"isSystem":false}]}`)
	})
	list, err := c.List(context.Background(), &ListQuery{ExcludeSystem: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].Name != "users" {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestGet_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":true,"code":404,"errorNum":1203,"errorMessage":"collection or view not found"}`)
	})
	_, err := c.Get(context.Background(), "missing")
	if !errors.HasErrorNum(err, errors.ErrCollectionNotFound) {
		t.Fatalf("expected collection not found, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/_db/shop/_api/collection/_jobs" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("isSystem") != "true" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"error":false,"code":200,"id":"55"}`)
	})
	res, err := c.Delete(context.Background(), "_jobs", &DeleteQuery{IsSystem: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != "55" {
		t.Errorf("unexpected response %+v", res)
	}
}

func TestTruncateAndCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/_db/shop/_api/collection/users/truncate":
			_, _ = io.WriteString(w, usersJSON)
		case r.Method == http.MethodGet && r.URL.Path == "/_db/shop/_api/collection/users/count":
			_, _ = io.WriteString(w, `{"id":"101","name":"users","type":2,"count":42}`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()
	if _, err := c.Truncate(ctx, "users"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	n, err := c.Count(ctx, "users")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 42 {
		t.Errorf("expected 42, got %d", n)
	}
}

func TestInvalidName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	ctx := context.Background()
	if _, err := c.Get(ctx, "a/b"); !errors.IsValidation(err) {
		t.Errorf("get: expected ValidationError, got %v", err)
	}
	if _, err := c.Count(ctx, ""); !errors.IsValidation(err) {
		t.Errorf("count: expected ValidationError, got %v", err)
	}
	if _, err := c.Create(ctx, CreateBody{Name: "9lives"}, nil); !errors.IsValidation(err) {
		t.Errorf("create: expected ValidationError, got %v", err)
	}
}
