package database

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

func TestCreate_UsesSystemDatabase(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/_db/_system/_api/database" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"name":"tenant_1","users":[{"username":"root","passwd":"pw"}]}` {
			t.Errorf("unexpected body %s", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"error":false,"code":201,"result":true}`)
	})
	ok, err := c.Create(context.Background(), CreateBody{
		Name:  "tenant_1",
		Users: []User{{Username: "root", Passwd: "pw"}},
	})
	if err != nil || !ok {
		t.Fatalf("expected success, got %v %v", ok, err)
	}
}

func TestCreate_InvalidName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := c.Create(context.Background(), CreateBody{Name: "bad/name"}); !errors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/_db/_system/_api/database":
			_, _ = io.WriteString(w, `{"result":["_system","shop"]}`)
		case "/_db/shop/_api/database/user":
			_, _ = io.WriteString(w, `{"result":["shop"]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	all, err := c.List(ctx)
	if err != nil || len(all) != 2 {
		t.Errorf("list: %v %v", all, err)
	}
	mine, err := c.ListUser(ctx)
	if err != nil || len(mine) != 1 || mine[0] != "shop" {
		t.Errorf("list user: %v %v", mine, err)
	}
}

func TestCurrent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_db/shop/_api/database/current" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"error":false,"code":200,"result":{"id":"7","name":"shop","path":"/db/7","isSystem":false}}`)
	})
	info, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "shop" || info.ID != "7" || info.IsSystem {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestDelete_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/_db/_system/_api/database/gone" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":true,"code":404,"errorNum":1228,"errorMessage":"database not found"}`)
	})
	_, err := c.Delete(context.Background(), "gone")
	if !errors.HasErrorNum(err, errors.ErrDatabaseNotFound) {
		t.Fatalf("expected database not found, got %v", err)
	}
}
