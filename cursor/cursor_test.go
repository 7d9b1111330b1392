package cursor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/arangodb/apiclient"
	"github.com/kbukum/arangodb/errors"
	"github.com/kbukum/arangodb/transport"
)

type row struct {
	Key  string `json:"_key"`
	Name string `json:"name"`
}

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

func TestCreate_Body(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/_db/shop/_api/cursor" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var got map[string]any
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got["query"] != "FOR u IN users RETURN u" || got["batchSize"] != float64(2) || got["ttl"] != 1.5 {
			t.Errorf("unexpected body %v", got)
		}
		if got["count"] != true {
			t.Errorf("expected count=true, got %v", got["count"])
		}
		if _, ok := got["options"]; ok {
			t.Error("nil options should be omitted")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"error":false,"code":201,"result":[{"_key":"1","name":"a"}],"hasMore":false,"count":1,"cached":false,`+
			`"extra":{"stats":{"scannedFull":1,"executionTime":0.001},"warnings":[]}}`)
	})

	resp, err := Create[row](context.Background(), c, CreateBody{
		Query:     "FOR u IN users RETURN u",
		Count:     true,
		BatchSize: 2,
		TTL:       1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Result) != 1 || resp.Result[0].Name != "a" || resp.HasMore {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Count == nil || *resp.Count != 1 {
		t.Errorf("expected count 1, got %v", resp.Count)
	}
	if resp.Extra == nil || resp.Extra.Stats.ScannedFull != 1 {
		t.Errorf("unexpected extra %+v", resp.Extra)
	}
}

func TestCreate_EmptyQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := Create[row](context.Background(), c, CreateBody{}); !errors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreate_ParseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":true,"code":400,"errorNum":1501,"errorMessage":"syntax error"}`)
	})
	_, err := Create[row](context.Background(), c, CreateBody{Query: "FOR"})
	if !errors.HasErrorNum(err, errors.ErrQueryParse) || !errors.HasStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestReadAll_FollowsBatches(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/_db/shop/_api/cursor":
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"77","result":[{"_key":"1"},{"_key":"2"}],"hasMore":true}`)
		case "/_db/shop/_api/cursor/77":
			_, _ = io.WriteString(w, `{"id":"77","result":[{"_key":"3"}],"hasMore":false}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	rows, err := ReadAll[row](context.Background(), c, CreateBody{Query: "FOR u IN users RETURN u", BatchSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 || rows[2].Key != "3" {
		t.Errorf("unexpected rows %+v", rows)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 || calls[1] != "POST /_db/shop/_api/cursor/77" {
		t.Errorf("unexpected calls %v", calls)
	}
}

func TestReadAll_ReleasesCursorOnError(t *testing.T) {
	var mu sync.Mutex
	deleted := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/_db/shop/_api/cursor":
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"9","result":[{"_key":"1"}],"hasMore":true}`)
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":true,"code":500,"errorNum":4,"errorMessage":"internal error"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/_db/shop/_api/cursor/9":
			mu.Lock()
			deleted = true
			mu.Unlock()
			w.WriteHeader(http.StatusAccepted)
		}
	})

	_, err := ReadAll[row](context.Background(), c, CreateBody{Query: "q"})
	if !errors.HasErrorNum(err, errors.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if !deleted {
		t.Error("expected the cursor to be deleted")
	}
}

func TestReadAll_EmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":[],"hasMore":false}`)
	})
	rows, err := ReadAll[row](context.Background(), c, CreateBody{Query: "q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", rows)
	}
}

func TestReadAll_LargeCountDoesNotPreallocate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":[{"_key":"1"},{"_key":"2"}],"hasMore":false,"count":1099511627776}`)
	})
	rows, err := ReadAll[row](context.Background(), c, CreateBody{Query: "q", Count: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if cap(rows) > preallocBatches*2 {
		t.Errorf("expected capacity bounded by the first batch, got %d", cap(rows))
	}
}

func TestDelete_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":true,"code":404,"errorNum":1600,"errorMessage":"cursor not found"}`)
	})
	err := c.Delete(context.Background(), "123")
	if !errors.IsNotFound(err) || !errors.HasErrorNum(err, errors.ErrCursorNotFound) {
		t.Fatalf("expected cursor not found, got %v", err)
	}
}
