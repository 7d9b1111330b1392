package transport

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestNewRequest_Options(t *testing.T) {
	req := NewRequest(http.MethodPost, "/_api/document/users",
		WithBody([]byte(`{"a":1}`), "application/json"),
		WithQuery(url.Values{"returnNew": {"true"}}),
		WithHeader("x-arango-trx-id", "42"),
	)

	if req.Method() != http.MethodPost {
		t.Errorf("expected POST, got %s", req.Method())
	}
	if req.Path() != "/_api/document/users" {
		t.Errorf("unexpected path %s", req.Path())
	}
	if string(req.Body()) != `{"a":1}` || req.ContentType() != "application/json" {
		t.Errorf("unexpected body %s (%s)", req.Body(), req.ContentType())
	}
	if req.Query().Get("returnNew") != "true" {
		t.Error("expected returnNew=true")
	}
	if req.Header().Get("X-Arango-Trx-Id") != "42" {
		t.Error("expected trx header")
	}
	if !req.HasBody() {
		t.Error("expected HasBody")
	}
}

func TestWithBody_CopiesData(t *testing.T) {
	data := []byte(`{"a":1}`)
	req := NewRequest(http.MethodPost, "/x", WithBody(data, "application/json"))
	data[2] = 'b'
	if string(req.Body()) != `{"a":1}` {
		t.Errorf("body follows caller slice: %s", req.Body())
	}

	empty := NewRequest(http.MethodPost, "/x", WithBody([]byte{}, "application/json"))
	if !empty.HasBody() || len(empty.Body()) != 0 {
		t.Error("expected an empty but present body")
	}
}

func TestRequest_Immutable(t *testing.T) {
	req := NewRequest(http.MethodGet, "/x",
		WithBody([]byte("abc"), "text/plain"),
		WithQuery(url.Values{"a": {"1"}}))

	req.Body()[0] = 'z'
	req.Query().Set("a", "2")
	req.Header().Set("X-Other", "1")

	if string(req.Body()) != "abc" {
		t.Errorf("body mutated: %s", req.Body())
	}
	if req.Query().Get("a") != "1" {
		t.Errorf("query mutated: %s", req.Query().Get("a"))
	}
	if req.Header().Get("X-Other") != "" {
		t.Error("headers mutated")
	}

	derived := req.With(WithHeader("X-Other", "1"))
	if derived.Header().Get("X-Other") != "1" {
		t.Error("expected header on derived request")
	}
	if req.Header().Get("X-Other") != "" {
		t.Error("With mutated the original")
	}
}

func TestNewRequest_NoBody(t *testing.T) {
	req := NewRequest(http.MethodGet, "/x")
	if req.HasBody() || req.Body() != nil {
		t.Error("expected no body")
	}
}

type countingCloser struct {
	io.Reader
	closes int
}

func (c *countingCloser) Close() error {
	c.closes++
	return errors.New("closed")
}

func TestResponse_CloseOnce(t *testing.T) {
	body := &countingCloser{Reader: strings.NewReader("x")}
	resp := NewResponse(200, nil, body)

	err1 := resp.Close()
	err2 := resp.Close()
	if body.closes != 1 {
		t.Errorf("expected 1 close, got %d", body.closes)
	}
	if err1 == nil || err1 != err2 {
		t.Errorf("expected the same close error twice, got %v and %v", err1, err2)
	}

	var nilResp *Response
	if err := nilResp.Close(); err != nil {
		t.Errorf("unexpected error closing nil response: %v", err)
	}
}

func TestResponse_IsSuccess(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{200, true},
		{201, true},
		{202, true},
		{204, true},
		{304, false},
		{404, false},
		{500, false},
	}
	for _, tt := range tests {
		resp := NewResponse(tt.status, nil, nil)
		if got := resp.IsSuccess(); got != tt.want {
			t.Errorf("IsSuccess(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
