package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/arangodb/errors"
)

func TestValidateDocumentID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"users/alice", false},
		{"_graphs/g1", false},
		{"users/a:b@c.d(1)+2,3=4;5$6!7*8'9%0", false},
		{"", true},
		{"boguskey", true},
		{"users/", true},
		{"/alice", true},
		{"users/alice/extra", true},
		{"1users/alice", true},
		{"users/al ice", true},
		{"users/" + strings.Repeat("k", 255), true},
	}
	for _, tt := range tests {
		err := ValidateDocumentID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDocumentID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !errors.IsValidation(err) {
			t.Errorf("ValidateDocumentID(%q) returned %T, want *errors.ValidationError", tt.id, err)
		}
	}
}

func TestValidateDocumentID_MissingSeparatorMessage(t *testing.T) {
	err := ValidateDocumentID("boguskey")
	var ve *errors.ValidationError
	if !asValidation(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Value != "boguskey" {
		t.Errorf("expected value boguskey, got %q", ve.Value)
	}
	if !strings.Contains(ve.Reason, "collection/key") {
		t.Errorf("unexpected reason %q", ve.Reason)
	}
}

func TestValidateKey(t *testing.T) {
	valid := []string{"alice", "123", "a-b_c", strings.Repeat("x", 254)}
	for _, k := range valid {
		if err := ValidateKey(k); err != nil {
			t.Errorf("ValidateKey(%q) unexpected error: %v", k, err)
		}
	}
	invalid := []string{"", "a/b", "a b", "ä", strings.Repeat("x", 255)}
	for _, k := range invalid {
		if err := ValidateKey(k); err == nil {
			t.Errorf("ValidateKey(%q) expected error", k)
		}
	}
}

func TestValidateCollectionAndGraphName(t *testing.T) {
	for _, n := range []string{"users", "_system_col", "Edges-2024"} {
		if err := ValidateCollectionName(n); err != nil {
			t.Errorf("ValidateCollectionName(%q) unexpected error: %v", n, err)
		}
		if err := ValidateGraphName(n); err != nil {
			t.Errorf("ValidateGraphName(%q) unexpected error: %v", n, err)
		}
	}
	for _, n := range []string{"", "9lives", "a.b", "a/b", strings.Repeat("c", 257)} {
		if err := ValidateCollectionName(n); err == nil {
			t.Errorf("ValidateCollectionName(%q) expected error", n)
		}
	}
}

func TestValidateDatabaseName(t *testing.T) {
	if err := ValidateDatabaseName("_system"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDatabaseName("shop-2"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDatabaseName(""); err == nil {
		t.Error("expected error for empty name")
	}
	if err := ValidateDatabaseName(strings.Repeat("d", 65)); err == nil {
		t.Error("expected error for long name")
	}
}

func TestDocumentID(t *testing.T) {
	id, err := DocumentID("users", "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "users/alice" {
		t.Errorf("expected users/alice, got %q", id)
	}
	if _, err := DocumentID("users", ""); err == nil {
		t.Error("expected error for empty key")
	}
}

type meta struct {
	Key  string `json:"_key" validate:"required"`
	ID   string `json:"_id" validate:"required"`
	Name string `json:"name"`
}

func TestStruct(t *testing.T) {
	if err := Struct(&meta{Key: "k", ID: "c/k"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := Struct(&meta{Key: "k"})
	var ve *errors.ValidationError
	if !asValidation(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "_id" {
		t.Errorf("expected field _id, got %q", ve.Field)
	}
	if !strings.Contains(ve.Reason, "_id is required") {
		t.Errorf("unexpected reason %q", ve.Reason)
	}
}

func asValidation(err error, target **errors.ValidationError) bool {
	ve, ok := err.(*errors.ValidationError)
	if ok {
		*target = ve
	}
	return ok
}
