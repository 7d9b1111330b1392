// Package validation checks identifiers and decoded results before they
// reach the network or the caller.
//
// Identifier checks fail fast with *errors.ValidationError so that a
// malformed document id never costs a round trip:
//
//	if err := validation.ValidateDocumentID("users/alice"); err != nil { ... }
//
// Struct validation runs `validate` tags with go-playground/validator and
// reports fields by their JSON names:
//
//	type Meta struct {
//	    Key string `json:"_key" validate:"required"`
//	}
//	err := validation.Struct(&meta)
package validation
