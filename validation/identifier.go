package validation

import (
	"strings"

	"github.com/kbukum/arangodb/errors"
)

// ValidateDocumentID checks that id has the form "collection/key" with a
// valid collection name and a valid key.
func ValidateDocumentID(id string) error {
	if id == "" {
		return errors.NewValidationError("document id", "", "must not be empty")
	}
	collection, key, ok := strings.Cut(id, "/")
	if !ok || strings.Contains(key, "/") {
		return errors.NewValidationError("document id", id, "must be of the form collection/key")
	}
	if err := check(collection, "required,"+tagName); err != nil {
		return errors.NewValidationError("document id", id, "collection part is not a valid collection name").WithCause(err)
	}
	if err := check(key, "required,"+tagKey); err != nil {
		return errors.NewValidationError("document id", id, "key part is not a valid document key").WithCause(err)
	}
	return nil
}

// ValidateKey checks a bare document key.
func ValidateKey(key string) error {
	if key == "" {
		return errors.NewValidationError("document key", "", "must not be empty")
	}
	if err := check(key, tagKey); err != nil {
		return errors.NewValidationError("document key", key, "must be 1-254 characters of letters, digits and _-:.@()+,=;$!*'%").WithCause(err)
	}
	return nil
}

// ValidateCollectionName checks a collection name.
func ValidateCollectionName(name string) error {
	return validateName("collection name", name)
}

// ValidateGraphName checks a graph name. Graph names follow the collection
// naming rules.
func ValidateGraphName(name string) error {
	return validateName("graph name", name)
}

// ValidateDatabaseName checks a database name.
func ValidateDatabaseName(name string) error {
	if name == "" {
		return errors.NewValidationError("database name", "", "must not be empty")
	}
	if err := check(name, tagDatabase); err != nil {
		return errors.NewValidationError("database name", name, "must start with a letter or underscore and contain at most 64 letters, digits, _ or -").WithCause(err)
	}
	return nil
}

// DocumentID joins a collection name and key, validating both.
func DocumentID(collection, key string) (string, error) {
	if err := ValidateCollectionName(collection); err != nil {
		return "", err
	}
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return collection + "/" + key, nil
}

func validateName(field, name string) error {
	if name == "" {
		return errors.NewValidationError(field, "", "must not be empty")
	}
	if err := check(name, tagName); err != nil {
		return errors.NewValidationError(field, name, "must start with a letter or underscore and contain at most 256 letters, digits, _ or -").WithCause(err)
	}
	return nil
}

func check(value, tag string) error {
	return getValidator().Var(value, tag)
}
