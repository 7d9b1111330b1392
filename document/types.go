package document

import (
	"github.com/kbukum/arangodb/errors"
)

// Meta identifies a stored document revision.
type Meta struct {
	ID     string `json:"_id" validate:"required"`
	Key    string `json:"_key" validate:"required"`
	Rev    string `json:"_rev"`
	OldRev string `json:"_oldRev,omitempty"`
}

// Result is the response of a single-document write.
type Result[T any] struct {
	Meta
	// New is set when ReturnNew was requested.
	New *T `json:"new,omitempty"`
	// Old is set when ReturnOld was requested.
	Old *T `json:"old,omitempty"`
}

// ItemResult is one element of a bulk response. Failed items carry the
// server error envelope instead of document metadata; check Err.
type ItemResult[T any] struct {
	errors.ServerError
	ID     string `json:"_id"`
	Key    string `json:"_key"`
	Rev    string `json:"_rev"`
	OldRev string `json:"_oldRev,omitempty"`
	New    *T     `json:"new,omitempty"`
	Old    *T     `json:"old,omitempty"`
}

// FirstError returns the first failed item of a bulk response as an error.
func FirstError[T any](items []ItemResult[T]) error {
	for i := range items {
		if err := items[i].Err(); err != nil {
			return err
		}
	}
	return nil
}

// OverwriteMode selects what an insert does when the key already exists.
type OverwriteMode string

// Overwrite modes.
const (
	OverwriteIgnore   OverwriteMode = "ignore"
	OverwriteReplace  OverwriteMode = "replace"
	OverwriteUpdate   OverwriteMode = "update"
	OverwriteConflict OverwriteMode = "conflict"
)

// CreateOptions are the query options of an insert.
type CreateOptions struct {
	WaitForSync   *bool         `query:"waitForSync"`
	ReturnNew     bool          `query:"returnNew,omitempty"`
	ReturnOld     bool          `query:"returnOld,omitempty"`
	Silent        bool          `query:"silent,omitempty"`
	Overwrite     *bool         `query:"overwrite"`
	OverwriteMode OverwriteMode `query:"overwriteMode,omitempty"`
	KeepNull      *bool         `query:"keepNull"`
	MergeObjects  *bool         `query:"mergeObjects"`
}

// ReplaceOptions are the options of a replace.
type ReplaceOptions struct {
	WaitForSync *bool `query:"waitForSync"`
	IgnoreRevs  *bool `query:"ignoreRevs"`
	ReturnNew   bool  `query:"returnNew,omitempty"`
	ReturnOld   bool  `query:"returnOld,omitempty"`
	Silent      bool  `query:"silent,omitempty"`
	// IfMatch makes the write conditional on the current revision.
	IfMatch string
}

// UpdateOptions are the options of a partial update.
type UpdateOptions struct {
	WaitForSync *bool `query:"waitForSync"`
	IgnoreRevs  *bool `query:"ignoreRevs"`
	ReturnNew   bool  `query:"returnNew,omitempty"`
	ReturnOld   bool  `query:"returnOld,omitempty"`
	Silent      bool  `query:"silent,omitempty"`
	// KeepNull stores null attributes instead of removing them. When it is
	// not set, nil fields of the patch are left out of the request so they
	// do not clear stored values.
	KeepNull     *bool `query:"keepNull"`
	MergeObjects *bool `query:"mergeObjects"`
	IfMatch      string
}

// GetOptions are the options of a read.
type GetOptions struct {
	// IfNoneMatch returns 304 when the revision still matches.
	IfNoneMatch string
	// IfMatch returns 412 when the revision does not match.
	IfMatch string
}

// DeleteOptions are the options of a delete.
type DeleteOptions struct {
	WaitForSync *bool `query:"waitForSync"`
	IgnoreRevs  *bool `query:"ignoreRevs"`
	ReturnOld   bool  `query:"returnOld,omitempty"`
	Silent      bool  `query:"silent,omitempty"`
	IfMatch     string
}
