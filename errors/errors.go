package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// UnknownErrorNum is the ErrorNum of a ClientError whose body could not be
// decoded as a server error envelope.
const UnknownErrorNum = -1

// UnknownErrorMessage is the ErrorMessage paired with UnknownErrorNum.
const UnknownErrorMessage = "unknown error"

// ServerError is the JSON error envelope the server returns on failure.
// It is also embedded in per-item results of bulk operations.
type ServerError struct {
	Error        bool   `json:"error"`
	Code         int    `json:"code"`
	ErrorNum     int    `json:"errorNum"`
	ErrorMessage string `json:"errorMessage"`
}

// Err returns the envelope as a *ClientError, or nil when the error flag is
// not set. Bulk operations use it to surface per-item failures.
func (e ServerError) Err() error {
	if !e.Error {
		return nil
	}
	return NewClientError(e.Code, &e)
}

// Recognized reports whether the envelope carries server error details.
func (e *ServerError) Recognized() bool {
	return e != nil && (e.ErrorNum != 0 || e.ErrorMessage != "")
}

// String implements fmt.Stringer.
func (e *ServerError) String() string {
	return fmt.Sprintf("arangodb: [%d] %s (HTTP %d)", e.ErrorNum, e.ErrorMessage, e.Code)
}

// ClientError is returned for every response with a non-success HTTP status.
type ClientError struct {
	// HTTPStatus is the status code of the HTTP response.
	HTTPStatus int
	// ErrorNum is the server-specific error code, or UnknownErrorNum.
	ErrorNum int
	// ErrorMessage is the server's message, or UnknownErrorMessage.
	ErrorMessage string
	// Server is the decoded envelope. Nil when the body was absent or malformed.
	Server *ServerError
}

// NewClientError builds a ClientError from an HTTP status and an optional
// decoded envelope. A nil or unrecognized envelope yields the sentinel values.
func NewClientError(status int, server *ServerError) *ClientError {
	if !server.Recognized() {
		return &ClientError{
			HTTPStatus:   status,
			ErrorNum:     UnknownErrorNum,
			ErrorMessage: UnknownErrorMessage,
		}
	}
	return &ClientError{
		HTTPStatus:   status,
		ErrorNum:     server.ErrorNum,
		ErrorMessage: server.ErrorMessage,
		Server:       server,
	}
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.ErrorNum == UnknownErrorNum {
		return fmt.Sprintf("arangodb: HTTP %d %s", e.HTTPStatus, http.StatusText(e.HTTPStatus))
	}
	return fmt.Sprintf("arangodb: HTTP %d: [%d] %s", e.HTTPStatus, e.ErrorNum, e.ErrorMessage)
}

// AsClientError extracts a *ClientError from err.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HasErrorNum reports whether err is a ClientError with one of the given
// server error numbers.
func HasErrorNum(err error, nums ...int) bool {
	ce, ok := AsClientError(err)
	if !ok {
		return false
	}
	for _, n := range nums {
		if ce.ErrorNum == n {
			return true
		}
	}
	return false
}

// HasStatus reports whether err is a ClientError with the given HTTP status.
func HasStatus(err error, status int) bool {
	ce, ok := AsClientError(err)
	return ok && ce.HTTPStatus == status
}

// IsNotFound reports whether err means the addressed resource does not exist.
func IsNotFound(err error) bool {
	return HasStatus(err, http.StatusNotFound) || HasErrorNum(err,
		ErrDocumentNotFound, ErrCollectionNotFound, ErrDatabaseNotFound,
		ErrGraphNotFound, ErrCursorNotFound, ErrTransactionNotFound)
}

// IsConflict reports whether err is a revision or uniqueness conflict.
func IsConflict(err error) bool {
	return HasStatus(err, http.StatusConflict) || HasErrorNum(err, ErrConflict, ErrUniqueConstraintViolated)
}

// IsUniqueConstraintViolated reports whether err is a duplicate key error.
func IsUniqueConstraintViolated(err error) bool {
	return HasErrorNum(err, ErrUniqueConstraintViolated)
}

// IsUnauthorized reports whether the server rejected the credentials.
func IsUnauthorized(err error) bool {
	return HasStatus(err, http.StatusUnauthorized) || HasStatus(err, http.StatusForbidden)
}
