package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// ErrorCode classifies transport failures.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the request or connection timed out.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeCanceled indicates the caller's context was canceled.
	ErrCodeCanceled
	// ErrCodeConnection indicates a connection failure (refused, reset, DNS).
	ErrCodeConnection
	// ErrCodeTLS indicates a TLS handshake or certificate failure.
	ErrCodeTLS
	// ErrCodeCircuitOpen indicates the circuit breaker rejected the request.
	ErrCodeCircuitOpen
	// ErrCodeInvalidRequest indicates the request could not be built.
	ErrCodeInvalidRequest
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeCanceled:
		return "canceled"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeTLS:
		return "tls"
	case ErrCodeCircuitOpen:
		return "circuit_open"
	case ErrCodeInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is wrapped by errors returned while the circuit is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Error is a failure to exchange a request with the server.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// Method and Path identify the failed request.
	Method string
	Path   string
	// Retryable indicates whether sending the request again may succeed.
	Retryable bool
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("arangodb: transport %s: %s %s: %v", e.Code, e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("arangodb: transport %s: %v", e.Code, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error for req with the given code.
func NewError(code ErrorCode, req *Request, err error) *Error {
	e := &Error{
		Code:      code,
		Retryable: code == ErrCodeTimeout || code == ErrCodeConnection,
		Err:       err,
	}
	if req != nil {
		e.Method = req.Method()
		e.Path = req.Path()
	}
	return e
}

// classify maps an error from the HTTP client onto an Error for req.
// ctx is the caller's context, used to tell cancellation from timeouts.
func classify(ctx context.Context, req *Request, err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}

	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return NewError(ErrCodeCanceled, req, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		// The caller's own deadline; retrying cannot help.
		e := NewError(ErrCodeTimeout, req, err)
		e.Retryable = false
		return e
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return NewError(ErrCodeTimeout, req, err)
	case isTLS(err):
		return NewError(ErrCodeTLS, req, err)
	default:
		return NewError(ErrCodeConnection, req, err)
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isTLS(err error) bool {
	var (
		recordErr  tls.RecordHeaderError
		alertErr   tls.AlertError
		verifyErr  *tls.CertificateVerificationError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &unknownCA) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr)
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsCanceled reports whether err is a canceled transport request.
func IsCanceled(err error) bool { return hasCode(err, ErrCodeCanceled) }

// IsConnection reports whether err is a connection failure.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsTLS reports whether err is a TLS failure.
func IsTLS(err error) bool { return hasCode(err, ErrCodeTLS) }

// IsCircuitOpen reports whether err was returned by an open circuit breaker.
func IsCircuitOpen(err error) bool { return hasCode(err, ErrCodeCircuitOpen) }

// IsRetryable reports whether err is a retryable transport error.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// AsError returns err as a *Error if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
