// Package errors defines the error kinds returned by the client.
//
// A call fails with exactly one of:
//
//   - *ClientError: the server answered with a non-2xx status. It carries the
//     HTTP status and, when the body held the server's error envelope, the
//     server-specific errorNum and errorMessage.
//   - *DecodeError: a 2xx response whose body could not be shaped into the
//     expected result.
//   - *ValidationError: a caller-supplied identifier or payload was rejected
//     before any request was sent.
//   - *transport.Error: the request never produced an HTTP response
//     (timeout, cancellation, refused connection, TLS failure).
//
// Use errors.As (or the helpers in this package) to inspect them:
//
//	if errors.IsNotFound(err) { ... }
//	if ce, ok := errors.AsClientError(err); ok && ce.ErrorNum == errors.ErrGraphNotFound { ... }
package errors
